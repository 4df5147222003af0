package soil

import (
	"sort"

	"agro-advisory-api/ml/sampling"
)

// TreeNode is one CART node. Fields are exported so the gob artifact can
// round-trip the fitted ensemble. A non-nil Probs marks a leaf holding the
// class distribution of its training samples.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Probs     []float64
}

type treeParams struct {
	maxDepth   int
	minSplit   int
	minLeaf    int
	mtry       int
	numClasses int
}

func classCounts(ds *dataset, idx []int, numClasses int) []float64 {
	counts := make([]float64, numClasses)
	for _, i := range idx {
		counts[ds.y[i]]++
	}
	return counts
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / n
		impurity -= p * p
	}
	return impurity
}

func leaf(counts []float64, n float64) *TreeNode {
	probs := make([]float64, len(counts))
	for i, c := range counts {
		probs[i] = c / n
	}
	return &TreeNode{Probs: probs}
}

// buildTree grows one tree on the index subset idx. Impurity decreases are
// accumulated into importance, weighted by the node's share of total
// training samples (mean-decrease-in-impurity attribution).
func buildTree(ds *dataset, idx []int, depth int, p treeParams, rng *sampling.RNG, importance []float64, total float64) *TreeNode {
	n := float64(len(idx))
	counts := classCounts(ds, idx, p.numClasses)
	impurity := gini(counts, n)

	if depth >= p.maxDepth || len(idx) < p.minSplit || impurity == 0 {
		return leaf(counts, n)
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestDecrease := 0.0

	for _, feature := range rng.Perm(len(FeatureNames))[:p.mtry] {
		sorted := make([]int, len(idx))
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool {
			return ds.x[sorted[a]][feature] < ds.x[sorted[b]][feature]
		})

		leftCounts := make([]float64, p.numClasses)
		rightCounts := make([]float64, p.numClasses)
		copy(rightCounts, counts)

		for i := 0; i < len(sorted)-1; i++ {
			cls := ds.y[sorted[i]]
			leftCounts[cls]++
			rightCounts[cls]--

			// Only cut between distinct feature values.
			cur := ds.x[sorted[i]][feature]
			next := ds.x[sorted[i+1]][feature]
			if cur == next {
				continue
			}

			nLeft := float64(i + 1)
			nRight := n - nLeft
			if int(nLeft) < p.minLeaf || int(nRight) < p.minLeaf {
				continue
			}

			decrease := impurity -
				(nLeft/n)*gini(leftCounts, nLeft) -
				(nRight/n)*gini(rightCounts, nRight)
			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeature = feature
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return leaf(counts, n)
	}

	importance[bestFeature] += (n / total) * bestDecrease

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if ds.x[i][bestFeature] <= bestThreshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      buildTree(ds, leftIdx, depth+1, p, rng, importance, total),
		Right:     buildTree(ds, rightIdx, depth+1, p, rng, importance, total),
	}
}

// probs walks the tree to the leaf distribution for x.
func (t *TreeNode) probs(x []float64) []float64 {
	node := t
	for node.Probs == nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probs
}
