package soil

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"agro-advisory-api/ml/sampling"
)

// Ensemble hyperparameters.
const (
	maxTreeDepth    = 15
	minSamplesSplit = 5
	minSamplesLeaf  = 2
)

// Forest is a bagged ensemble of CART trees. Exported fields round-trip
// through the gob artifact; the struct is read-only after training or load.
type Forest struct {
	Trees      []*TreeNode
	Labels     []string
	Importance []float64
}

// trainForest fits numTrees bagged trees on ds. Each tree sees a bootstrap
// resample and considers sqrt(features) candidates per split.
func trainForest(ds *dataset, numTrees int, rng *sampling.RNG) *Forest {
	p := treeParams{
		maxDepth:   maxTreeDepth,
		minSplit:   minSamplesSplit,
		minLeaf:    minSamplesLeaf,
		mtry:       int(math.Sqrt(float64(len(FeatureNames)))),
		numClasses: len(cropOrder),
	}
	if p.mtry < 1 {
		p.mtry = 1
	}

	f := &Forest{
		Trees:      make([]*TreeNode, 0, numTrees),
		Labels:     Crops(),
		Importance: make([]float64, len(FeatureNames)),
	}

	n := len(ds.x)
	total := float64(n)
	for t := 0; t < numTrees; t++ {
		bootstrap := make([]int, n)
		for i := range bootstrap {
			bootstrap[i] = rng.Intn(n)
		}
		f.Trees = append(f.Trees, buildTree(ds, bootstrap, 0, p, rng, f.Importance, total))
	}

	// Normalize accumulated impurity decreases into relative importances.
	var sum float64
	for _, v := range f.Importance {
		sum += v
	}
	if sum > 0 {
		for i := range f.Importance {
			f.Importance[i] /= sum
		}
	}

	return f
}

// Probabilities averages the leaf class distributions across all trees.
func (f *Forest) Probabilities(x []float64) []float64 {
	probs := make([]float64, len(f.Labels))
	for _, t := range f.Trees {
		for i, p := range t.probs(x) {
			probs[i] += p
		}
	}
	for i := range probs {
		probs[i] /= float64(len(f.Trees))
	}
	return probs
}

// Predict returns the arg-max label and its averaged class probability.
func (f *Forest) Predict(x []float64) (string, float64) {
	probs := f.Probabilities(x)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return f.Labels[best], probs[best]
}

// accuracy is the fraction of ds the forest labels correctly.
func (f *Forest) accuracy(ds *dataset) float64 {
	if len(ds.x) == 0 {
		return 0
	}
	correct := 0
	for i, x := range ds.x {
		label, _ := f.Predict(x)
		if label == f.Labels[ds.y[i]] {
			correct++
		}
	}
	return float64(correct) / float64(len(ds.x))
}

// Save writes the fitted ensemble to path as a gob artifact.
func (f *Forest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(f); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// LoadForest reads a previously saved ensemble. The artifact format is not a
// cross-version contract; callers retrain on any error.
func LoadForest(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer file.Close()

	var f Forest
	if err := gob.NewDecoder(file).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(f.Trees) == 0 || len(f.Labels) == 0 {
		return nil, fmt.Errorf("model artifact %s is empty", path)
	}
	return &f, nil
}
