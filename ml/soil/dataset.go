package soil

import (
	"agro-advisory-api/ml/sampling"
)

// FeatureNames orders the five soil readings as the model consumes them.
var FeatureNames = []string{"Nitrogen", "Phosphorus", "Potassium", "pH", "Rainfall"}

// jitterStd is the per-feature Gaussian noise added to every synthetic
// sample (N, P, K, pH, rainfall).
var jitterStd = [5]float64{5, 3, 3, 0.2, 10}

// dataset is a labeled synthetic training set. Labels index into cropOrder.
type dataset struct {
	x [][]float64
	y []int
}

// generateDataset draws samples/len(crops) points per crop uniformly inside
// that crop's optimal ranges, then jitters each feature independently.
func generateDataset(samples int, rng *sampling.RNG) *dataset {
	perCrop := samples / len(cropOrder)
	ds := &dataset{
		x: make([][]float64, 0, perCrop*len(cropOrder)),
		y: make([]int, 0, perCrop*len(cropOrder)),
	}

	for label, crop := range cropOrder {
		r := cropRanges[crop]
		for i := 0; i < perCrop; i++ {
			row := []float64{
				rng.Uniform(r.N[0], r.N[1]) + rng.NormFloat64()*jitterStd[0],
				rng.Uniform(r.P[0], r.P[1]) + rng.NormFloat64()*jitterStd[1],
				rng.Uniform(r.K[0], r.K[1]) + rng.NormFloat64()*jitterStd[2],
				rng.Uniform(r.PH[0], r.PH[1]) + rng.NormFloat64()*jitterStd[3],
				rng.Uniform(r.Rain[0], r.Rain[1]) + rng.NormFloat64()*jitterStd[4],
			}
			ds.x = append(ds.x, row)
			ds.y = append(ds.y, label)
		}
	}

	return ds
}

// split shuffles the dataset and carves off testFrac of it for evaluation.
func (d *dataset) split(testFrac float64, rng *sampling.RNG) (train, test *dataset) {
	perm := rng.Perm(len(d.x))
	testN := int(float64(len(d.x)) * testFrac)

	test = &dataset{x: make([][]float64, 0, testN), y: make([]int, 0, testN)}
	train = &dataset{
		x: make([][]float64, 0, len(d.x)-testN),
		y: make([]int, 0, len(d.x)-testN),
	}

	for i, idx := range perm {
		if i < testN {
			test.x = append(test.x, d.x[idx])
			test.y = append(test.y, d.y[idx])
		} else {
			train.x = append(train.x, d.x[idx])
			train.y = append(train.y, d.y[idx])
		}
	}
	return train, test
}
