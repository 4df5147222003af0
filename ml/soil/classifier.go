// Package soil recommends crops from five numeric soil readings using a
// bagged decision-tree ensemble trained once on synthetic agronomic data.
package soil

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"agro-advisory-api/logger"
	"agro-advisory-api/ml/sampling"
)

// Outcome is one crop recommendation.
type Outcome struct {
	Crop       string  `json:"recommended_crop"`
	Fertilizer string  `json:"fertilizer_advice"`
	Confidence float64 `json:"confidence"`
	Tips       string  `json:"additional_tips"`
}

// Config controls training and artifact caching. Zero values fall back to
// the production defaults.
type Config struct {
	CachePath string
	Seed      int64
	Samples   int
	Trees     int
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Samples == 0 {
		c.Samples = 2000
	}
	if c.Trees == 0 {
		c.Trees = 100
	}
	return c
}

var titleCaser = cases.Title(language.English)

// Classifier wraps the trained ensemble. It is immutable after construction;
// concurrent Predict calls need no locking.
type Classifier struct {
	forest *Forest
}

// NewClassifier loads the cached ensemble from cfg.CachePath, retraining
// from scratch when the artifact is missing or unreadable. Training is
// deterministic for a given seed.
func NewClassifier(cfg Config, log *logger.Logger) (*Classifier, error) {
	cfg = cfg.withDefaults()

	if cfg.CachePath != "" {
		if forest, err := LoadForest(cfg.CachePath); err == nil {
			log.Info("soil model loaded from cache", "path", cfg.CachePath, "trees", len(forest.Trees))
			return &Classifier{forest: forest}, nil
		} else {
			log.Warn("soil model cache unavailable, retraining", "path", cfg.CachePath, "error", err)
		}
	}

	forest, err := Train(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		if err := forest.Save(cfg.CachePath); err != nil {
			log.Warn("failed to persist soil model", "path", cfg.CachePath, "error", err)
		} else {
			log.Info("soil model saved", "path", cfg.CachePath)
		}
	}

	return &Classifier{forest: forest}, nil
}

// Train fits a new ensemble on a freshly generated synthetic dataset and
// logs its train/test accuracy.
func Train(cfg Config, log *logger.Logger) (*Forest, error) {
	cfg = cfg.withDefaults()
	if cfg.Samples < len(cropOrder) {
		return nil, fmt.Errorf("need at least %d samples, got %d", len(cropOrder), cfg.Samples)
	}

	log.Info("training soil recommendation model",
		"samples", cfg.Samples, "trees", cfg.Trees, "seed", cfg.Seed)

	rng := sampling.NewSeeded(cfg.Seed)
	train, test := generateDataset(cfg.Samples, rng).split(0.2, rng)
	forest := trainForest(train, cfg.Trees, rng)

	log.Info("soil model trained",
		"train_accuracy", fmt.Sprintf("%.3f", forest.accuracy(train)),
		"test_accuracy", fmt.Sprintf("%.3f", forest.accuracy(test)))

	return forest, nil
}

// Predict scores five soil readings and returns the recommended crop with
// its class probability. Inputs are not range-validated here; out-of-range
// readings still produce a best-effort label.
func (c *Classifier) Predict(nitrogen, phosphorus, potassium, ph, rainfall float64) Outcome {
	crop, prob := c.forest.Predict([]float64{nitrogen, phosphorus, potassium, ph, rainfall})

	info := Info(crop)
	return Outcome{
		Crop:       titleCaser.String(crop),
		Fertilizer: info.Fertilizer,
		Confidence: math.Round(prob*100) / 100,
		Tips:       info.Tips,
	}
}

// FeatureImportance reports each input's normalized share of the impurity
// reduction accumulated during training, rounded to 3 decimals.
func (c *Classifier) FeatureImportance() map[string]float64 {
	out := make(map[string]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		out[name] = math.Round(c.forest.Importance[i]*1000) / 1000
	}
	return out
}
