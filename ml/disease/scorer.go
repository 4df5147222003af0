// Package disease scores crop photos against a fixed disease vocabulary.
// The scorer is intentionally a simulation: image statistics pick a weighted
// outcome bucket and one entry is drawn from it at random.
package disease

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"agro-advisory-api/ml/imaging"
	"agro-advisory-api/ml/sampling"
)

// FallbackName is the outcome returned when an image cannot be processed.
const FallbackName = "Unable to Detect"

// Outcome is one disease scoring result.
type Outcome struct {
	Disease     string  `json:"disease"`
	Confidence  float64 `json:"confidence"`
	Treatment   string  `json:"treatment"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
}

// bucket is a guarded weighted distribution; the first bucket whose guard
// matches the extracted features wins.
type bucket struct {
	name    string
	matches func(imaging.Features) bool
	weights []sampling.Weighted
}

var buckets = []bucket{
	{
		// Strong green with low variance reads as a healthy plant.
		name: "healthy",
		matches: func(f imaging.Features) bool {
			return f.GreenRatio > 0.6 && f.StdDev < 50
		},
		weights: []sampling.Weighted{
			{Value: "healthy", Weight: 0.7},
			{Value: "early_blight", Weight: 0.1},
			{Value: "leaf_spot", Weight: 0.1},
			{Value: "powdery_mildew", Weight: 0.05},
			{Value: "rust", Weight: 0.05},
		},
	},
	{
		// Brown dominance reads as blight or wilting.
		name: "brown",
		matches: func(f imaging.Features) bool {
			return f.BrownScore > 0.7
		},
		weights: []sampling.Weighted{
			{Value: "late_blight", Weight: 0.4},
			{Value: "early_blight", Weight: 0.3},
			{Value: "bacterial_wilt", Weight: 0.2},
			{Value: "anthracnose", Weight: 0.1},
		},
	},
	{
		// Dark images lean toward severe disease.
		name: "dark",
		matches: func(f imaging.Features) bool {
			return f.Brightness < 80
		},
		weights: []sampling.Weighted{
			{Value: "late_blight", Weight: 0.3},
			{Value: "bacterial_wilt", Weight: 0.25},
			{Value: "anthracnose", Weight: 0.2},
			{Value: "mosaic_virus", Weight: 0.15},
			{Value: "rust", Weight: 0.1},
		},
	},
	{
		name:    "general",
		matches: func(imaging.Features) bool { return true },
		weights: []sampling.Weighted{
			{Value: "leaf_spot", Weight: 0.25},
			{Value: "early_blight", Weight: 0.2},
			{Value: "powdery_mildew", Weight: 0.15},
			{Value: "rust", Weight: 0.15},
			{Value: "septoria_leaf_spot", Weight: 0.1},
			{Value: "healthy", Weight: 0.1},
			{Value: "anthracnose", Weight: 0.05},
		},
	},
}

var titleCaser = cases.Title(language.English)

// Scorer draws disease outcomes from the feature-selected buckets.
type Scorer struct {
	rng *sampling.RNG
}

// NewScorer builds a scorer and asserts that every bucket entry has a
// complete static detail row.
func NewScorer(rng *sampling.RNG) (*Scorer, error) {
	for _, b := range buckets {
		for _, w := range b.weights {
			d, ok := details[w.Value]
			if !ok {
				return nil, fmt.Errorf("disease %q in bucket %q has no detail row", w.Value, b.name)
			}
			if d.Treatment == "" || d.Description == "" || d.Severity == "" {
				return nil, fmt.Errorf("disease %q has an incomplete detail row", w.Value)
			}
		}
	}
	return &Scorer{rng: rng}, nil
}

// Score maps extracted features to one drawn outcome. Confidence is the
// drawn entry's bucket weight plus a uniform boost, capped at 0.95.
func (s *Scorer) Score(f imaging.Features) Outcome {
	var chosen []sampling.Weighted
	for _, b := range buckets {
		if b.matches(f) {
			chosen = b.weights
			break
		}
	}

	drawn, _ := sampling.WeightedChoice(s.rng, chosen)
	confidence := math.Min(0.95, drawn.Weight+s.rng.Uniform(0.05, 0.20))

	d := details[drawn.Value]
	return Outcome{
		Disease:     DisplayName(drawn.Value),
		Confidence:  round2(confidence),
		Treatment:   d.Treatment,
		Description: d.Description,
		Severity:    d.Severity,
	}
}

// ScoreImage decodes, extracts and scores in one call. Decode and processing
// failures never escape: they collapse into the fixed fallback outcome.
func (s *Scorer) ScoreImage(r io.Reader) Outcome {
	img, err := imaging.Decode(r)
	if err != nil {
		return fallbackOutcome(err)
	}
	return s.Score(imaging.Extract(img))
}

// ScoreFile scores the image stored at path, with the same fallback contract
// as ScoreImage.
func (s *Scorer) ScoreFile(path string) Outcome {
	img, err := imaging.Open(path)
	if err != nil {
		return fallbackOutcome(err)
	}
	return s.Score(imaging.Extract(img))
}

func fallbackOutcome(err error) Outcome {
	return Outcome{
		Disease:     FallbackName,
		Confidence:  0.0,
		Treatment:   "Please upload a clearer image of the crop leaves.",
		Description: fmt.Sprintf("Image processing error: %v", err),
		Severity:    "Unknown",
	}
}

// Info returns the static detail row for a display or vocabulary name,
// falling back to a generic consult-expert row for unknown names.
func Info(name string) Detail {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if d, ok := details[key]; ok {
		return d
	}
	return unknownDetail
}

// DisplayName formats a vocabulary key for humans: "early_blight" becomes
// "Early Blight".
func DisplayName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Vocabulary returns the set of scoreable vocabulary keys.
func Vocabulary() []string {
	out := make([]string, 0, len(details))
	for k := range details {
		out = append(out, k)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
