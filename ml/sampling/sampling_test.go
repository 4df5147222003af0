package sampling

import (
	"math"
	"testing"
)

func TestUniformBounds(t *testing.T) {
	g := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		v := g.Uniform(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Uniform(-3, 5) = %v, out of range", v)
		}
	}
}

func TestWeightedChoiceEmpty(t *testing.T) {
	g := NewSeeded(1)

	if _, ok := WeightedChoice(g, nil); ok {
		t.Error("expected ok=false for nil items")
	}
	if _, ok := WeightedChoice(g, []Weighted{{Value: "a", Weight: 0}}); ok {
		t.Error("expected ok=false for zero total weight")
	}
}

func TestWeightedChoiceSingleItem(t *testing.T) {
	g := NewSeeded(1)
	items := []Weighted{{Value: "only", Weight: 0.3}}

	for i := 0; i < 100; i++ {
		got, ok := WeightedChoice(g, items)
		if !ok || got.Value != "only" {
			t.Fatalf("WeightedChoice = (%v, %v), want (only, true)", got.Value, ok)
		}
	}
}

func TestWeightedChoiceSkipsNonPositive(t *testing.T) {
	g := NewSeeded(7)
	items := []Weighted{
		{Value: "never", Weight: 0},
		{Value: "always", Weight: 1},
		{Value: "negative", Weight: -2},
	}

	for i := 0; i < 200; i++ {
		got, ok := WeightedChoice(g, items)
		if !ok {
			t.Fatal("expected ok=true")
		}
		if got.Value != "always" {
			t.Fatalf("drew %q, want %q", got.Value, "always")
		}
	}
}

func TestWeightedChoiceDistribution(t *testing.T) {
	// With relative weights 0.7/0.2/0.1 the empirical frequencies over many
	// draws should land near the normalized weights.
	g := NewSeeded(42)
	items := []Weighted{
		{Value: "heavy", Weight: 0.7},
		{Value: "mid", Weight: 0.2},
		{Value: "light", Weight: 0.1},
	}

	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		got, ok := WeightedChoice(g, items)
		if !ok {
			t.Fatal("expected ok=true")
		}
		counts[got.Value]++
	}

	wantFreq := map[string]float64{"heavy": 0.7, "mid": 0.2, "light": 0.1}
	for value, want := range wantFreq {
		gotFreq := float64(counts[value]) / n
		if math.Abs(gotFreq-want) > 0.02 {
			t.Errorf("freq(%s) = %.3f, want %.3f ± 0.02", value, gotFreq, want)
		}
	}
}

func TestSeededReproducibility(t *testing.T) {
	a := NewSeeded(99)
	b := NewSeeded(99)
	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed should produce identical sequences")
		}
	}
}
