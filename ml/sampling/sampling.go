// Package sampling provides the shared random primitives used by the
// simulated predictors: a mutex-guarded rand source and weighted choice
// over cumulative weights. Scorers take a *RNG so tests can seed them.
package sampling

import (
	"math/rand"
	"sync"
	"time"
)

// RNG wraps math/rand with a mutex so one source can be shared across
// concurrent requests.
type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns an RNG seeded from the wall clock.
func New() *RNG {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an RNG with a fixed seed for reproducible draws.
func NewSeeded(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1).
func (g *RNG) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Float64()
}

// Uniform returns a uniform draw in [lo, hi).
func (g *RNG) Uniform(lo, hi float64) float64 {
	return lo + g.Float64()*(hi-lo)
}

// NormFloat64 returns a standard normal draw.
func (g *RNG) NormFloat64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.NormFloat64()
}

// Intn returns a uniform draw in [0, n).
func (g *RNG) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Intn(n)
}

// Perm returns a random permutation of [0, n).
func (g *RNG) Perm(n int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Perm(n)
}

// Weighted is one candidate in a weighted draw. Weights are relative and
// need not sum to 1.
type Weighted struct {
	Value  string
	Weight float64
}

// WeightedChoice draws one item proportionally to its weight using a
// cumulative-weight array and a single uniform draw. Returns false when
// items is empty or the total weight is not positive.
func WeightedChoice(g *RNG, items []Weighted) (Weighted, bool) {
	var total float64
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if len(items) == 0 || total <= 0 {
		return Weighted{}, false
	}

	target := g.Float64() * total
	var cum float64
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		cum += it.Weight
		if target < cum {
			return it, true
		}
	}
	// Float rounding can leave target == total; fall back to the last
	// positive-weight item.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i], true
		}
	}
	return Weighted{}, false
}
