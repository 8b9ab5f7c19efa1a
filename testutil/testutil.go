package testutil

import (
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/dla/export"
	"github.com/hupe1980/dla/vec"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	r := &RNG{seed: seed}
	r.Reset()
	return r
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed+1))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Points returns num points drawn uniformly from the ball of the given radius.
func Points[V vec.Vector](r *RNG, num int, radius float64) []V {
	out := make([]V, num)
	for i := range out {
		out[i] = vec.Scale(vec.RandomInUnitBall[V](r), radius)
	}
	return out
}

// Records returns num export records with parents pointing at earlier ids and
// coordinates in [-scale, scale).
func Records(r *RNG, num int, scale float64) []export.Record {
	out := make([]export.Record, num)
	for i := range out {
		parent := 0
		if i > 0 {
			parent = r.IntN(i)
		}
		out[i] = export.Record{
			ID:     i,
			Parent: parent,
			X:      (2*r.Float64() - 1) * scale,
			Y:      (2*r.Float64() - 1) * scale,
			Z:      (2*r.Float64() - 1) * scale,
		}
	}
	return out
}

// ExactNearest returns the index of the point closest to q by linear scan.
// Ties resolve to the lowest index. It returns -1 for an empty slice.
func ExactNearest[V vec.Vector](points []V, q V) int {
	best, bestDist := -1, 0.0
	for i, p := range points {
		d := vec.DistanceSquared(p, q)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
