package dla

import (
	"math/rand/v2"

	"github.com/hupe1980/dla/vec"
)

// Sampler supplies all randomness consumed by a growth call.
//
// Engines never touch a global generator; inject a seeded or scripted
// Sampler to make growth reproducible.
type Sampler[V vec.Vector] interface {
	// Direction returns a uniformly distributed unit vector.
	Direction() V

	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// RandSampler is the default Sampler backed by math/rand/v2.
// It is not safe for concurrent use.
type RandSampler[V vec.Vector] struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler drawing from src.
func NewSampler[V vec.Vector](src rand.Source) *RandSampler[V] {
	return &RandSampler[V]{rng: rand.New(src)}
}

// NewSeededSampler returns a reproducible Sampler for the given seed.
func NewSeededSampler[V vec.Vector](seed uint64) *RandSampler[V] {
	return NewSampler[V](rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newAmbientSampler seeds a fresh generator from the runtime's entropy.
func newAmbientSampler[V vec.Vector]() *RandSampler[V] {
	return NewSampler[V](rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Direction implements Sampler.
func (s *RandSampler[V]) Direction() V {
	return vec.RandomDirection[V](s.rng)
}

// Float64 implements Sampler.
func (s *RandSampler[V]) Float64() float64 {
	return s.rng.Float64()
}
