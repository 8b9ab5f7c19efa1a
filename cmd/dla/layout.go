package main

import (
	"math"

	"github.com/hupe1980/dla/internal/config"
	"github.com/hupe1980/dla/vec"
)

type seed[V vec.Vector] struct {
	pos    V
	parent int
}

// seedLayout returns the seeds placed before the first growth call.
// Every layout lies in the xy plane.
func seedLayout[V vec.Vector](l config.LayoutConfig) []seed[V] {
	switch l.Kind {
	case config.LayoutPair:
		return []seed[V]{
			{pos: vec.FromXYZ[V](l.Radius, 0, 0), parent: 0},
			{pos: vec.FromXYZ[V](-l.Radius, 0, 0), parent: 1},
		}
	case config.LayoutCircle:
		out := make([]seed[V], l.Count)
		for i := range out {
			angle := 2 * math.Pi * float64(i) / float64(l.Count)
			out[i] = seed[V]{
				pos:    vec.FromXYZ[V](l.Radius*math.Cos(angle), l.Radius*math.Sin(angle), 0),
				parent: i + 1,
			}
		}
		return out
	default:
		return []seed[V]{{parent: 0}}
	}
}
