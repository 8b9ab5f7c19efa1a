// Package flat provides an exact, brute-force spatial index.
//
// Every nearest-neighbor query scans all points, so it is only suitable for
// small clusters or as a reference implementation in tests.
package flat

import (
	"iter"

	"github.com/hupe1980/dla/spatial"
	"github.com/hupe1980/dla/vec"
)

// Compile time check to ensure Index satisfies the spatial.Index interface.
var _ spatial.Index[vec.Vec2] = (*Index[vec.Vec2])(nil)

type node[V vec.Vector] struct {
	id int
	p  V
}

// Index is a linear scan index.
type Index[V vec.Vector] struct {
	nodes []node[V]
}

// New creates an empty flat index.
func New[V vec.Vector]() *Index[V] {
	return &Index[V]{}
}

// Insert adds p under id.
func (f *Index[V]) Insert(p V, id int) {
	f.nodes = append(f.nodes, node[V]{id: id, p: p})
}

// Nearest returns the id of the closest point.
// Ties resolve to the earliest inserted point.
func (f *Index[V]) Nearest(q V) (int, bool) {
	if len(f.nodes) == 0 {
		return 0, false
	}

	best := 0
	bestDist := vec.DistanceSquared(q, f.nodes[0].p)
	for i := 1; i < len(f.nodes); i++ {
		if d := vec.DistanceSquared(q, f.nodes[i].p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return f.nodes[best].id, true
}

// All yields the stored points in insertion order.
func (f *Index[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for _, n := range f.nodes {
			if !yield(n.id, n.p) {
				return
			}
		}
	}
}

// Len returns the number of stored points.
func (f *Index[V]) Len() int {
	return len(f.nodes)
}
