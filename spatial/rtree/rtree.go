// Package rtree provides an R-tree backed spatial index.
//
// The tree answers nearest-neighbor queries in logarithmic time and is the
// default index of the aggregation engine. Insertion order is tracked on the
// side so iteration is stable regardless of how the tree rebalances.
package rtree

import (
	"iter"

	"github.com/dhconnelly/rtreego"

	"github.com/hupe1980/dla/spatial"
	"github.com/hupe1980/dla/vec"
)

// Compile time check to ensure Index satisfies the spatial.Index interface.
var _ spatial.Index[vec.Vec3] = (*Index[vec.Vec3])(nil)

const (
	// DefaultMinChildren is the minimum branching factor of a node.
	DefaultMinChildren = 25
	// DefaultMaxChildren is the maximum branching factor of a node.
	DefaultMaxChildren = 50

	// pointTolerance is the half side length of the box stored for a point.
	pointTolerance = 1e-12
)

// Options configures the tree shape.
type Options struct {
	MinChildren int
	MaxChildren int
}

// DefaultOptions returns the default tree shape.
func DefaultOptions() Options {
	return Options{
		MinChildren: DefaultMinChildren,
		MaxChildren: DefaultMaxChildren,
	}
}

type entry[V vec.Vector] struct {
	id   int
	p    V
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry[V]) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an R-tree over points.
type Index[V vec.Vector] struct {
	tree    *rtreego.Rtree
	entries []*entry[V]
}

// New creates an empty R-tree index.
func New[V vec.Vector](optFns ...func(o *Options)) *Index[V] {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MinChildren < 1 {
		opts.MinChildren = 1
	}
	if opts.MaxChildren < 2*opts.MinChildren {
		opts.MaxChildren = 2 * opts.MinChildren
	}

	return &Index[V]{
		tree: rtreego.NewTree(vec.Dim[V](), opts.MinChildren, opts.MaxChildren),
	}
}

// Insert adds p under id.
func (x *Index[V]) Insert(p V, id int) {
	e := &entry[V]{
		id:   id,
		p:    p,
		rect: rtreego.Point(vec.Components(p)).ToRect(pointTolerance),
	}
	x.tree.Insert(e)
	x.entries = append(x.entries, e)
}

// Nearest returns the id of the closest point.
func (x *Index[V]) Nearest(q V) (int, bool) {
	if len(x.entries) == 0 {
		return 0, false
	}

	obj := x.tree.NearestNeighbor(rtreego.Point(vec.Components(q)))
	e, ok := obj.(*entry[V])
	if !ok {
		return 0, false
	}
	return e.id, true
}

// All yields the stored points in insertion order.
func (x *Index[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for _, e := range x.entries {
			if !yield(e.id, e.p) {
				return
			}
		}
	}
}

// Len returns the number of stored points.
func (x *Index[V]) Len() int {
	return len(x.entries)
}
