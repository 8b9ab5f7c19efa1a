// Package spatial defines the proximity index consumed by the aggregation engine.
//
// The engine only relies on the Index capability; any structure that answers
// exact nearest-neighbor queries over a growing point set can back it.
//
// # Built-in Implementations
//
//   - rtree.Index: R-tree, logarithmic queries (default)
//   - flat.Index: linear scan, exact reference for tests and tiny clusters
package spatial

import (
	"iter"

	"github.com/hupe1980/dla/vec"
)

// Index stores points tagged with an identifier.
//
// Implementations are not required to be safe for concurrent use.
type Index[V vec.Vector] interface {
	// Insert adds p under id. Identifiers are supplied by the caller.
	Insert(p V, id int)

	// Nearest returns the id of the stored point closest to q.
	// Returns false if the index is empty.
	Nearest(q V) (int, bool)

	// All yields every stored (id, point) pair in insertion order.
	All() iter.Seq2[int, V]

	// Len returns the number of stored points.
	Len() int
}
