package dla

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/dla/vec"
)

// cluster is the ordered set of anchored points.
//
// Slices are indexed by point id. Points are never moved or removed; only the
// join attempt counters change after insertion.
type cluster[V vec.Vector] struct {
	points   []V
	parents  []int
	attempts []int

	// contacted holds every id whose attempt counter is non-zero.
	contacted *roaring.Bitmap

	boundingRadius float64
}

func newCluster[V vec.Vector]() *cluster[V] {
	return &cluster[V]{
		contacted: roaring.New(),
	}
}

func (c *cluster[V]) len() int {
	return len(c.points)
}

// insert appends p and grows the bounding radius by margin around it.
func (c *cluster[V]) insert(p V, parent int, margin float64) int {
	id := len(c.points)
	c.points = append(c.points, p)
	c.parents = append(c.parents, parent)
	c.attempts = append(c.attempts, 0)
	c.boundingRadius = math.Max(c.boundingRadius, vec.Length(p)+margin)
	return id
}

// touch records a contact with point id and returns its new attempt count.
func (c *cluster[V]) touch(id int) int {
	c.attempts[id]++
	c.contacted.Add(uint32(id))
	return c.attempts[id]
}
