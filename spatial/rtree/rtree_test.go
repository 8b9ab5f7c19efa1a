package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dla/spatial/flat"
	"github.com/hupe1980/dla/testutil"
	"github.com/hupe1980/dla/vec"
)

func TestRTree(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		x := New[vec.Vec3]()

		_, ok := x.Nearest(vec.Vec3{})
		assert.False(t, ok)
		assert.Equal(t, 0, x.Len())
	})

	t.Run("Nearest", func(t *testing.T) {
		x := New[vec.Vec2]()
		x.Insert(vec.Vec2{0, 0}, 0)
		x.Insert(vec.Vec2{10, 0}, 1)
		x.Insert(vec.Vec2{0, 10}, 2)

		id, ok := x.Nearest(vec.Vec2{8, 1})
		require.True(t, ok)
		assert.Equal(t, 1, id)

		id, _ = x.Nearest(vec.Vec2{-3, 9})
		assert.Equal(t, 2, id)
	})

	t.Run("Options", func(t *testing.T) {
		x := New[vec.Vec2](func(o *Options) {
			o.MinChildren = 2
			o.MaxChildren = 1
		})
		for i := range 100 {
			x.Insert(vec.Vec2{float64(i), 0}, i)
		}
		id, _ := x.Nearest(vec.Vec2{41.2, 3})
		assert.Equal(t, 41, id)
	})
}

func TestRTreeMatchesFlat(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := testutil.Points[vec.Vec3](rng, 2000, 100)

	tree := New[vec.Vec3]()
	ref := flat.New[vec.Vec3]()
	for i, p := range points {
		tree.Insert(p, i)
		ref.Insert(p, i)
	}
	require.Equal(t, ref.Len(), tree.Len())

	for _, q := range testutil.Points[vec.Vec3](rng, 500, 150) {
		got, ok := tree.Nearest(q)
		require.True(t, ok)
		want, _ := ref.Nearest(q)
		assert.Equal(t, want, got)
		assert.Equal(t, testutil.ExactNearest(points, q), got)
	}

	var ids []int
	for id, p := range tree.All() {
		assert.Equal(t, points[id], p)
		ids = append(ids, id)
	}
	require.Len(t, ids, 2000)
	for i, id := range ids {
		assert.Equal(t, i, id)
	}
}
