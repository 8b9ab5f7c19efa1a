package flat

import (
	"testing"

	"github.com/hupe1980/dla/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f := New[vec.Vec2]()

		_, ok := f.Nearest(vec.Vec2{1, 1})
		assert.False(t, ok)
		assert.Equal(t, 0, f.Len())
	})

	t.Run("Nearest", func(t *testing.T) {
		f := New[vec.Vec3]()
		f.Insert(vec.Vec3{1, 2, 3}, 0)
		f.Insert(vec.Vec3{4, 5, 6}, 1)
		f.Insert(vec.Vec3{7, 8, 9}, 2)

		id, ok := f.Nearest(vec.Vec3{6, 6, 6})
		require.True(t, ok)
		assert.Equal(t, 1, id)

		id, _ = f.Nearest(vec.Vec3{100, 100, 100})
		assert.Equal(t, 2, id)
	})

	t.Run("Tie resolves to first", func(t *testing.T) {
		f := New[vec.Vec2]()
		f.Insert(vec.Vec2{-1, 0}, 0)
		f.Insert(vec.Vec2{1, 0}, 1)

		id, _ := f.Nearest(vec.Vec2{0, 0})
		assert.Equal(t, 0, id)
	})

	t.Run("All in insertion order", func(t *testing.T) {
		f := New[vec.Vec2]()
		f.Insert(vec.Vec2{5, 5}, 0)
		f.Insert(vec.Vec2{0, 0}, 1)
		f.Insert(vec.Vec2{2, 2}, 2)

		var ids []int
		var pts []vec.Vec2
		for id, p := range f.All() {
			ids = append(ids, id)
			pts = append(pts, p)
		}
		assert.Equal(t, []int{0, 1, 2}, ids)
		assert.Equal(t, []vec.Vec2{{5, 5}, {0, 0}, {2, 2}}, pts)

		// early termination
		count := 0
		for range f.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}
