package vec

import "math"

// Vec2 is a point or direction in the plane.
type Vec2 [2]float64

// Vec3 is a point or direction in space.
type Vec3 [3]float64

// Vector is the set of supported vector types.
type Vector interface {
	Vec2 | Vec3
}

// Dim returns the number of components of V.
func Dim[V Vector]() int {
	var v V
	return len(v)
}

// Add returns a + b.
func Add[V Vector](a, b V) V {
	for i := 0; i < len(a); i++ {
		a[i] += b[i]
	}
	return a
}

// Sub returns a - b.
func Sub[V Vector](a, b V) V {
	for i := 0; i < len(a); i++ {
		a[i] -= b[i]
	}
	return a
}

// Scale returns v * s.
func Scale[V Vector](v V, s float64) V {
	for i := 0; i < len(v); i++ {
		v[i] *= s
	}
	return v
}

// Dot returns the dot product of a and b.
func Dot[V Vector](a, b V) float64 {
	var sum float64
	for i := 0; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// LengthSquared returns the squared euclidean length of v.
func LengthSquared[V Vector](v V) float64 {
	return Dot(v, v)
}

// Length returns the euclidean length of v.
func Length[V Vector](v V) float64 {
	return math.Sqrt(LengthSquared(v))
}

// Distance returns the euclidean distance between a and b.
func Distance[V Vector](a, b V) float64 {
	return Length(Sub(a, b))
}

// DistanceSquared returns the squared euclidean distance between a and b.
func DistanceSquared[V Vector](a, b V) float64 {
	return LengthSquared(Sub(a, b))
}

// Normalize returns v scaled to unit length.
// Returns false (and the zero vector) if v has zero length.
func Normalize[V Vector](v V) (V, bool) {
	l := Length(v)
	if l == 0 || math.IsNaN(l) {
		var zero V
		return zero, false
	}
	return Scale(v, 1/l), true
}

// Lerp returns the point at distance d from a in the direction of b.
//
// Unlike a parametric interpolation, d is an absolute distance and may exceed
// |b - a|. If a and b coincide there is no direction and a is returned.
func Lerp[V Vector](a, b V, d float64) V {
	dir, ok := Normalize(Sub(b, a))
	if !ok {
		return a
	}
	return Add(a, Scale(dir, d))
}

// XYZ returns the components of v padded to three dimensions.
// The z component of a Vec2 is 0.
func XYZ[V Vector](v V) (x, y, z float64) {
	var c [3]float64
	for i := 0; i < len(v); i++ {
		c[i] = v[i]
	}
	return c[0], c[1], c[2]
}

// FromXYZ builds a V from up to three components; surplus components are
// dropped.
func FromXYZ[V Vector](x, y, z float64) V {
	c := [3]float64{x, y, z}
	var v V
	for i := 0; i < len(v); i++ {
		v[i] = c[i]
	}
	return v
}

// Components returns v as a freshly allocated slice.
func Components[V Vector](v V) []float64 {
	out := make([]float64, len(v))
	for i := 0; i < len(v); i++ {
		out[i] = v[i]
	}
	return out
}

// FromComponents builds a V from a slice. Missing components are 0 and
// surplus components are dropped.
func FromComponents[V Vector](c []float64) V {
	var v V
	for i := 0; i < len(v) && i < len(c); i++ {
		v[i] = c[i]
	}
	return v
}
