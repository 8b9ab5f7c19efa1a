package vec

// Float64Source yields uniformly distributed values in [0, 1).
//
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Float64Source interface {
	Float64() float64
}

// RandomInUnitBall draws a point uniformly from the open unit ball using
// rejection sampling. The origin itself is rejected so the result can always
// be normalized.
func RandomInUnitBall[V Vector](src Float64Source) V {
	for {
		var v V
		for i := 0; i < len(v); i++ {
			v[i] = src.Float64()*2 - 1
		}
		if l2 := LengthSquared(v); l2 < 1 && l2 > 0 {
			return v
		}
	}
}

// RandomDirection returns a uniformly distributed unit vector.
func RandomDirection[V Vector](src Float64Source) V {
	dir, _ := Normalize(RandomInUnitBall[V](src))
	return dir
}
