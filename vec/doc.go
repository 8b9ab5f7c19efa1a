// Package vec provides the fixed-dimension vector algebra used by the
// aggregation engine.
//
// Vectors are plain arrays so they are comparable, copy by value and can be
// used as map keys. All operations are generic over the Vector constraint and
// are written once for both dimensions:
//
//	a := vec.Vec2{1, 2}
//	b := vec.Vec2{4, 6}
//	d := vec.Distance(a, b) // 5
//	p := vec.Lerp(a, b, 1)  // one unit from a towards b
package vec
