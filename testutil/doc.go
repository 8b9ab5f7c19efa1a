// Package testutil provides testing utilities for dla.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points and records and for
// computing exact nearest neighbors as ground truth for spatial indexes.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := testutil.Points[vec.Vec3](rng, 1000, 100)
//
// # Exact Search (Ground Truth)
//
//	id := testutil.ExactNearest(pts, query)
package testutil
