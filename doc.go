// Package dla grows fractal clusters by diffusion-limited aggregation.
//
// An Engine owns a cluster of anchored points. Each growth call releases a
// walker on the sphere enclosing the cluster and moves it in random steps
// until it comes within the attraction distance of an anchored point and
// sticks to it. Planar and spatial clusters share one implementation:
//
//	e, _ := dla.New2D(dla.WithSeed(42))
//	e.Add(vec.Vec2{}, 0)
//	for range 1000 {
//	    e.AddParticle()
//	}
//
// # Joining
//
// A walker that comes within AttractionDistance of its nearest point counts
// one contact against that point. The join is accepted only once the point has
// collected at least Stubbornness contacts in total, the current one included,
// and then with probability Stickiness. A rejected walker is moved back to
// just outside the capture radius and continues its walk.
//
// # Reproducibility
//
// All randomness comes from a Sampler. WithSeed seeds the default sampler;
// WithSampler injects any other source, which is how tests script walks.
//
// # Persistence
//
// Records feeds the export package (CSV, compression, blob stores, SQLite).
// WriteSnapshot and ReadSnapshot persist the full engine state including the
// join attempt counters:
//
//	var buf bytes.Buffer
//	_ = e.WriteSnapshot(&buf, codec.Default)
//	restored, _ := dla.ReadSnapshot[vec.Vec2](&buf)
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Independent engines share no state
// and can grow in parallel.
package dla
