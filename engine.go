package dla

import (
	"context"
	"iter"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/dla/export"
	"github.com/hupe1980/dla/spatial"
	"github.com/hupe1980/dla/spatial/rtree"
	"github.com/hupe1980/dla/vec"
)

// Engine grows a cluster by diffusion-limited aggregation.
//
// An Engine exclusively owns its cluster and spatial index. It is not safe
// for concurrent use; grow independent clusters with independent engines.
type Engine[V vec.Vector] struct {
	cfg     Config
	cluster *cluster[V]
	index   spatial.Index[V]
	sampler Sampler[V]
	logger  *Logger
	metrics MetricsCollector

	lastWalk WalkStats
}

// New creates an engine with an empty cluster.
//
// Options are applied over DefaultConfig. The only error is a sampler or
// index built for another dimension, or a non-empty index.
func New[V vec.Vector](optFns ...Option) (*Engine[V], error) {
	o := applyOptions(optFns)
	dim := vec.Dim[V]()

	e := &Engine[V]{
		cfg:     o.config,
		cluster: newCluster[V](),
		logger:  o.logger.WithDimension(dim),
		metrics: o.metricsCollector,
	}

	switch s := o.sampler.(type) {
	case nil:
		if o.seed != nil {
			e.sampler = NewSeededSampler[V](*o.seed)
		} else {
			e.sampler = newAmbientSampler[V]()
		}
	case Sampler[V]:
		e.sampler = s
	default:
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: dimensionOf(s), Component: "sampler"}
	}

	switch idx := o.index.(type) {
	case nil:
		e.index = rtree.New[V]()
	case spatial.Index[V]:
		if idx.Len() != 0 {
			return nil, ErrIndexNotEmpty
		}
		e.index = idx
	default:
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: dimensionOf(idx), Component: "index"}
	}

	return e, nil
}

// New2D creates a planar engine.
func New2D(optFns ...Option) (*Engine[vec.Vec2], error) {
	return New[vec.Vec2](optFns...)
}

// New3D creates a spatial engine.
func New3D(optFns ...Option) (*Engine[vec.Vec3], error) {
	return New[vec.Vec3](optFns...)
}

func dimensionOf(v any) int {
	switch v.(type) {
	case Sampler[vec.Vec2], spatial.Index[vec.Vec2]:
		return 2
	case Sampler[vec.Vec3], spatial.Index[vec.Vec3]:
		return 3
	default:
		return 0
	}
}

// SetParticleSpacing overwrites the particle spacing.
func (e *Engine[V]) SetParticleSpacing(d float64) { e.cfg.ParticleSpacing = d }

// SetAttractionDistance overwrites the capture radius.
// The bounding radius already accumulated is not recomputed.
func (e *Engine[V]) SetAttractionDistance(d float64) { e.cfg.AttractionDistance = d }

// SetMinMoveDistance overwrites the minimum walk step.
func (e *Engine[V]) SetMinMoveDistance(d float64) { e.cfg.MinMoveDistance = d }

// SetStubbornness overwrites the stubbornness. Existing attempt counters are kept.
func (e *Engine[V]) SetStubbornness(n int) { e.cfg.Stubbornness = n }

// SetStickiness overwrites the join probability.
func (e *Engine[V]) SetStickiness(p float64) { e.cfg.Stickiness = p }

// Config returns the current configuration.
func (e *Engine[V]) Config() Config { return e.cfg }

// Dimension returns 2 or 3.
func (e *Engine[V]) Dimension() int { return vec.Dim[V]() }

// Len returns the number of anchored points.
func (e *Engine[V]) Len() int { return e.cluster.len() }

// BoundingRadius returns the radius of the sphere, centered at the origin,
// that encloses every point plus the attraction distance at insertion time.
func (e *Engine[V]) BoundingRadius() float64 { return e.cluster.boundingRadius }

// Point returns the position of point id. It panics if id is out of range.
func (e *Engine[V]) Point(id int) V { return e.cluster.points[id] }

// Parent returns the parent label of point id. It panics if id is out of range.
func (e *Engine[V]) Parent(id int) int { return e.cluster.parents[id] }

// JoinAttempts returns how many walkers have tried to join point id.
// It panics if id is out of range.
func (e *Engine[V]) JoinAttempts(id int) int { return e.cluster.attempts[id] }

// Contacted returns the ids of all points that have been selected as a join
// candidate at least once. The bitmap is a copy.
func (e *Engine[V]) Contacted() *roaring.Bitmap { return e.cluster.contacted.Clone() }

// LastWalk returns the statistics of the most recent growth call.
func (e *Engine[V]) LastWalk() WalkStats { return e.lastWalk }

// Add anchors p unconditionally and returns its id.
//
// parent is stored as export metadata only. No distance or probability check
// is applied; this is how clusters are seeded.
func (e *Engine[V]) Add(p V, parent int) int {
	id := e.add(p, parent)
	e.metrics.RecordSeed()
	if e.logger.debugEnabled() {
		e.logger.LogSeed(context.Background(), id, parent, e.cluster.boundingRadius)
	}
	return id
}

func (e *Engine[V]) add(p V, parent int) int {
	id := e.cluster.insert(p, parent, e.cfg.AttractionDistance)
	e.index.Insert(p, id)
	return id
}

// Nearest returns the id of the anchored point closest to p.
// It panics with a *PreconditionError if the cluster is empty.
func (e *Engine[V]) Nearest(p V) int {
	id, ok := e.index.Nearest(p)
	if !ok {
		emptyClusterPanic("nearest")
	}
	return id
}

// AddParticle releases one walker and blocks until it has joined the cluster.
//
// There is no iteration bound: with sane parameters the walk terminates
// almost surely. It panics with a *PreconditionError if the cluster is empty.
func (e *Engine[V]) AddParticle() {
	if e.cluster.len() == 0 {
		emptyClusterPanic("add particle")
	}

	start := time.Now()
	cfg := e.cfg

	var walk WalkStats
	p := e.spawn()

	for {
		parent := e.Nearest(p)
		anchor := e.cluster.points[parent]
		d := vec.Distance(p, anchor)

		if d < cfg.AttractionDistance {
			walk.Contacts++
			if !e.shouldJoin(parent, cfg) {
				walk.Rejections++
				// push the walker just outside the capture radius
				p = e.towards(anchor, p, cfg.AttractionDistance+cfg.MinMoveDistance)
				continue
			}

			id := e.add(e.towards(anchor, p, cfg.ParticleSpacing), parent)
			e.finish(id, parent, walk, start)
			return
		}

		step := math.Max(cfg.MinMoveDistance, d-cfg.AttractionDistance)
		p = vec.Add(p, vec.Scale(e.sampler.Direction(), step))
		walk.Steps++

		if vec.Length(p) > e.cluster.boundingRadius*2 {
			p = e.spawn()
			walk.Resets++
		}
	}
}

func (e *Engine[V]) finish(id, parent int, walk WalkStats, start time.Time) {
	e.lastWalk = walk
	e.metrics.RecordParticle(walk, time.Since(start))
	if e.logger.debugEnabled() {
		e.logger.LogJoin(context.Background(), id, parent, walk)
	}
}

// spawn places a walker on the bounding sphere.
func (e *Engine[V]) spawn() V {
	return vec.Scale(e.sampler.Direction(), e.cluster.boundingRadius)
}

// shouldJoin counts the contact against parent and decides whether it sticks.
func (e *Engine[V]) shouldJoin(parent int, cfg Config) bool {
	if e.cluster.touch(parent) < cfg.Stubbornness {
		return false
	}
	return e.sampler.Float64() <= cfg.Stickiness
}

// towards returns the point at distance d from anchor in the direction of p.
// A walker sitting exactly on its anchor has no direction; a random one is used.
func (e *Engine[V]) towards(anchor, p V, d float64) V {
	if _, ok := vec.Normalize(vec.Sub(p, anchor)); !ok {
		p = vec.Add(anchor, e.sampler.Direction())
	}
	return vec.Lerp(anchor, p, d)
}

// Points yields the anchored positions in insertion order.
func (e *Engine[V]) Points() iter.Seq2[int, V] {
	return e.index.All()
}

// Records returns one export record per anchored point in insertion order.
// The z coordinate of planar clusters is 0.
func (e *Engine[V]) Records() []export.Record {
	out := make([]export.Record, 0, e.cluster.len())
	for id, p := range e.index.All() {
		x, y, z := vec.XYZ(p)
		out = append(out, export.Record{
			ID:     id,
			Parent: e.cluster.parents[id],
			X:      x,
			Y:      y,
			Z:      z,
		})
	}
	return out
}
