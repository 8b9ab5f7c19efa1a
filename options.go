package dla

import (
	"log/slog"

	"github.com/hupe1980/dla/spatial"
	"github.com/hupe1980/dla/vec"
)

type options struct {
	config           Config
	sampler          any
	seed             *uint64
	index            any
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures engine construction.
type Option func(*options)

// WithConfig replaces the whole growth configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithParticleSpacing sets the distance between a joining particle and its parent.
func WithParticleSpacing(d float64) Option {
	return func(o *options) {
		o.config.ParticleSpacing = d
	}
}

// WithAttractionDistance sets the capture radius.
func WithAttractionDistance(d float64) Option {
	return func(o *options) {
		o.config.AttractionDistance = d
	}
}

// WithMinMoveDistance sets the minimum walk step.
func WithMinMoveDistance(d float64) Option {
	return func(o *options) {
		o.config.MinMoveDistance = d
	}
}

// WithStubbornness sets the number of contacts a point needs before it accepts a join.
func WithStubbornness(n int) Option {
	return func(o *options) {
		o.config.Stubbornness = n
	}
}

// WithStickiness sets the join probability once stubbornness is satisfied.
func WithStickiness(p float64) Option {
	return func(o *options) {
		o.config.Stickiness = p
	}
}

// WithSampler injects the random source of the engine.
//
// The sampler must be built for the engine's vector type; New reports an
// ErrDimensionMismatch otherwise.
//
//	s := dla.NewSeededSampler[vec.Vec2](42)
//	e, _ := dla.New2D(dla.WithSampler[vec.Vec2](s))
func WithSampler[V vec.Vector](s Sampler[V]) Option {
	return func(o *options) {
		o.sampler = s
	}
}

// WithSeed makes growth reproducible by seeding the default sampler.
// Ignored when WithSampler is also given.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithIndex replaces the default R-tree with another spatial index.
// The index must be empty.
func WithIndex[V vec.Vector](idx spatial.Index[V]) Option {
	return func(o *options) {
		o.index = idx
	}
}

// WithMetricsCollector configures a metrics collector for monitoring growth.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dla.BasicMetricsCollector{}
//	e, _ := dla.New2D(dla.WithMetricsCollector(metrics))
//	// ... grow ...
//	stats := metrics.GetStats()
//	fmt.Printf("Particles: %d, Avg steps: %d\n", stats.ParticleCount, stats.StepCount/stats.ParticleCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for growth.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dla.NewJSONLogger(slog.LevelDebug)
//	e, _ := dla.New3D(dla.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		config:           DefaultConfig(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
