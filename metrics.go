package dla

import (
	"sync/atomic"
	"time"
)

// WalkStats describes the random walk performed by a single growth call.
type WalkStats struct {
	// Steps is the number of random moves taken.
	Steps int
	// Contacts is the number of times the walker came within attraction distance.
	Contacts int
	// Rejections is the number of contacts that did not result in a join.
	Rejections int
	// Resets is the number of times the walker escaped and was respawned.
	Resets int
}

// MetricsCollector defines an interface for collecting growth metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSeed is called after each point placed without a walk.
	RecordSeed()

	// RecordParticle is called after each growth call with the statistics of
	// its walk and the total time taken.
	RecordParticle(walk WalkStats, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed()                             {}
func (NoopMetricsCollector) RecordParticle(WalkStats, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Safe for concurrent use, so one collector may be shared by several engines.
type BasicMetricsCollector struct {
	SeedCount       atomic.Int64
	ParticleCount   atomic.Int64
	StepCount       atomic.Int64
	ContactCount    atomic.Int64
	RejectionCount  atomic.Int64
	ResetCount      atomic.Int64
	ParticleNanos   atomic.Int64
	MaxParticleNano atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed() {
	b.SeedCount.Add(1)
}

// RecordParticle implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParticle(walk WalkStats, duration time.Duration) {
	b.ParticleCount.Add(1)
	b.StepCount.Add(int64(walk.Steps))
	b.ContactCount.Add(int64(walk.Contacts))
	b.RejectionCount.Add(int64(walk.Rejections))
	b.ResetCount.Add(int64(walk.Resets))
	b.ParticleNanos.Add(duration.Nanoseconds())

	for {
		cur := b.MaxParticleNano.Load()
		if duration.Nanoseconds() <= cur || b.MaxParticleNano.CompareAndSwap(cur, duration.Nanoseconds()) {
			break
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		SeedCount:        b.SeedCount.Load(),
		ParticleCount:    b.ParticleCount.Load(),
		StepCount:        b.StepCount.Load(),
		ContactCount:     b.ContactCount.Load(),
		RejectionCount:   b.RejectionCount.Load(),
		ResetCount:       b.ResetCount.Load(),
		MaxParticleNanos: b.MaxParticleNano.Load(),
	}
	if s.ParticleCount > 0 {
		s.ParticleAvgNanos = b.ParticleNanos.Load() / s.ParticleCount
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SeedCount        int64
	ParticleCount    int64
	StepCount        int64
	ContactCount     int64
	RejectionCount   int64
	ResetCount       int64
	ParticleAvgNanos int64
	MaxParticleNanos int64
}
