// Package config loads the settings of the dla command line harness.
//
// Settings are resolved in three layers: built-in defaults, an optional YAML
// file, and DLA_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/dla"
	"github.com/hupe1980/dla/codec"
	"github.com/hupe1980/dla/export"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DLA_"

// Seed layouts.
const (
	LayoutPoint  = "point"
	LayoutPair   = "pair"
	LayoutCircle = "circle"
)

// Config is the harness configuration.
type Config struct {
	// Dim is 2 or 3.
	Dim int `yaml:"dim" env:"DIM"`

	// Particles is the number of growth calls per run.
	Particles int `yaml:"particles" env:"PARTICLES"`

	// Runs is the number of independent clusters to grow.
	Runs int `yaml:"runs" env:"RUNS"`

	// Concurrency bounds how many runs grow at once; 0 means one per CPU.
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`

	// Seed makes runs reproducible. Run i uses Seed+i. 0 selects random seeds.
	Seed uint64 `yaml:"seed" env:"SEED"`

	Output  OutputConfig  `yaml:"output" envPrefix:"OUTPUT_"`
	Layout  LayoutConfig  `yaml:"layout" envPrefix:"LAYOUT_"`
	Growth  GrowthConfig  `yaml:"growth" envPrefix:"GROWTH_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
}

// OutputConfig selects where results are written.
type OutputConfig struct {
	// URL is a directory, file://, s3://bucket/prefix or minio://host/bucket/prefix.
	URL string `yaml:"url" env:"URL"`

	// Compression is none, zstd or lz4.
	Compression string `yaml:"compression" env:"COMPRESSION"`

	// SQLite is an optional database file receiving every run.
	SQLite string `yaml:"sqlite" env:"SQLITE"`

	// Snapshot additionally writes a restorable engine snapshot per run.
	Snapshot bool `yaml:"snapshot" env:"SNAPSHOT"`

	// Codec names the snapshot codec.
	Codec string `yaml:"codec" env:"CODEC"`
}

// LayoutConfig places the seeds of every run.
type LayoutConfig struct {
	// Kind is point, pair or circle.
	Kind string `yaml:"kind" env:"KIND"`

	// Count is the number of seeds on the circle.
	Count int `yaml:"count" env:"COUNT"`

	// Radius is the circle radius or half the pair distance.
	Radius float64 `yaml:"radius" env:"RADIUS"`
}

// GrowthConfig mirrors dla.Config.
type GrowthConfig struct {
	ParticleSpacing    float64 `yaml:"particle_spacing" env:"PARTICLE_SPACING"`
	AttractionDistance float64 `yaml:"attraction_distance" env:"ATTRACTION_DISTANCE"`
	MinMoveDistance    float64 `yaml:"min_move_distance" env:"MIN_MOVE_DISTANCE"`
	Stubbornness       int     `yaml:"stubbornness" env:"STUBBORNNESS"`
	Stickiness         float64 `yaml:"stickiness" env:"STICKINESS"`
}

// Engine converts g into an engine configuration.
func (g GrowthConfig) Engine() dla.Config {
	return dla.Config{
		ParticleSpacing:    g.ParticleSpacing,
		AttractionDistance: g.AttractionDistance,
		MinMoveDistance:    g.MinMoveDistance,
		Stubbornness:       g.Stubbornness,
		Stickiness:         g.Stickiness,
	}
}

// LoggingConfig configures the harness logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level" env:"LEVEL"`

	// Format is text or json.
	Format string `yaml:"format" env:"FORMAT"`
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	def := dla.DefaultConfig()
	return &Config{
		Dim:       2,
		Particles: 1000,
		Runs:      1,
		Output: OutputConfig{
			URL:         "out",
			Compression: "none",
			Codec:       codec.Default.Name(),
		},
		Layout: LayoutConfig{
			Kind:   LayoutPoint,
			Count:  12,
			Radius: 60,
		},
		Growth: GrowthConfig{
			ParticleSpacing:    def.ParticleSpacing,
			AttractionDistance: def.AttractionDistance,
			MinMoveDistance:    def.MinMoveDistance,
			Stubbornness:       def.Stubbornness,
			Stickiness:         def.Stickiness,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load resolves the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every setting and joins all violations.
//
// The engine accepts any growth parameters; the harness rejects the ones for
// which a run would never finish.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if c.Dim != 2 && c.Dim != 3 {
		add("dim", "must be 2 or 3, got %d", c.Dim)
	}
	if c.Particles < 0 {
		add("particles", "must be non-negative, got %d", c.Particles)
	}
	if c.Runs < 1 {
		add("runs", "must be at least 1, got %d", c.Runs)
	}
	if c.Concurrency < 0 {
		add("concurrency", "must be non-negative, got %d", c.Concurrency)
	}

	if strings.TrimSpace(c.Output.URL) == "" {
		add("output.url", "must not be empty")
	}
	if _, err := export.ParseCompression(c.Output.Compression); err != nil {
		add("output.compression", "%v", err)
	}
	if _, ok := codec.ByName(c.Output.Codec); !ok {
		add("output.codec", "unknown codec %q (valid: %s)", c.Output.Codec, strings.Join(codec.Names(), ", "))
	}

	switch c.Layout.Kind {
	case LayoutPoint:
	case LayoutPair:
		if c.Layout.Radius <= 0 {
			add("layout.radius", "must be positive, got %g", c.Layout.Radius)
		}
	case LayoutCircle:
		if c.Layout.Count < 1 {
			add("layout.count", "must be at least 1, got %d", c.Layout.Count)
		}
		if c.Layout.Radius <= 0 {
			add("layout.radius", "must be positive, got %g", c.Layout.Radius)
		}
	default:
		add("layout.kind", "must be point, pair or circle, got %q", c.Layout.Kind)
	}

	g := c.Growth
	if g.ParticleSpacing <= 0 {
		add("growth.particle_spacing", "must be positive, got %g", g.ParticleSpacing)
	}
	if g.AttractionDistance <= 0 {
		add("growth.attraction_distance", "must be positive, got %g", g.AttractionDistance)
	}
	if g.MinMoveDistance <= 0 {
		add("growth.min_move_distance", "must be positive, got %g", g.MinMoveDistance)
	}
	if g.Stubbornness < 0 {
		add("growth.stubbornness", "must be non-negative, got %d", g.Stubbornness)
	}
	if g.Stickiness <= 0 || g.Stickiness > 1 {
		add("growth.stickiness", "must be in (0, 1], got %g", g.Stickiness)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		add("logging.level", "%v", err)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		add("logging.format", "must be text or json, got %q", c.Logging.Format)
	}

	return errors.Join(errs...)
}
