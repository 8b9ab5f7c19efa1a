package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/dla"
	"github.com/hupe1980/dla/blobstore"
	"github.com/hupe1980/dla/codec"
	"github.com/hupe1980/dla/export"
	"github.com/hupe1980/dla/internal/config"
	"github.com/hupe1980/dla/vec"
)

func newGrowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow clusters and write them as CSV",
		Example: `  dla grow --particles 10000 --output out
  dla grow --dim 3 --runs 8 --seed 1 --compress zstd --output s3://bucket/clusters
  dla grow --layout circle --seeds 24 --seed-radius 80 --output minio://localhost:9000/dla`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := applyGrowFlags(cmd.Flags(), cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg.Output.URL)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}

			results, err := grow(ctx, cfg, store, logger)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}

	f := cmd.Flags()
	f.Int("dim", 2, "Dimension (2 or 3)")
	f.IntP("particles", "n", 1000, "Growth calls per run")
	f.Int("runs", 1, "Number of independent clusters")
	f.Int("concurrency", 0, "Runs grown at once (0 = one per CPU)")
	f.Uint64("seed", 0, "Random seed; run i uses seed+i (0 = random)")
	f.StringP("output", "o", "out", "Directory, file://, s3://bucket/prefix or minio://host/bucket/prefix")
	f.String("compress", "none", "Compression: none, zstd or lz4")
	f.String("sqlite", "", "Also write every run to this SQLite database")
	f.Bool("snapshot", false, "Also write a restorable engine snapshot per run")
	f.String("codec", codec.Default.Name(), "Snapshot codec: json or go-json")
	f.String("layout", config.LayoutPoint, "Seed layout: point, pair or circle")
	f.Int("seeds", 12, "Number of seeds for the circle layout")
	f.Float64("seed-radius", 60, "Circle radius or half distance of the pair layout")
	f.Float64("spacing", dla.DefaultParticleSpacing, "Particle spacing")
	f.Float64("attraction", dla.DefaultAttractionDistance, "Attraction distance")
	f.Float64("min-move", dla.DefaultMinMoveDistance, "Minimum move distance")
	f.Int("stubbornness", dla.DefaultStubbornness, "Contacts a point needs before it accepts a join")
	f.Float64("stickiness", dla.DefaultStickiness, "Join probability once stubbornness is met")
	f.String("log-level", "info", "Log level: debug, info, warn or error")
	f.String("log-format", "text", "Log format: text or json")

	return cmd
}

// applyGrowFlags copies explicitly set flags over cfg.
func applyGrowFlags(f *pflag.FlagSet, cfg *config.Config) error {
	var err error
	set := func(name string, apply func()) {
		if err == nil && f.Changed(name) {
			apply()
		}
	}
	getInt := func(name string) int {
		v, e := f.GetInt(name)
		if e != nil && err == nil {
			err = e
		}
		return v
	}
	getFloat := func(name string) float64 {
		v, e := f.GetFloat64(name)
		if e != nil && err == nil {
			err = e
		}
		return v
	}
	getString := func(name string) string {
		v, e := f.GetString(name)
		if e != nil && err == nil {
			err = e
		}
		return v
	}

	set("dim", func() { cfg.Dim = getInt("dim") })
	set("particles", func() { cfg.Particles = getInt("particles") })
	set("runs", func() { cfg.Runs = getInt("runs") })
	set("concurrency", func() { cfg.Concurrency = getInt("concurrency") })
	set("seed", func() {
		v, e := f.GetUint64("seed")
		if e != nil {
			err = e
		}
		cfg.Seed = v
	})
	set("output", func() { cfg.Output.URL = getString("output") })
	set("compress", func() { cfg.Output.Compression = getString("compress") })
	set("sqlite", func() { cfg.Output.SQLite = getString("sqlite") })
	set("snapshot", func() {
		v, e := f.GetBool("snapshot")
		if e != nil {
			err = e
		}
		cfg.Output.Snapshot = v
	})
	set("codec", func() { cfg.Output.Codec = getString("codec") })
	set("layout", func() { cfg.Layout.Kind = getString("layout") })
	set("seeds", func() { cfg.Layout.Count = getInt("seeds") })
	set("seed-radius", func() { cfg.Layout.Radius = getFloat("seed-radius") })
	set("spacing", func() { cfg.Growth.ParticleSpacing = getFloat("spacing") })
	set("attraction", func() { cfg.Growth.AttractionDistance = getFloat("attraction") })
	set("min-move", func() { cfg.Growth.MinMoveDistance = getFloat("min-move") })
	set("stubbornness", func() { cfg.Growth.Stubbornness = getInt("stubbornness") })
	set("stickiness", func() { cfg.Growth.Stickiness = getFloat("stickiness") })
	set("log-level", func() { cfg.Logging.Level = getString("log-level") })
	set("log-format", func() { cfg.Logging.Format = getString("log-format") })

	return err
}

func newLogger(cfg config.LoggingConfig, w io.Writer) (*dla.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return dla.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return dla.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// runResult summarizes one grown cluster.
type runResult struct {
	Run            int
	Points         int
	BoundingRadius float64
	Table          string
	Snapshot       string
	Elapsed        time.Duration
	Metrics        dla.BasicMetricsStats
}

// grow grows cfg.Runs independent clusters concurrently and stores them.
func grow(ctx context.Context, cfg *config.Config, store blobstore.Store, logger *dla.Logger) ([]runResult, error) {
	compression, err := export.ParseCompression(cfg.Output.Compression)
	if err != nil {
		return nil, err
	}
	snapshotCodec, ok := codec.ByName(cfg.Output.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dla.ErrUnknownCodec, cfg.Output.Codec)
	}

	var sink *export.SQLiteSink
	if cfg.Output.SQLite != "" {
		sink, err = export.OpenSQLite(ctx, cfg.Output.SQLite)
		if err != nil {
			return nil, err
		}
		defer sink.Close()
	}

	limit := cfg.Concurrency
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	w := &runWriter{
		cfg:         cfg,
		store:       store,
		sink:        sink,
		compression: compression,
		codec:       snapshotCodec,
		logger:      logger,
		progress:    &rate.Sometimes{First: 1, Interval: 2 * time.Second},
	}

	results := make([]runResult, cfg.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for run := range cfg.Runs {
		g.Go(func() error {
			var (
				res runResult
				err error
			)
			if cfg.Dim == 3 {
				res, err = growRun[vec.Vec3](ctx, w, run)
			} else {
				res, err = growRun[vec.Vec2](ctx, w, run)
			}
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			results[run] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runWriter holds what every run shares.
type runWriter struct {
	cfg         *config.Config
	store       blobstore.Store
	sink        *export.SQLiteSink
	compression export.Compression
	codec       codec.Codec
	logger      *dla.Logger
	progress    *rate.Sometimes
}

func growRun[V vec.Vector](ctx context.Context, w *runWriter, run int) (runResult, error) {
	start := time.Now()
	logger := w.logger.WithRun(run)
	metrics := &dla.BasicMetricsCollector{}

	opts := []dla.Option{
		dla.WithConfig(w.cfg.Growth.Engine()),
		dla.WithLogger(logger),
		dla.WithMetricsCollector(metrics),
	}
	if w.cfg.Seed != 0 {
		opts = append(opts, dla.WithSeed(w.cfg.Seed+uint64(run)))
	}

	e, err := dla.New[V](opts...)
	if err != nil {
		return runResult{}, err
	}
	for _, s := range seedLayout[V](w.cfg.Layout) {
		e.Add(s.pos, s.parent)
	}

	for i := range w.cfg.Particles {
		// growth calls are not interruptible; stop between them
		if err := ctx.Err(); err != nil {
			return runResult{}, err
		}
		e.AddParticle()

		w.progress.Do(func() {
			logger.InfoContext(ctx, "growing",
				"particles", i+1,
				"of", w.cfg.Particles,
				"bounding_radius", e.BoundingRadius(),
			)
		})
	}

	res := runResult{
		Run:            run,
		Points:         e.Len(),
		BoundingRadius: e.BoundingRadius(),
		Table:          fmt.Sprintf("run-%03d.csv%s", run, w.compression.Extension()),
	}

	records := e.Records()
	if err := export.Save(ctx, w.store, res.Table, records, w.compression); err != nil {
		return runResult{}, fmt.Errorf("save %s: %w", res.Table, err)
	}
	if w.sink != nil {
		if err := w.sink.WriteRun(ctx, run, records); err != nil {
			return runResult{}, err
		}
	}
	if w.cfg.Output.Snapshot {
		res.Snapshot = fmt.Sprintf("run-%03d.snapshot", run)
		if err := saveSnapshot(ctx, w.store, res.Snapshot, e, w.codec); err != nil {
			return runResult{}, fmt.Errorf("save %s: %w", res.Snapshot, err)
		}
	}

	res.Elapsed = time.Since(start)
	res.Metrics = metrics.GetStats()
	logger.InfoContext(ctx, "run finished",
		"points", res.Points,
		"bounding_radius", res.BoundingRadius,
		"steps", res.Metrics.StepCount,
		"rejections", res.Metrics.RejectionCount,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func saveSnapshot[V vec.Vector](ctx context.Context, store blobstore.Store, name string, e *dla.Engine[V], c codec.Codec) (err error) {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = blob.Abort()
			return
		}
		err = blob.Close()
	}()
	return e.WriteSnapshot(blob, c)
}

func printResults(out io.Writer, results []runResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tPOINTS\tRADIUS\tSTEPS\tREJECTIONS\tTABLE\tELAPSED")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%d\t%d\t%s\t%s\n",
			r.Run, r.Points, r.BoundingRadius, r.Metrics.StepCount, r.Metrics.RejectionCount,
			r.Table, r.Elapsed.Round(time.Millisecond))
	}
	return tw.Flush()
}
