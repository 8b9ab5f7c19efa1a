package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/dla"
	"github.com/hupe1980/dla/blobstore"
	"github.com/hupe1980/dla/export"
	"github.com/hupe1980/dla/vec"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize a stored cluster table or snapshot",
		Long: `inspect prints the point count and extent of a cluster.

FILE is a local path or an s3:// or minio:// URL. Tables may be compressed
(.zst, .lz4); files ending in .snapshot are read as engine snapshots.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, name, err := openFile(ctx, args[0])
			if err != nil {
				return err
			}
			if strings.HasSuffix(name, ".snapshot") {
				return inspectSnapshot(ctx, cmd.OutOrStdout(), store, name)
			}
			return inspectTable(ctx, cmd.OutOrStdout(), store, name)
		},
	}
}

// openFile opens the store holding raw and returns the blob name within it.
func openFile(ctx context.Context, raw string) (blobstore.Store, string, error) {
	t, err := parseTarget(raw)
	if err != nil {
		return nil, "", err
	}

	var name string
	if t.scheme == "file" {
		t.prefix, name = filepath.Dir(t.prefix), filepath.Base(t.prefix)
	} else {
		t.prefix, name = path.Split(t.prefix)
		t.prefix = strings.TrimSuffix(t.prefix, "/")
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, "", fmt.Errorf("%q does not name a file", raw)
	}

	store, err := t.open(ctx)
	if err != nil {
		return nil, "", err
	}
	return store, name, nil
}

// extent describes the axis-aligned bounds of a point set.
type extent struct {
	min, max  [3]float64
	maxRadius float64
}

func newExtent() extent {
	var e extent
	for i := range 3 {
		e.min[i] = math.Inf(1)
		e.max[i] = math.Inf(-1)
	}
	return e
}

func (e *extent) add(x, y, z float64) {
	for i, c := range [3]float64{x, y, z} {
		e.min[i] = math.Min(e.min[i], c)
		e.max[i] = math.Max(e.max[i], c)
	}
	e.maxRadius = math.Max(e.maxRadius, math.Sqrt(x*x+y*y+z*z))
}

func (e *extent) print(w io.Writer) {
	for i, axis := range []string{"x", "y", "z"} {
		fmt.Fprintf(w, "%s:      [%.4f, %.4f]\n", axis, e.min[i], e.max[i])
	}
	fmt.Fprintf(w, "radius: %.4f\n", e.maxRadius)
}

func inspectTable(ctx context.Context, w io.Writer, store blobstore.Store, name string) error {
	records, err := export.Load(ctx, store, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "table:  %s (%s)\n", name, export.DetectCompression(name))
	fmt.Fprintf(w, "points: %d\n", len(records))
	if len(records) == 0 {
		return nil
	}

	ext := newExtent()
	for _, r := range records {
		ext.add(r.X, r.Y, r.Z)
	}
	ext.print(w)
	return nil
}

func inspectSnapshot(ctx context.Context, w io.Writer, store blobstore.Store, name string) error {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return err
	}

	err = describeSnapshot[vec.Vec2](w, data)
	var dm *dla.ErrDimensionMismatch
	if errors.As(err, &dm) {
		err = describeSnapshot[vec.Vec3](w, data)
	}
	return err
}

func describeSnapshot[V vec.Vector](w io.Writer, data []byte) error {
	e, err := dla.ReadSnapshot[V](bytes.NewReader(data))
	if err != nil {
		return err
	}

	cfg := e.Config()
	fmt.Fprintf(w, "snapshot:  %dD, %d points\n", e.Dimension(), e.Len())
	fmt.Fprintf(w, "bounding:  %.4f\n", e.BoundingRadius())
	fmt.Fprintf(w, "contacted: %d points\n", e.Contacted().GetCardinality())
	fmt.Fprintf(w, "config:    spacing=%g attraction=%g min_move=%g stubbornness=%d stickiness=%g\n",
		cfg.ParticleSpacing, cfg.AttractionDistance, cfg.MinMoveDistance, cfg.Stubbornness, cfg.Stickiness)

	if e.Len() == 0 {
		return nil
	}
	ext := newExtent()
	for _, r := range e.Records() {
		ext.add(r.X, r.Y, r.Z)
	}
	ext.print(w)
	return nil
}
