package dla

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/dla/codec"
	"github.com/hupe1980/dla/internal/hash"
	"github.com/hupe1980/dla/vec"
)

const (
	snapshotMagic   = "dla-snapshot"
	snapshotVersion = 1
)

// snapshot is the serialized engine state.
type snapshot struct {
	Version        int         `json:"version"`
	Dimension      int         `json:"dimension"`
	Config         Config      `json:"config"`
	BoundingRadius float64     `json:"bounding_radius"`
	Points         [][]float64 `json:"points"`
	Parents        []int       `json:"parents"`
	JoinAttempts   []int       `json:"join_attempts"`
}

// WriteSnapshot serializes the cluster, its counters and the configuration.
//
// The stream starts with a text line naming the codec and the CRC32C of the
// body, followed by the encoded body. A nil codec selects codec.Default.
func (e *Engine[V]) WriteSnapshot(w io.Writer, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	err := e.writeSnapshot(w, c)
	e.logger.LogSnapshot(context.Background(), e.cluster.len(), c.Name(), err)
	return err
}

func (e *Engine[V]) writeSnapshot(w io.Writer, c codec.Codec) error {
	s := snapshot{
		Version:        snapshotVersion,
		Dimension:      e.Dimension(),
		Config:         e.cfg,
		BoundingRadius: e.cluster.boundingRadius,
		Points:         make([][]float64, len(e.cluster.points)),
		Parents:        e.cluster.parents,
		JoinAttempts:   e.cluster.attempts,
	}
	for i, p := range e.cluster.points {
		s.Points[i] = vec.Components(p)
	}

	body, err := c.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %s %08x\n", snapshotMagic, c.Name(), hash.CRC32C(body)); err != nil {
		return err
	}
	if _, err := bw.Write(body); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadSnapshot restores an engine from a stream written by WriteSnapshot.
//
// The restored engine has the exact points, parents, join attempt counters,
// bounding radius and configuration of the original. Options supply the
// sampler, index, logger and metrics; configuration options are overridden
// by the snapshot.
func ReadSnapshot[V vec.Vector](r io.Reader, optFns ...Option) (*Engine[V], error) {
	logger := applyOptions(optFns).logger

	e, err := readSnapshot[V](r, optFns)
	if err != nil {
		logger.LogRestore(context.Background(), 0, err)
		return nil, err
	}
	e.logger.LogRestore(context.Background(), e.cluster.len(), nil)
	return e, nil
}

func readSnapshot[V vec.Vector](r io.Reader, optFns []Option) (*Engine[V], error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil {
		return nil, &ErrSnapshotCorrupt{Reason: "missing header", cause: err}
	}
	fields := strings.Fields(header)
	if len(fields) != 3 || fields[0] != snapshotMagic {
		return nil, &ErrSnapshotCorrupt{Reason: "bad header"}
	}
	checksum, err := strconv.ParseUint(fields[2], 16, 32)
	if err != nil {
		return nil, &ErrSnapshotCorrupt{Reason: "bad checksum", cause: err}
	}
	c, ok := codec.ByName(fields[1])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, fields[1])
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	if hash.CRC32C(body) != uint32(checksum) {
		return nil, &ErrSnapshotCorrupt{Reason: "checksum mismatch"}
	}

	var s snapshot
	if err := c.Unmarshal(body, &s); err != nil {
		return nil, &ErrSnapshotCorrupt{Reason: "decode body", cause: err}
	}
	if err := s.validate(vec.Dim[V]()); err != nil {
		return nil, err
	}

	e, err := New[V](optFns...)
	if err != nil {
		return nil, err
	}
	e.cfg = s.Config

	for i, coords := range s.Points {
		p := vec.FromComponents[V](coords)
		e.cluster.insert(p, s.Parents[i], 0)
		e.index.Insert(p, i)

		if n := s.JoinAttempts[i]; n > 0 {
			e.cluster.attempts[i] = n
			e.cluster.contacted.Add(uint32(i))
		}
	}
	e.cluster.boundingRadius = s.BoundingRadius

	return e, nil
}

func (s *snapshot) validate(dim int) error {
	if s.Version != snapshotVersion {
		return &ErrSnapshotCorrupt{Reason: fmt.Sprintf("unsupported version %d", s.Version)}
	}
	if s.Dimension != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: s.Dimension, Component: "snapshot"}
	}
	if len(s.Parents) != len(s.Points) || len(s.JoinAttempts) != len(s.Points) {
		return &ErrSnapshotCorrupt{Reason: "section lengths differ"}
	}

	var errs []error
	for i, p := range s.Points {
		if len(p) != dim {
			errs = append(errs, fmt.Errorf("point %d has %d components", i, len(p)))
		}
		if s.JoinAttempts[i] < 0 {
			errs = append(errs, fmt.Errorf("point %d has negative join attempts", i))
		}
	}
	if len(errs) > 0 {
		return &ErrSnapshotCorrupt{Reason: "invalid points", cause: errors.Join(errs...)}
	}
	return nil
}
