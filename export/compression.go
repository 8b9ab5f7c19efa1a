package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream codec applied to exported tables.
type Compression int

const (
	// None writes plain CSV.
	None Compression = iota
	// Zstd favors ratio; well suited for archiving large clusters.
	Zstd
	// LZ4 favors speed.
	LZ4
)

// ErrUnsupportedCompression is returned for unknown compression names.
type ErrUnsupportedCompression struct {
	Name string
}

func (e *ErrUnsupportedCompression) Error() string {
	return fmt.Sprintf("export: unsupported compression %q", e.Name)
}

// ParseCompression maps "none", "zstd" and "lz4" (case-insensitive, "" = none).
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, &ErrUnsupportedCompression{Name: name}
	}
}

// DetectCompression infers the compression from a file name extension.
func DetectCompression(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return Zstd
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	default:
		return None
	}
}

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Extension returns the file name suffix for c (e.g. ".zst").
func (c Compression) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// NewWriter wraps w. Close flushes the compressed stream but does not close w.
func (c Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, &ErrUnsupportedCompression{Name: c.String()}
	}
}

// NewReader wraps r. Close releases decoder resources but does not close r.
func (c Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, &ErrUnsupportedCompression{Name: c.String()}
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
