package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DefaultPrecision is the number of decimal digits written for coordinates.
const DefaultPrecision = 4

// Header is the column layout of the tabular format.
var Header = []string{"index", "parent", "x", "y", "z"}

// ErrBadHeader is returned when a table does not start with Header.
var ErrBadHeader = errors.New("export: unexpected header")

// ParseError describes a malformed row.
//
// The original underlying error can be accessed via errors.Unwrap.
type ParseError struct {
	Line   int
	Column string
	cause  error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("export: line %d: %v", e.Line, e.cause)
	}
	return fmt.Sprintf("export: line %d, column %s: %v", e.Line, e.Column, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Precision is the number of decimal digits for coordinates.
	// Negative values select the shortest exact representation.
	Precision int
}

// Writer streams records as CSV.
type Writer struct {
	cw        *csv.Writer
	precision int
	header    bool
	row       [5]string
}

// NewWriter creates a Writer. The header is written before the first record.
func NewWriter(w io.Writer, optFns ...func(o *WriterOptions)) *Writer {
	opts := WriterOptions{Precision: DefaultPrecision}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Writer{
		cw:        csv.NewWriter(w),
		precision: opts.Precision,
	}
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	if !w.header {
		if err := w.cw.Write(Header); err != nil {
			return err
		}
		w.header = true
	}

	w.row[0] = strconv.Itoa(r.ID)
	w.row[1] = strconv.Itoa(r.Parent)
	w.row[2] = strconv.FormatFloat(r.X, 'f', w.precision, 64)
	w.row[3] = strconv.FormatFloat(r.Y, 'f', w.precision, 64)
	w.row[4] = strconv.FormatFloat(r.Z, 'f', w.precision, 64)
	return w.cw.Write(w.row[:])
}

// Flush writes buffered data and reports any write error.
// An empty table still gets its header.
func (w *Writer) Flush() error {
	if !w.header {
		if err := w.cw.Write(Header); err != nil {
			return err
		}
		w.header = true
	}
	w.cw.Flush()
	return w.cw.Error()
}

// WriteCSV writes all records followed by a flush.
func WriteCSV(w io.Writer, records []Record, optFns ...func(o *WriterOptions)) error {
	cw := NewWriter(w, optFns...)
	for _, r := range records {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// Reader parses records from CSV.
type Reader struct {
	cr     *csv.Reader
	header bool
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.ReuseRecord = true
	return &Reader{cr: cr}
}

// Read returns the next record or io.EOF.
func (r *Reader) Read() (Record, error) {
	if !r.header {
		row, err := r.cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, &ParseError{Line: 1, cause: ErrBadHeader}
			}
			return Record{}, wrapCSVError(err)
		}
		for i, h := range Header {
			if row[i] != h {
				return Record{}, &ParseError{Line: 1, Column: h, cause: ErrBadHeader}
			}
		}
		r.header = true
	}

	row, err := r.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, wrapCSVError(err)
	}
	line, _ := r.cr.FieldPos(0)

	var rec Record
	if rec.ID, err = strconv.Atoi(row[0]); err != nil {
		return Record{}, &ParseError{Line: line, Column: Header[0], cause: err}
	}
	if rec.Parent, err = strconv.Atoi(row[1]); err != nil {
		return Record{}, &ParseError{Line: line, Column: Header[1], cause: err}
	}
	coords := [3]*float64{&rec.X, &rec.Y, &rec.Z}
	for i, dst := range coords {
		if *dst, err = strconv.ParseFloat(row[2+i], 64); err != nil {
			return Record{}, &ParseError{Line: line, Column: Header[2+i], cause: err}
		}
	}
	return rec, nil
}

// ReadCSV parses a whole table.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := NewReader(r)
	var out []Record
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func wrapCSVError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, cause: pe.Err}
	}
	return err
}
