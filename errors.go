package dla

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCluster is the cause of the panic raised when a nearest-neighbor
	// query or a growth call is issued before any point was added.
	ErrEmptyCluster = errors.New("cluster is empty")

	// ErrIndexNotEmpty is returned when an injected spatial index already holds points.
	ErrIndexNotEmpty = errors.New("spatial index must be empty")

	// ErrUnknownCodec is returned when a snapshot names a codec that is not built in.
	ErrUnknownCodec = errors.New("unknown snapshot codec")
)

// PreconditionError is the panic value used for calls that have no meaningful
// result in the current engine state.
//
// The underlying error can be accessed via errors.Unwrap.
type PreconditionError struct {
	Op    string
	cause error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("dla: %s: %v", e.Op, e.cause)
}

func (e *PreconditionError) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates that a component (sampler, index, snapshot)
// was built for a different dimension than the engine.
type ErrDimensionMismatch struct {
	Expected  int
	Actual    int
	Component string
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch for %s: expected %d, got %d", e.Component, e.Expected, e.Actual)
}

// ErrSnapshotCorrupt indicates a snapshot whose sections disagree with each other.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrSnapshotCorrupt struct {
	Reason string
	cause  error
}

func (e *ErrSnapshotCorrupt) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("corrupt snapshot: %s: %v", e.Reason, e.cause)
	}
	return "corrupt snapshot: " + e.Reason
}

func (e *ErrSnapshotCorrupt) Unwrap() error { return e.cause }

func emptyClusterPanic(op string) {
	panic(&PreconditionError{Op: op, cause: ErrEmptyCluster})
}
