package dla

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dla-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithRun adds a run field to the logger (useful when growing several clusters).
func (l *Logger) WithRun(run int) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// debugEnabled reports whether debug records would be emitted.
func (l *Logger) debugEnabled() bool {
	return l.Enabled(context.Background(), slog.LevelDebug)
}

// LogSeed logs a point placed without a walk.
func (l *Logger) LogSeed(ctx context.Context, id, parent int, radius float64) {
	l.DebugContext(ctx, "seed added",
		"id", id,
		"parent", parent,
		"bounding_radius", radius,
	)
}

// LogJoin logs a completed growth call.
func (l *Logger) LogJoin(ctx context.Context, id, parent int, w WalkStats) {
	l.DebugContext(ctx, "particle joined",
		"id", id,
		"parent", parent,
		"steps", w.Steps,
		"contacts", w.Contacts,
		"rejections", w.Rejections,
		"resets", w.Resets,
	)
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(ctx context.Context, points int, codecName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"points", points,
			"codec", codecName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot written",
			"points", points,
			"codec", codecName,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot restore failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot restored",
			"points", points,
		)
	}
}
