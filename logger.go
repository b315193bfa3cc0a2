package scalargo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with scalargo-specific context.
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

// WithSegmentRows adds a row count field to the logger.
func (l *Logger) WithSegmentRows(rows int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// WithFunc adds a UDF name field to the logger.
func (l *Logger) WithFunc(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("func", name),
	}
}

// LogEvaluate logs one predicate evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, rows, selected int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "evaluation completed",
			"rows", rows,
			"selected", selected,
		)
	}
}

// LogRegister logs a UDF registration.
func (l *Logger) LogRegister(ctx context.Context, funcName string, ok bool) {
	if !ok {
		l.WarnContext(ctx, "udf registration failed",
			"func", funcName,
		)
	} else {
		l.DebugContext(ctx, "udf registered",
			"func", funcName,
		)
	}
}

// LogDelete logs a UDF deletion.
func (l *Logger) LogDelete(ctx context.Context, funcName string) {
	l.DebugContext(ctx, "udf deleted",
		"func", funcName,
	)
}
