// Package logger wraps log/slog with a tint-colored handler. Log lines
// are correlated by thread identifier and operation name, and written to
// a log file rather than stdout, since stdout and stderr are the
// terminal surface the TUI itself owns.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config controls how the logger is constructed.
type Config struct {
	Level  slog.Level
	Output *os.File
}

type contextKey string

const (
	// ContextKeyThreadID is the key under which a thread's identifier is
	// stored for log correlation.
	ContextKeyThreadID contextKey = "thread_id"
	// ContextKeyOperation is the key under which the current operation
	// name (e.g. "stream_reply", "save") is stored.
	ContextKeyOperation contextKey = "operation"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a logger that writes tint-formatted lines to cfg.Output (a
// log file by convention; falls back to stderr when unset, e.g. in tests).
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &tint.Options{
		Level:      cfg.Level,
		TimeFormat: time.Kitchen,
	}

	return &Logger{Logger: slog.New(tint.NewHandler(out, opts))}
}

// WithContext creates a new logger carrying thread/operation correlation
// fields found on ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger

	if threadID, ok := ctx.Value(ContextKeyThreadID).(string); ok && threadID != "" {
		logger = logger.With(slog.String("thread_id", threadID))
	}
	if operation, ok := ctx.Value(ContextKeyOperation).(string); ok && operation != "" {
		logger = logger.With(slog.String("operation", operation))
	}

	return &Logger{Logger: logger}
}

// WithComponent creates a new logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(slog.String("component", component))}
}

// LogError logs an error alongside a message and any extra attributes.
func (l *Logger) LogError(ctx context.Context, err error, msg string, args ...any) {
	logger := l.WithContext(ctx)
	allArgs := append([]any{"error", err}, args...)
	logger.Error(msg, allArgs...)
}

// LogOperation logs the start and end of an operation, timing it.
func (l *Logger) LogOperation(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	logger := l.WithContext(ctx).With(slog.String("operation", operation))

	logger.Debug("operation started")

	err := fn()
	duration := time.Since(start)

	if err != nil {
		logger.Error("operation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
	} else {
		logger.Debug("operation completed", slog.Duration("duration", duration))
	}

	return err
}
