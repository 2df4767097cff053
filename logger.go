package srplsh

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with srplsh-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (result count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, vectors, bands, bits int, memBytes uint64, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"vectors", vectors,
			"bands", bands,
			"bits", bits,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index built",
		"vectors", vectors,
		"bands", bands,
		"bits", bits,
		"memory", humanize.IBytes(memBytes),
		"duration", d,
	)
}

// LogSearch logs a search operation.
// Use WithK to attach the requested result count.
func (l *Logger) LogSearch(ctx context.Context, candidates, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"candidates", candidates,
		"results", resultsFound,
	)
}

// LogFallback logs a query answered by a full scan.
func (l *Logger) LogFallback(ctx context.Context, candidates, threshold int) {
	l.DebugContext(ctx, "candidate set below threshold, scanning corpus",
		"candidates", candidates,
		"threshold", threshold,
	)
}
