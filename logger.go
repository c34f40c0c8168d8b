package sparsegraph

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sparsegraph-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithKey adds a vertex or edge type key field to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key),
	}
}

// WithKind adds a scalar kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogAddVertex logs a vertex insert or upsert.
func (l *Logger) LogAddVertex(key string, kind Kind, index Index, err error) {
	if err != nil {
		l.Error("add vertex failed",
			"key", key,
			"kind", kind.String(),
			"error", err,
		)
	} else {
		l.Debug("add vertex completed",
			"key", key,
			"kind", kind.String(),
			"index", index,
		)
	}
}

// LogDeleteVertex logs a vertex deletion.
func (l *Logger) LogDeleteVertex(index Index, edgesRemoved int, err error) {
	if err != nil {
		l.Error("delete vertex failed",
			"index", index,
			"error", err,
		)
	} else {
		l.Debug("delete vertex completed",
			"index", index,
			"edges_removed", edgesRemoved,
		)
	}
}

// LogCapacityGrowth logs a completed vertex capacity propagation.
func (l *Logger) LogCapacityGrowth(from, to int) {
	l.Info("vertex capacity grown",
		"from", from,
		"to", to,
	)
}

// LogResizeFailed logs a vertex capacity propagation that did not complete.
// The graph keeps the previous capacity; the next insert that needs more
// room tries again.
func (l *Logger) LogResizeFailed(from, to int, err error) {
	l.Warn("vertex capacity propagation failed",
		"from", from,
		"to", to,
		"error", err,
	)
}

// LogEdgeType logs the creation or removal of an edge type.
func (l *Logger) LogEdgeType(op, key string, kind Kind, err error) {
	log := l.WithKey(key).WithKind(kind)
	if err != nil {
		log.Error(op+" edge type failed",
			"error", err,
		)
	} else {
		log.Info(op+" edge type completed")
	}
}
