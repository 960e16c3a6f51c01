package fsbi

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fsbi-specific helpers.
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

// WithDocID adds a doc_id field to the logger.
func (l *Logger) WithDocID(docID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("doc_id", docID),
	}
}

// LogIndex logs an index operation.
func (l *Logger) LogIndex(ctx context.Context, docID string, textLen int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index failed",
			"doc_id", docID,
			"text_len", textLen,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index completed",
			"doc_id", docID,
			"text_len", textLen,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(ctx context.Context, topK, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"top_k", topK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"top_k", topK,
			"results", resultsFound,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, docID string, existed bool) {
	l.DebugContext(ctx, "remove completed",
		"doc_id", docID,
		"existed", existed,
	)
}

// LogSnapshot logs a snapshot export.
func (l *Logger) LogSnapshot(ctx context.Context, docs int, noisy bool) {
	l.InfoContext(ctx, "snapshot exported",
		"docs", docs,
		"noisy", noisy,
	)
}
