package foldmap

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with foldmap-specific helpers. Structural events
// are logged at debug level; they exist to make the folding and
// condensation behavior observable, not to narrate every operation.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// a default text handler to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogSplit logs a leaf split.
func (l *Logger) LogSplit(entries int) {
	l.Debug("leaf split", "entries", entries)
}

// LogFoldStart logs the start of a rebalancing pass: the primary tree was
// demoted to secondary and a fresh leaf took its place.
func (l *Logger) LogFoldStart(pending int, version uint64) {
	l.Debug("fold started", "pending", pending, "version", version)
}

// LogFoldFinish logs the end of a rebalancing pass: the secondary tree was
// drained and destroyed.
func (l *Logger) LogFoldFinish(version uint64) {
	l.Debug("fold finished", "version", version)
}

// LogCondense logs an internal node collapsing back into a leaf.
func (l *Logger) LogCondense(entries int) {
	l.Debug("subtree condensed", "entries", entries)
}
