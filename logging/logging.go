// Package logging provides structured logging utilities.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with additional context.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to w with the specified level and format.
// A nil writer logs to stderr.
func New(level, format string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.With("component", name),
	}
}

// WithFile returns a logger with source file context.
func (l *Logger) WithFile(file string) *Logger {
	return &Logger{
		Logger: l.With("file", file),
	}
}

// WithError returns a logger with error context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.With("error", err.Error()),
	}
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level is a recognized level name.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Default returns the default logger.
func Default() *Logger {
	return New("info", "text", os.Stderr)
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
