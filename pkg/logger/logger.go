// Package logger provides the structured logger handed to every resolution
// component. There is no package-level logger; callers construct one and pass
// it down explicitly.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// LogFilePermissions defines the file permissions for log files.
const LogFilePermissions = 0o600

// SlogAdapter implements Logger on top of a slog.Logger.
type SlogAdapter struct {
	slog *slog.Logger
}

// New creates a logger writing line-formatted records to w.
func New(w io.Writer, level Level) *SlogAdapter {
	return &SlogAdapter{slog: slog.New(NewWriterHandler(w, level))}
}

// NewStderr creates a logger writing to standard error.
func NewStderr(level Level) *SlogAdapter {
	return New(os.Stderr, level)
}

// NewFile creates a logger appending to the file at path.
func NewFile(path string, level Level) (*SlogAdapter, error) {
	h, err := NewFileHandler(path, level)
	if err != nil {
		return nil, err
	}

	return &SlogAdapter{slog: slog.New(h)}, nil
}

// FromSlog wraps an existing slog.Logger.
func FromSlog(l *slog.Logger) *SlogAdapter {
	return &SlogAdapter{slog: l}
}

// Debug logs debug-level messages.
func (l *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	l.slog.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *SlogAdapter) Info(msg string, keysAndValues ...any) {
	l.slog.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *SlogAdapter) Error(msg string, keysAndValues ...any) {
	l.slog.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{slog: l.slog.With(keysAndValues...)}
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
