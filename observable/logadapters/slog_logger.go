package logadapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// SlogLogger implements observable.Logger backed by log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger sink forwarding to the given slog
// logger. A nil logger falls back to the process-wide slog default.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

// NewSlogLoggerWithHandler creates a logger sink on top of the provided
// slog.Handler.
func NewSlogLoggerWithHandler(handler slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(handler)}
}

// NewOTelSlogLogger creates a logger sink using the OpenTelemetry slog
// bridge. The bridge provides automatic trace correlation and emits
// through the global OpenTelemetry LoggerProvider.
func NewOTelSlogLogger(name string) *SlogLogger {
	return &SlogLogger{logger: otelslog.NewLogger(name)}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
