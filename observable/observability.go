package observable

import (
	"log/slog"
)

// Logger interface for warnings and observer-failure reporting.
// Implementations receive structured key/value args in slog style.
// The logadapters subpackage provides ready-made implementations; the
// default sink forwards to the process-wide slog default logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// defaultLogger is the process-wide sink used when no logger is injected.
type defaultLogger struct{}

func (defaultLogger) Debug(msg string, args ...any) { slog.Debug(msg, args...) }
func (defaultLogger) Info(msg string, args ...any)  { slog.Info(msg, args...) }
func (defaultLogger) Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func (defaultLogger) Error(msg string, args ...any) { slog.Error(msg, args...) }
