package logadapters

import (
	"go.uber.org/zap"
)

// ZapLogger implements observable.Logger backed by go.uber.org/zap.
// Key/value args are forwarded through zap's sugared logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a logger sink forwarding to the given zap
// logger. A nil logger falls back to zap's no-op logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{sugar: logger.Sugar()}
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

// Info logs an info message.
func (l *ZapLogger) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}
