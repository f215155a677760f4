// Package logspy provides a Logger test double that records calls, so
// tests can assert on warnings and observer-failure reports without
// capturing process-wide log output.
package logspy

import (
	"sync"
)

// Record represents a recorded log call.
type Record struct {
	Level   string
	Message string
	Args    []any
}

// Logger is an observable.Logger implementation that captures log calls
// for testing. It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	records []Record
}

// New creates a new Logger spy instance.
func New() *Logger {
	return &Logger{}
}

// Debug implements the Logger interface for testing.
func (s *Logger) Debug(msg string, args ...any) {
	s.record("debug", msg, args)
}

// Info implements the Logger interface for testing.
func (s *Logger) Info(msg string, args ...any) {
	s.record("info", msg, args)
}

// Warn implements the Logger interface for testing.
func (s *Logger) Warn(msg string, args ...any) {
	s.record("warn", msg, args)
}

// Error implements the Logger interface for testing.
func (s *Logger) Error(msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *Logger) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, Record{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all recorded calls in order.
func (s *Logger) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Record(nil), s.records...)
}

// RecordsAtLevel returns the recorded calls for one level, in order.
func (s *Logger) RecordsAtLevel(level string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, r := range s.records {
		if r.Level == level {
			out = append(out, r)
		}
	}

	return out
}

// Reset discards all recorded calls.
func (s *Logger) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}
