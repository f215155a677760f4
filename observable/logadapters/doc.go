// Package logadapters provides ready-made implementations of the
// observable.Logger interface for common logging backends, so users get
// plug-and-play logging without implementing the interface themselves.
//
// Three sinks are provided:
//   - SlogLogger: backed by log/slog, the recommended default
//   - ZapLogger: backed by go.uber.org/zap
//   - NewOTelSlogLogger: an OpenTelemetry slog bridge for automatic
//     trace correlation through the global LoggerProvider
//
// Usage:
//
//	list, err := observable.NewList(
//		observable.WithListLogger[int](logadapters.NewSlogLogger(slog.Default())),
//	)
package logadapters
