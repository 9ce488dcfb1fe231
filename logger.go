package corobus

import "log/slog"

// Logger receives structured, leveled diagnostics about bus lifecycle
// events: channel open and close (Debug) and a successful Bus.Close (Info).
// Broadcast parking and a Bus.Close refused with ErrBusy are not logged.
// It is purely ambient — the bus never changes behavior based on what a
// Logger does with a message.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogLogger adapts an *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// NewSlogLogger adapts l to the Logger interface. A nil l uses
// slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

// noopLogger discards everything. It is the Bus default: this module's
// scope explicitly excludes a diagnostics subsystem, so logging is opt-in
// via WithLogger rather than on by default.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
