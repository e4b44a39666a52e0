// Package logger defines the logging interface used by the simulation core.
package logger

// Logger exposes logging methods for common severity levels.
type Logger interface {
	// Tracef logs the low level flow of a single cell step.
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no-op methods. It is the default of every
// core component.
type NopLogger struct{}

func (NopLogger) Tracef(string, ...any)         {}
func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}
