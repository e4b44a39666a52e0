package logger

import corelogger "github.com/kilianp07/cellsim/core/logger"

// DefaultVerbosity logs info and above.
const DefaultVerbosity = 3

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component at the given verbosity. The
// output format is detected via the APP_ENV variable.
func New(component string, verbosity int) Logger {
	return NewZerologLogger(component, verbosity)
}
