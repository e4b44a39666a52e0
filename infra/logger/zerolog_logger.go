package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxVerbosity is the most detailed verbosity level.
const MaxVerbosity = 7

// Level maps a verbosity between 0 and MaxVerbosity to a zerolog level:
// 0-1 errors only, 2 warnings, 3-4 info, 5-6 debug and 7 trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.WarnLevel
	case verbosity <= 4:
		return zerolog.InfoLevel
	case verbosity <= 6:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to stdout, using the
// APP_ENV environment variable to determine the output format. All logs
// include the provided component field.
func NewZerologLogger(component string, verbosity int) Logger {
	var w io.Writer = os.Stdout
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWriterLogger(w, component, verbosity)
}

// NewWriterLogger creates a ZerologLogger emitting JSON lines to w.
func NewWriterLogger(w io.Writer, component string, verbosity int) Logger {
	z := zerolog.New(w).Level(Level(verbosity)).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Tracef(format string, args ...any) {
	l.log.Trace().Msgf(format, args...)
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
