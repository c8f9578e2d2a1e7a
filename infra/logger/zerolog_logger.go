package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options controls the zerolog output.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty keeps debug.
	Level string
	// Console switches to the human readable console writer.
	Console bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// OptionsFromEnv reads APP_ENV (console output when "dev") and LOG_LEVEL.
func OptionsFromEnv() Options {
	return Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Console: strings.ToLower(os.Getenv("APP_ENV")) == "dev",
	}
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

var configured atomic.Pointer[Options]

// Configure sets the options used by New and NewZerologLogger. LOG_LEVEL
// still wins over o.Level when set.
func Configure(o Options) {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		o.Level = lvl
	}
	configured.Store(&o)
}

// NewZerologLogger creates a ZerologLogger from the options passed to
// Configure, or from the environment. All logs include the provided
// component field.
func NewZerologLogger(component string) Logger {
	if o := configured.Load(); o != nil {
		return NewWithOptions(component, *o)
	}
	return NewWithOptions(component, OptionsFromEnv())
}

// NewWithOptions creates a ZerologLogger with explicit options.
func NewWithOptions(component string, o Options) *ZerologLogger {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	if o.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	if lvl, err := zerolog.ParseLevel(strings.ToLower(o.Level)); err == nil && o.Level != "" {
		z = z.Level(lvl)
	}
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
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
