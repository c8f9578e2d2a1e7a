package logger

import corelogger "github.com/kilianp07/transport/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards everything.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component. The output format and level
// come from the APP_ENV and LOG_LEVEL environment variables.
func New(component string) Logger {
	return NewZerologLogger(component)
}
