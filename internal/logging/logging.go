// Package logging builds the zerolog logger handed to clients and
// backends. Logging stays an injected dependency; nothing in this module
// reads a global logger.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to out. The level is taken from the
// LOG_LEVEL environment value passed in (debug, info, warn, error, trace);
// unknown or empty values mean info.
func New(out io.Writer, level string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	return zerolog.New(writer).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
