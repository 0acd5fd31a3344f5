// Package logging configures the process-wide zerolog logger for the CLI.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv names the environment variable consulted when no level is given
const LevelEnv = "TECHNIQUE_LOG_LEVEL"

// InitWithWriter sets the global level and routes the global logger to a console writer on out.
// An empty level falls back to TECHNIQUE_LOG_LEVEL, then to info. The configured logger is
// returned so callers can hand it to components that take an injected logger.
func InitWithWriter(level string, out io.Writer) zerolog.Logger {
	if level == "" {
		level = os.Getenv(LevelEnv)
	}
	zerolog.SetGlobalLevel(ParseLevel(level))

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).With().Timestamp().Logger()
	return log.Logger
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
