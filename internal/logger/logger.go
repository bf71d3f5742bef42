package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}

func New() zerolog.Logger {
	return build(os.Stdout, zerolog.DebugLevel)
}

// SetLevel builds a logger for command line use. It writes to stderr so
// that stdout stays free for YAML output.
func SetLevel(level zerolog.Level) zerolog.Logger {
	return build(os.Stderr, level)
}

// ParseLevel falls back to info on an unknown level name.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

var Module = fx.Provide(New)
