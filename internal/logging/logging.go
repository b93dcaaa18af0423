// Package logging configures the global zerolog logger
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Settings selects the level, format and destination of log output
type Settings struct {
	Level  string
	Format string
	Output io.Writer
}

// Setup configures the global logger. Format "console" writes
// human-readable lines; anything else writes JSON.
func Setup(s Settings) error {
	level, err := zerolog.ParseLevel(s.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	out := s.Output
	if out == nil {
		out = os.Stderr
	}

	switch s.Format {
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	default:
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
	return nil
}
