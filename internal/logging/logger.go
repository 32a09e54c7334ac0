// Package logging wraps zerolog with the two output modes coxfit's
// operators actually choose between: a colorized console for interactive
// runs and raw JSON for anything piped into a log collector.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how log lines are rendered.
type Format string

const (
	// FormatText renders a human-readable, timestamped console line.
	FormatText Format = "text"

	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// Config controls logger construction.
type Config struct {
	Level  zerolog.Level
	Format Format
	Output io.Writer
}

// New builds a zerolog.Logger per cfg. A nil cfg.Output defaults to stderr,
// matching a CLI's convention of keeping stdout free for result data.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: false}
	}

	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}
