// Package logging builds the zerolog loggers injected into sync components.
//
// The console format prints one colored, level-coded line per event and is
// the default for interactive use. The json format emits one object per line.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, disabled.
	Level string

	// Format is console or json.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer

	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// DefaultConfig returns the configuration used by the CLI when nothing is set.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// New builds a logger from cfg. Empty fields fall back to DefaultConfig.
func New(cfg Config) zerolog.Logger {
	def := DefaultConfig()
	if cfg.Level == "" {
		cfg.Level = def.Level
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if cfg.Output == nil {
		cfg.Output = def.Output
	}

	out := cfg.Output
	if strings.ToLower(cfg.Format) == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Logger()
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatConsole, FormatJSON:
		return true
	}
	return false
}
