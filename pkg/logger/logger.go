package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the service-wide logger writing to out at the given level.
// Level strings are case-insensitive (debug, info, warn, error, fatal);
// unknown values fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
