// Package logging builds the zerolog loggers used across the binary.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// logger fields
const (
	PACKAGE = "pkg"
	SIM     = "sim"
	EVENT   = "event"
	ID      = "id"
	TIME    = "t"
	ADDR    = "addr"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// ParseLevel maps debug|info|warn|error onto a zerolog level, defaulting to warn.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// New returns the root logger writing to w. Terminals get the console writer,
// anything else gets JSON lines.
func New(w io.Writer, level string) zerolog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewPackageLogger returns a child logger with pkg={pkg}.
func NewPackageLogger(parent zerolog.Logger, pkg string) zerolog.Logger {
	return parent.With().Str(PACKAGE, pkg).Logger()
}
