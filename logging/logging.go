// Package logging builds the zerolog logger used by every gnt command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/config"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "GNT_LOG_LEVEL"

// colorable reports whether w is a terminal that understands colour.
func colorable(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Level resolves the effective level: the environment wins over the
// configuration, and anything unparsable means info.
func Level(cfg config.Log) zerolog.Level {
	name := cfg.Level
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		name = env
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return level
}

// New returns a console logger writing to w.
func New(w io.Writer, cfg config.Log) zerolog.Logger {
	var color bool
	switch strings.ToLower(cfg.Color) {
	case "always":
		color = true
	case "never":
		color = false
	default:
		color = colorable(w)
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(out).Level(Level(cfg)).With().Timestamp().Logger()
}
