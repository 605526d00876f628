// Package config holds the station configuration: which tty the
// GNT4604 is on, and the timing constants tuned for it.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/tape"
	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var (
	ErrUnknownKey = errors.New(f("unknown configuration key"))
	ErrInvalid    = errors.New(f("invalid configuration"))
)

// ErrKey reports a bad value for a configuration key.
type ErrKey struct {
	Key string
	Err error
}

func (err *ErrKey) Error() string {
	return f("config %v: %v", err.Key, err.Err)
}

func (err *ErrKey) Unwrap() []error {
	return []error{ErrInvalid, err.Err}
}

// Log configures the logger.
type Log struct {
	Level string // debug, info, warn or error.
	Color string // auto, always or never.
}

// Config is the complete station configuration.
type Config struct {
	Device      string        // Serial device of the GNT4604.
	Baud        int           // Line speed; framing is always 8N1.
	Settle      time.Duration // Pause after each punched character.
	ReadTimeout time.Duration // Reader silence that marks the end of tape.
	IdlePoll    time.Duration // Poll interval while waiting for the reader.
	XonTimeout  time.Duration // Wait for XON after XOFF; zero waits forever.
	Reel        int           // Maximum characters in one read.
	Runout      int           // Leader and trailer punched around a tape.
	FileRunout  int           // Leader and trailer written around a read tape.
	Locale      string        // Message language, e.g. "en-GB".
	Log         Log
}

// Default returns the configuration matching the GNT4604 DIP switch
// settings: 4800 baud, 8 data bits, no parity, 1 stop bit.
func Default() Config {
	return Config{
		Device:      channel.DefaultDevice,
		Baud:        channel.DefaultBaudRate,
		Settle:      tape.DefaultSettle,
		ReadTimeout: tape.DefaultReadTimeout,
		IdlePoll:    tape.DefaultIdlePoll,
		Reel:        tape.ReelLength,
		Runout:      tape.RunoutLength,
		FileRunout:  60,
		Log: Log{
			Level: "info",
			Color: "auto",
		},
	}
}

type fileLog struct {
	Level string `toml:"level"`
	Color string `toml:"color"`
}

type fileConfig struct {
	Device      string  `toml:"device"`
	Baud        int     `toml:"baud"`
	Settle      string  `toml:"settle"`
	ReadTimeout string  `toml:"read_timeout"`
	IdlePoll    string  `toml:"idle_poll"`
	XonTimeout  string  `toml:"xon_timeout"`
	Reel        int     `toml:"reel"`
	Runout      int     `toml:"runout"`
	FileRunout  int     `toml:"file_runout"`
	Locale      string  `toml:"locale"`
	Log         fileLog `toml:"log"`
}

func parseDuration(key string, value string) (d time.Duration, err error) {
	d, err = time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		err = &ErrKey{Key: key, Err: err}
	}
	return
}

// Load reads a TOML configuration file. Keys absent from the file keep
// their defaults.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		err = &ErrKey{Key: undecoded[0].String(), Err: ErrUnknownKey}
		return
	}

	if meta.IsDefined("device") {
		cfg.Device = strings.TrimSpace(raw.Device)
	}
	if meta.IsDefined("baud") {
		cfg.Baud = raw.Baud
	}

	durations := []struct {
		key   string
		value string
		field *time.Duration
	}{
		{"settle", raw.Settle, &cfg.Settle},
		{"read_timeout", raw.ReadTimeout, &cfg.ReadTimeout},
		{"idle_poll", raw.IdlePoll, &cfg.IdlePoll},
		{"xon_timeout", raw.XonTimeout, &cfg.XonTimeout},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		*d.field, err = parseDuration(d.key, d.value)
		if err != nil {
			return
		}
	}

	if meta.IsDefined("reel") {
		cfg.Reel = raw.Reel
	}
	if meta.IsDefined("runout") {
		cfg.Runout = raw.Runout
	}
	if meta.IsDefined("file_runout") {
		cfg.FileRunout = raw.FileRunout
	}
	if meta.IsDefined("locale") {
		cfg.Locale = strings.TrimSpace(raw.Locale)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "color") {
		cfg.Log.Color = strings.TrimSpace(raw.Log.Color)
	}

	err = cfg.Validate()
	return
}

// Validate checks the configuration is usable.
func (cfg *Config) Validate() (err error) {
	switch {
	case cfg.Device == "":
		err = &ErrKey{Key: "device", Err: errors.New(f("empty"))}
	case cfg.Baud <= 0:
		err = &ErrKey{Key: "baud", Err: errors.New(f("must be positive"))}
	case cfg.Settle <= 0:
		err = &ErrKey{Key: "settle", Err: errors.New(f("must be positive"))}
	case cfg.ReadTimeout <= 0:
		err = &ErrKey{Key: "read_timeout", Err: errors.New(f("must be positive"))}
	case cfg.IdlePoll <= 0:
		err = &ErrKey{Key: "idle_poll", Err: errors.New(f("must be positive"))}
	case cfg.XonTimeout < 0:
		err = &ErrKey{Key: "xon_timeout", Err: errors.New(f("must not be negative"))}
	case cfg.Reel <= 0:
		err = &ErrKey{Key: "reel", Err: errors.New(f("must be positive"))}
	case cfg.Runout < 0:
		err = &ErrKey{Key: "runout", Err: errors.New(f("must not be negative"))}
	case cfg.FileRunout < 0:
		err = &ErrKey{Key: "file_runout", Err: errors.New(f("must not be negative"))}
	}
	return
}
