// Package encode turns source documents into the exact characters to
// punch. Each tape format is an Encoder; the punch, read and verify
// machinery does not care which one produced the tape.
package encode

import (
	"slices"
	"strings"
)

// Encoder converts a source document into punch-ready bytes. The
// result is trimmed of leader and trailer; Encode never modifies source.
type Encoder interface {
	Encode(source []byte) (tape []byte, err error)
}

// Format names a tape format.
type Format string

const (
	FormatTelecode = Format("telecode") // Elliott 900 telecode text.
	FormatBin      = Format("bin")      // Elliott BIN decimal word lists.
	FormatRaw      = Format("raw")      // Bytes punched as-is.
)

var encoders = map[Format]Encoder{
	FormatTelecode: Telecode{},
	FormatBin:      Bin{},
	FormatRaw:      Raw{},
}

// New returns the encoder for the named format.
func New(name string) (enc Encoder, err error) {
	enc, ok := encoders[Format(strings.ToLower(name))]
	if !ok {
		err = ErrFormat(name)
	}
	return
}

// Formats lists the known format names, sorted.
func Formats() (names []string) {
	for format := range encoders {
		names = append(names, string(format))
	}
	slices.Sort(names)
	return
}
