package encode

import (
	"errors"

	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var (
	// Telecode errors
	ErrUnknownEscapeMarker = errors.New(f("unknown <! ... !> found"))
	ErrCharacter           = errors.New(f("character has no telecode"))

	// BIN errors
	ErrParse        = errors.New(f("BIN parse error"))
	ErrCommentOpen  = errors.New(f("comment not closed"))
	ErrWordRange    = errors.New(f("word out of range 0..255"))
	ErrWordNotValue = errors.New(f("expression is not an integer"))
)

// ErrFormat is an unknown tape format name.
type ErrFormat string

func (err ErrFormat) Error() string {
	return f("unknown tape format '%v'", string(err))
}

// ErrEscape locates an escape marker that survived substitution.
type ErrEscape struct {
	Offset int
	Text   string
}

func (err *ErrEscape) Error() string {
	return f("offset %d '%v': unknown <! ... !> found", err.Offset, err.Text)
}

func (err *ErrEscape) Is(target error) bool {
	return target == ErrUnknownEscapeMarker
}

// ErrRune locates a character outside the 7 bit telecode range.
type ErrRune struct {
	Offset int
	Rune   rune
}

func (err *ErrRune) Error() string {
	return f("offset %d: character %q (U+%04X) has no telecode", err.Offset, err.Rune, err.Rune)
}

func (err *ErrRune) Is(target error) bool {
	return target == ErrCharacter
}

// ErrToken locates a bad BIN token.
type ErrToken struct {
	Index int // Token number, from zero.
	Token string
	Err   error
}

func (err *ErrToken) Error() string {
	return f("token %d '%v': %v", err.Index, err.Token, err.Err)
}

func (err *ErrToken) Unwrap() []error {
	return []error{ErrParse, err.Err}
}
