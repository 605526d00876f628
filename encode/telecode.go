package encode

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/ezrec/gnt4604/tape"
)

// Telecode encodes Elliott 900 telecode text.
//
// The first character of the source is a flag written by the authoring
// tool and is discarded. The rest is tidied (see Tidy), checked for
// unknown escape markers, and punched with even parity.
type Telecode struct{}

var haltMarkers = []string{"<! halt !>", "<! Halt !>", "<! H !>", "<! h !>"}

var blankMarkers = []string{"<! 0 !>", "<! 00 !>", "<! 000 !>", "<! R !>", "<! r !>"}

var typographic = map[rune]rune{
	'½': '#',
	'£': '#',
	'‘': '\'',
	'’': '`',
	'↑': '^',
	'←': '_',
	'‾': '~',
}

var typography = runes.Map(func(r rune) rune {
	if sub, ok := typographic[r]; ok {
		return sub
	}
	return r
})

// DropFlag removes the leading flag character.
func DropFlag(text string) string {
	_, size := utf8.DecodeRuneInString(text)
	return text[size:]
}

// Newlines converts bare LF to CR LF, then turns a doubled CR LF into
// CR LF LF so blank lines keep a single carriage return.
func Newlines(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/16)
	for n := 0; n < len(text); n++ {
		if text[n] == '\n' && (n == 0 || text[n-1] != '\r') {
			sb.WriteByte('\r')
		}
		sb.WriteByte(text[n])
	}
	return strings.ReplaceAll(sb.String(), "\r\n\r\n", "\r\n\n")
}

func replaceMarkers(text string, markers []string, code byte) string {
	sub := string([]byte{code})
	for _, marker := range markers {
		text = strings.ReplaceAll(text, marker, sub)
	}
	return text
}

// HaltCodes replaces halt markers with the halt code.
func HaltCodes(text string) string {
	return replaceMarkers(text, haltMarkers, tape.HaltCode)
}

// Blanks replaces blank tape markers with a NUL.
func Blanks(text string) string {
	return replaceMarkers(text, blankMarkers, tape.Fill)
}

// Typography replaces typeset characters with their teleprinter forms.
func Typography(text string) string {
	text, _, _ = transform.String(typography, text)
	return text
}

// TrimText removes leading and trailing blank tape.
func TrimText(text string) string {
	return string(tape.Trim([]byte(text)))
}

// Tidy applies Newlines, HaltCodes, Blanks, Typography and TrimText in
// that order. Tidy(Tidy(text)) == Tidy(text).
func Tidy(text string) string {
	text = Newlines(text)
	text = HaltCodes(text)
	text = Blanks(text)
	text = Typography(text)
	text = TrimText(text)
	return text
}

// Validate rejects any escape marker that Tidy did not recognise.
func Validate(text string) (err error) {
	offset := -1
	for _, mark := range []string{"<!", "!<"} {
		at := strings.Index(text, mark)
		if at >= 0 && (offset < 0 || at < offset) {
			offset = at
		}
	}
	if offset < 0 {
		return
	}

	end := offset + 16
	if stop := strings.Index(text[offset:], "!>"); stop >= 0 {
		end = min(end, offset+stop+2)
	}
	end = min(end, len(text))

	err = &ErrEscape{Offset: offset, Text: text[offset:end]}
	return
}

// Parity converts tidied text to even parity telecode.
func Parity(text string) (out []byte, err error) {
	out = make([]byte, 0, len(text))
	for offset, r := range text {
		if r < 0 || r > 0x7f {
			err = &ErrRune{Offset: offset, Rune: r}
			out = nil
			return
		}
		out = append(out, EvenParity(byte(r)))
	}
	return
}

// Encode telecode source text.
func (Telecode) Encode(source []byte) (out []byte, err error) {
	text := Tidy(DropFlag(string(source)))

	err = Validate(text)
	if err != nil {
		return
	}

	out, err = Parity(text)
	return
}
