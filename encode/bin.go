package encode

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/text/encoding/unicode"

	"github.com/ezrec/gnt4604/tape"
)

// Bin encodes Elliott BIN files: whitespace separated decimal words,
// each one punched as a single 8 bit character, with parenthesised
// comments. A word may also be written $(expr), which is evaluated at
// encode time, e.g. $(0o177) or $(64|3).
type Bin struct{}

func isComment(word string) bool {
	return strings.HasPrefix(word, "(")
}

func closesComment(word string) bool {
	return strings.HasSuffix(word, ")")
}

// evalWord evaluates a $(...) word.
func evalWord(expr string) (value uint64, err error) {
	thread := starlark.Thread{Name: "bin"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "word", prog, nil)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrWordNotValue
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xff {
		err = ErrWordRange
		return
	}
	value = uint64(st_int64)
	return
}

// parseWord converts one BIN word to its character.
func parseWord(word string) (value byte, err error) {
	var v uint64
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		v, err = evalWord(word[2 : len(word)-1])
	} else {
		v, err = strconv.ParseUint(word, 10, 8)
		if errors.Is(err, strconv.ErrRange) {
			err = ErrWordRange
		}
	}
	if err != nil {
		return
	}
	value = byte(v)
	return
}

// Words parses a BIN document, returning its characters untrimmed.
func Words(text string) (out []byte, err error) {
	words := strings.Fields(text)
	for n := 0; n < len(words); n++ {
		word := words[n]
		if isComment(word) {
			start := n
			for !closesComment(words[n]) {
				n++
				if n == len(words) {
					err = &ErrToken{Index: start, Token: word, Err: ErrCommentOpen}
					return
				}
			}
			continue
		}

		var value byte
		value, err = parseWord(word)
		if err != nil {
			err = &ErrToken{Index: n, Token: word, Err: err}
			return
		}
		out = append(out, value)
	}
	return
}

// Encode a BIN document. The source is UTF-8, with an optional byte
// order mark.
func (Bin) Encode(source []byte) (out []byte, err error) {
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(source)
	if err != nil {
		return
	}

	words, err := Words(string(text))
	if err != nil {
		return
	}

	out = slices.Clone(tape.Trim(words))
	return
}
