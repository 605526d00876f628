package encode

import (
	"bytes"
	"slices"

	"github.com/ezrec/gnt4604/tape"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Raw punches the source bytes unchanged, apart from stripping a
// leading UTF-8 byte order mark and the leader and trailer.
type Raw struct{}

// Encode the raw source.
func (Raw) Encode(source []byte) (out []byte, err error) {
	out = slices.Clone(tape.Trim(bytes.TrimPrefix(source, utf8BOM)))
	return
}
