package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gnt4604/tape"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"bin", "raw", "telecode"}, Formats())

	for _, name := range []string{"telecode", "BIN", "Raw"} {
		enc, err := New(name)
		assert.NoError(err)
		assert.NotNil(enc)
	}

	_, err := New("ascii")
	assert.Equal(ErrFormat("ascii"), err)
}

func TestRaw(t *testing.T) {
	assert := assert.New(t)

	source := []byte{0, 0, 1, 0, 200, 0}
	out, err := Raw{}.Encode(source)
	assert.NoError(err)
	assert.Equal([]byte{1, 0, 200}, out)

	// The source is left untouched.
	assert.Equal([]byte{0, 0, 1, 0, 200, 0}, source)

	// Reading the punched raw tape back gives the trimmed source.
	assert.Equal(out, tape.Trim(append(append(make([]byte, 90), out...), make([]byte, 90)...)))
}

func TestRaw_ByteOrderMark(t *testing.T) {
	out, err := Raw{}.Encode([]byte{0xef, 0xbb, 0xbf, 0, 'A', 0})
	assert.NoError(t, err)
	assert.Equal(t, []byte{'A'}, out)
}
