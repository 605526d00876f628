package encode

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvenParity(t *testing.T) {
	assert := assert.New(t)

	for code := range byte(0x80) {
		punched := EvenParity(code)
		assert.Equal(0, bits.OnesCount8(punched)%2, "code %d", code)
		assert.Equal(code, punched&0x7f, "code %d", code)
	}

	assert.Equal(byte(0xd8), EvenParity('X'))
	assert.Equal(byte('Y'), EvenParity('Y'))
	assert.Equal(byte(20), EvenParity(20))
	assert.Equal(byte(0), EvenParity(0))
	assert.Equal(byte(0x8d), EvenParity('\r'))
	assert.Equal(byte(0x0a), EvenParity('\n'))
}
