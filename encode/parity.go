package encode

import (
	"math/bits"
)

// EvenParity sets bit 7 of a 7 bit code when needed to give the
// character an even number of holes.
func EvenParity(code byte) byte {
	code &= 0x7f
	if bits.OnesCount8(code)%2 == 1 {
		code |= 0x80
	}
	return code
}
