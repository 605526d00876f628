// Package tape implements the paper tape engine of the GNT4604: the
// flow controlled punch, the run-out detecting reader, leader and
// trailer trimming, and verification of a punched tape against the
// bytes that were sent.
package tape

const (
	XON      = byte(17) // DC1, resume punching.
	XOFF     = byte(19) // DC3, pause punching.
	HaltCode = byte(20) // Elliott 900 halt code.
	Fill     = byte(0)  // Blank tape, used for leader and trailer.

	RunoutLength = 90 // Leader and trailer length, in characters.

	// ReelLength bounds a single read: 1000 feet of tape at 10
	// characters per inch.
	ReelLength = 1000 * 12 * 10
)

// Trim returns the part of buf from its first to its last non-zero
// byte. The result shares storage with buf, and is empty when buf is
// entirely blank.
func Trim(buf []byte) []byte {
	start := 0
	for start < len(buf) && buf[start] == Fill {
		start++
	}

	end := len(buf)
	for end > start && buf[end-1] == Fill {
		end--
	}

	return buf[start:end]
}
