package tape

import (
	"errors"

	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var (
	// Punch errors
	ErrProtocolViolation = errors.New(f("flow control protocol violation"))

	// Verify errors
	ErrVerification = errors.New(f("tape verification failed"))
)

// ErrProtocol describes an unexpected byte from the punch while
// checking for flow control.
type ErrProtocol struct {
	Index    int  // Position in the punched stream.
	Byte     byte // What the punch sent.
	Expected byte // What it should have sent.
	Timeout  bool // Nothing arrived at all.
}

func (err *ErrProtocol) Error() string {
	switch {
	case err.Timeout:
		return f("character %d: XOFF not followed by XON, nothing received", err.Index)
	case err.Expected == XON:
		return f("character %d: XOFF not followed by XON, got %d", err.Index, err.Byte)
	default:
		return f("character %d: unexpected byte %d, XOFF expected", err.Index, err.Byte)
	}
}

func (err *ErrProtocol) Is(target error) bool {
	return target == ErrProtocolViolation
}

// ErrLengthMismatch reports tapes of different lengths. Index is the
// first difference within the shorter tape, or -1 if one tape is a
// prefix of the other.
type ErrLengthMismatch struct {
	Expected int
	Observed int
	Index    int
}

func (err *ErrLengthMismatch) Error() string {
	if err.Index < 0 {
		return f("tapes are of different length: expected %d, read %d", err.Expected, err.Observed)
	}
	return f("tapes are of different length: expected %d, read %d, first difference at character %d",
		err.Expected, err.Observed, err.Index)
}

func (err *ErrLengthMismatch) Is(target error) bool {
	return target == ErrVerification
}

// ErrByteMismatch reports the first differing character of two
// equal length tapes.
type ErrByteMismatch struct {
	Index    int
	Expected byte
	Observed byte
}

func (err *ErrByteMismatch) Error() string {
	return f("tapes are not identical at character %d: expected %d, read %d",
		err.Index, err.Expected, err.Observed)
}

func (err *ErrByteMismatch) Is(target error) bool {
	return target == ErrVerification
}
