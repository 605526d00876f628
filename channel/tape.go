package channel

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"slices"
	"time"
)

// Tape is a Channel with no hardware behind it. Every punched byte is
// kept in Punched and copied to Output, if set. On Reload the reader is
// fed from Input, or from a copy of Punched when Input is nil, so a
// punch-then-verify session reads back exactly what it punched.
//
// Tape never raises flow control and never stalls.
type Tape struct {
	Input   io.Reader // Tape mounted in the reader.
	Output  io.Writer // Copy of the punched tape.
	Punched []byte    // Everything sent so far.

	reader *bufio.Reader
	closed bool
}

var _ Channel = (*Tape)(nil)
var _ Reloader = (*Tape)(nil)

// Reload mounts the tape. A seekable Input is rewound first, so it may
// be read any number of times.
func (tc *Tape) Reload() (err error) {
	if tc.closed {
		err = ErrClosed
		return
	}

	if tc.Input == nil {
		tc.reader = bufio.NewReader(bytes.NewReader(slices.Clone(tc.Punched)))
		return
	}

	if seeker, ok := tc.Input.(io.Seeker); ok {
		_, err = seeker.Seek(0, io.SeekStart)
		if err != nil {
			return
		}
	}
	tc.reader = bufio.NewReader(tc.Input)

	return
}

// Receive returns the next byte of the mounted tape. Running off the
// end of the tape is reported as a timeout, as real hardware would.
func (tc *Tape) Receive(timeout time.Duration) (value byte, ok bool, err error) {
	if tc.closed {
		err = ErrClosed
		return
	}
	if tc.reader == nil {
		return
	}

	value, err = tc.reader.ReadByte()
	if errors.Is(err, io.EOF) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	ok = true
	return
}

// Send punches data.
func (tc *Tape) Send(data ...byte) (err error) {
	if tc.closed {
		err = ErrClosed
		return
	}

	tc.Punched = append(tc.Punched, data...)
	if tc.Output != nil {
		_, err = tc.Output.Write(data)
	}

	return
}

// InWaiting reports how much of the mounted tape can be read without
// blocking. Nothing is waiting until a tape has been mounted.
func (tc *Tape) InWaiting() (n int, err error) {
	if tc.closed {
		err = ErrClosed
		return
	}
	if tc.reader == nil {
		return
	}

	_, err = tc.reader.Peek(1)
	if errors.Is(err, io.EOF) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	n = tc.reader.Buffered()
	return
}

// OutWaiting is always zero; writes complete immediately.
func (tc *Tape) OutWaiting() (n int, err error) {
	if tc.closed {
		err = ErrClosed
	}
	return
}

// Close the tape. Input and Output belong to the caller and are not closed.
func (tc *Tape) Close() (err error) {
	tc.closed = true
	tc.reader = nil
	return
}
