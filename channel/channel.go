// Package channel provides the duplex byte streams used to talk to the
// GNT4604 punch and reader. The hardware is reached through Serial; Tape
// is an in-memory or file backed stand-in used for dry runs and tests.
package channel

import (
	"time"
)

// Channel defines the byte-level interface to the punch/reader unit.
type Channel interface {
	// Receive waits up to timeout for one inbound byte. A zero timeout
	// waits forever. ok is false if no byte arrived in time.
	Receive(timeout time.Duration) (value byte, ok bool, err error)
	// Send writes bytes to the device.
	Send(data ...byte) error
	// InWaiting returns the number of received bytes not yet read.
	InWaiting() (n int, err error)
	// OutWaiting returns the number of sent bytes not yet transmitted.
	OutWaiting() (n int, err error)
	// Close releases the device.
	Close() error
}

// Reloader is implemented by channels that must be told when the
// operator has mounted a new tape in the reader.
type Reloader interface {
	Reload() error
}

// Reload notifies ch that a tape was mounted, if ch cares.
func Reload(ch Channel) (err error) {
	if rl, ok := ch.(Reloader); ok {
		err = rl.Reload()
	}
	return
}
