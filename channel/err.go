package channel

import (
	"errors"

	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrDeviceOpen = errors.New(f("device open failed"))
	ErrBaudRate   = errors.New(f("unsupported baud rate"))
	ErrClosed     = errors.New(f("channel closed"))
)

// ErrOpen reports a device that could not be opened, along with the
// serial ports the system does know about.
type ErrOpen struct {
	Device string
	Ports  []string
	Err    error
}

func (err *ErrOpen) Error() string {
	if len(err.Ports) == 0 {
		return f("could not open serial port %v: %v", err.Device, err.Err)
	}
	return f("could not open serial port %v: %v (available: %v)", err.Device, err.Err, err.Ports)
}

func (err *ErrOpen) Unwrap() []error {
	return []error{ErrDeviceOpen, err.Err}
}

func openError(device string, err error) error {
	ports, _ := Ports()
	return &ErrOpen{Device: device, Ports: ports, Err: err}
}
