//go:build !linux

package channel

import (
	"time"

	"go.bug.st/serial"
)

// peekTimeout bounds the probe read InWaiting uses, as the portable
// serial API has no receive queue query.
const peekTimeout = time.Millisecond

// Serial is an 8N1 port opened through go.bug.st/serial.
type Serial struct {
	Device string
	port   serial.Port
	peeked []byte
}

var _ Channel = (*Serial)(nil)

// Open the serial port at device.
func Open(device string, mode Mode) (ser *Serial, err error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: mode.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		err = openError(device, err)
		return
	}

	ser = &Serial{Device: device, port: port}
	return
}

func (ser *Serial) read(timeout time.Duration) (value byte, ok bool, err error) {
	if timeout <= 0 {
		timeout = serial.NoTimeout
	}
	err = ser.port.SetReadTimeout(timeout)
	if err != nil {
		return
	}

	var one [1]byte
	n, err := ser.port.Read(one[:])
	if err != nil || n == 0 {
		return
	}

	value = one[0]
	ok = true
	return
}

// Receive one byte, waiting up to timeout.
func (ser *Serial) Receive(timeout time.Duration) (value byte, ok bool, err error) {
	if ser.port == nil {
		err = ErrClosed
		return
	}

	if len(ser.peeked) > 0 {
		value = ser.peeked[0]
		ser.peeked = ser.peeked[1:]
		ok = true
		return
	}

	value, ok, err = ser.read(timeout)
	return
}

// Send all of data.
func (ser *Serial) Send(data ...byte) (err error) {
	if ser.port == nil {
		err = ErrClosed
		return
	}

	for len(data) > 0 {
		var n int
		n, err = ser.port.Write(data)
		if err != nil {
			return
		}
		data = data[n:]
	}

	return
}

// InWaiting reports bytes already received. Lacking a queue query, it
// probes for one byte and holds it for the next Receive.
func (ser *Serial) InWaiting() (n int, err error) {
	if ser.port == nil {
		err = ErrClosed
		return
	}

	if len(ser.peeked) == 0 {
		value, ok, err := ser.read(peekTimeout)
		if err != nil {
			return 0, err
		}
		if ok {
			ser.peeked = append(ser.peeked, value)
		}
	}

	n = len(ser.peeked)
	return
}

// OutWaiting drains the transmit queue and reports it empty.
func (ser *Serial) OutWaiting() (n int, err error) {
	if ser.port == nil {
		err = ErrClosed
		return
	}
	err = ser.port.Drain()
	return
}

// Close the port.
func (ser *Serial) Close() (err error) {
	if ser.port == nil {
		return
	}
	err = ser.port.Close()
	ser.port = nil
	return
}
