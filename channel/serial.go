package channel

import (
	"go.bug.st/serial"
)

const (
	DefaultDevice   = "/dev/ttyUSB0" // USB serial converter wired to the GNT4604 DCE socket.
	DefaultBaudRate = 4800           // GNT4604 DIP switches SW6-7 off.
)

// Mode is the line configuration. Framing is always 8 data bits, no
// parity, 1 stop bit, to match the unit's DIP switches.
type Mode struct {
	BaudRate int
}

// Ports lists the serial ports known to the system.
func Ports() (ports []string, err error) {
	ports, err = serial.GetPortsList()
	return
}
