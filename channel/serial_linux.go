//go:build linux

package channel

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

var linuxBaud = map[int]uint32{
	1200:  unix.B1200,
	2400:  unix.B2400,
	4800:  unix.B4800,
	9600:  unix.B9600,
	19200: unix.B19200,
	38400: unix.B38400,
}

// Serial is a raw 8N1 tty.
type Serial struct {
	Device string
	fd     int
}

var _ Channel = (*Serial)(nil)

// Open the tty at device in raw mode, with exclusive access.
func Open(device string, mode Mode) (ser *Serial, err error) {
	speed, ok := linuxBaud[mode.BaudRate]
	if !ok {
		err = openError(device, ErrBaudRate)
		return
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		err = openError(device, err)
		return
	}

	defer func() {
		if err != nil {
			unix.Close(fd)
			err = openError(device, err)
		}
	}()

	err = unix.IoctlSetInt(fd, unix.TIOCEXCL, 0)
	if err != nil {
		return
	}

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return
	}

	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF | unix.IXANY
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD
	tio.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	tio.Ispeed = speed
	tio.Ospeed = speed
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 0

	err = unix.IoctlSetTermios(fd, unix.TCSETS, tio)
	if err != nil {
		return
	}

	// Discard anything left over from before we owned the line.
	err = unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH)
	if err != nil {
		return
	}

	ser = &Serial{Device: device, fd: fd}
	return
}

func (ser *Serial) poll(events int16, timeout time.Duration) (ready bool, err error) {
	ms := -1
	if timeout > 0 {
		ms = int((timeout + time.Millisecond - 1) / time.Millisecond)
	}

	fds := []unix.PollFd{{Fd: int32(ser.fd), Events: events}}
	for {
		var n int
		n, err = unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		ready = n > 0
		return
	}
}

// Receive one byte, waiting up to timeout.
func (ser *Serial) Receive(timeout time.Duration) (value byte, ok bool, err error) {
	if ser.fd < 0 {
		err = ErrClosed
		return
	}

	ready, err := ser.poll(unix.POLLIN, timeout)
	if err != nil || !ready {
		return
	}

	var one [1]byte
	n, err := unix.Read(ser.fd, one[:])
	if errors.Is(err, unix.EAGAIN) {
		err = nil
		return
	}
	if err != nil || n == 0 {
		return
	}

	value = one[0]
	ok = true
	return
}

// Send all of data, waiting for the line to accept it.
func (ser *Serial) Send(data ...byte) (err error) {
	if ser.fd < 0 {
		err = ErrClosed
		return
	}

	for len(data) > 0 {
		var n int
		n, err = unix.Write(ser.fd, data)
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			_, err = ser.poll(unix.POLLOUT, 0)
			if err != nil {
				return
			}
			continue
		}
		if err != nil {
			return
		}
		data = data[n:]
	}

	return
}

// InWaiting returns the count of bytes in the receive queue.
func (ser *Serial) InWaiting() (n int, err error) {
	if ser.fd < 0 {
		err = ErrClosed
		return
	}
	n, err = unix.IoctlGetInt(ser.fd, unix.TIOCINQ)
	return
}

// OutWaiting returns the count of bytes in the transmit queue.
func (ser *Serial) OutWaiting() (n int, err error) {
	if ser.fd < 0 {
		err = ErrClosed
		return
	}
	n, err = unix.IoctlGetInt(ser.fd, unix.TIOCOUTQ)
	return
}

// Close the tty.
func (ser *Serial) Close() (err error) {
	if ser.fd < 0 {
		return
	}
	err = unix.Close(ser.fd)
	ser.fd = -1
	return
}
