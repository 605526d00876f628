package tape

import (
	"time"
)

// fakeChannel is a scripted channel. Inbound bytes are available
// immediately; once they run out every Receive times out.
type fakeChannel struct {
	inbound    []byte
	outWaiting []int // Successive OutWaiting answers, then zero.
	idle       int   // InWaiting reports zero this many times first.
	sent       []byte
	onSend     func(fc *fakeChannel, value byte)
	timeouts   []time.Duration
}

func (fc *fakeChannel) Receive(timeout time.Duration) (value byte, ok bool, err error) {
	fc.timeouts = append(fc.timeouts, timeout)
	if len(fc.inbound) == 0 {
		return
	}
	value = fc.inbound[0]
	fc.inbound = fc.inbound[1:]
	ok = true
	return
}

func (fc *fakeChannel) Send(data ...byte) (err error) {
	for _, value := range data {
		fc.sent = append(fc.sent, value)
		if fc.onSend != nil {
			fc.onSend(fc, value)
		}
	}
	return
}

func (fc *fakeChannel) InWaiting() (n int, err error) {
	if fc.idle > 0 {
		fc.idle--
		return
	}
	n = len(fc.inbound)
	return
}

func (fc *fakeChannel) OutWaiting() (n int, err error) {
	if len(fc.outWaiting) > 0 {
		n = fc.outWaiting[0]
		fc.outWaiting = fc.outWaiting[1:]
	}
	return
}

func (fc *fakeChannel) Close() (err error) {
	return
}

// sleepLog records requested sleeps instead of sleeping.
type sleepLog []time.Duration

func (sl *sleepLog) Sleep(d time.Duration) {
	*sl = append(*sl, d)
}
