package tape

import (
	"context"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/internal"
)

// DefaultSettle is the pause after each punched character that gives
// the GNT4604 time to raise XOFF. Determined by experiment at 4800 baud.
const DefaultSettle = time.Second / 80

// Stats counts the events of a punch session.
type Stats struct {
	Bytes       int // Characters punched.
	FlowControl int // Bytes received from the punch while checking for XOFF.
	Stalls      int // Times the transmit queue was found not yet drained.
}

// Add accumulates other into st.
func (st *Stats) Add(other Stats) {
	st.Bytes += other.Bytes
	st.FlowControl += other.FlowControl
	st.Stalls += other.Stalls
}

// Punch writes characters to the punch one at a time under XON/XOFF
// flow control.
type Punch struct {
	Channel    channel.Channel
	Settle     time.Duration       // Pause after each character. Zero selects DefaultSettle.
	XonTimeout time.Duration       // Wait for XON after XOFF. Zero waits forever.
	Sleep      func(time.Duration) // Replaces time.Sleep, if set.
	Log        zerolog.Logger
}

func (p *Punch) settle() {
	delay := p.Settle
	if delay == 0 {
		delay = DefaultSettle
	}
	sleepFor(p.Sleep, delay)
}

// flowControl consumes everything the punch has sent us. The only
// legal traffic is XOFF, followed after a settle delay by XON.
func (p *Punch) flowControl(stats *Stats) (err error) {
	for {
		var waiting int
		waiting, err = p.Channel.InWaiting()
		if err != nil || waiting == 0 {
			return
		}

		stats.FlowControl++

		var value byte
		var ok bool
		value, ok, err = p.Channel.Receive(p.XonTimeout)
		if err != nil {
			return
		}
		if !ok {
			continue
		}
		if value != XOFF {
			err = &ErrProtocol{Index: stats.Bytes, Byte: value, Expected: XOFF}
			return
		}

		p.Log.Debug().Int("index", stats.Bytes).Msg("XOFF")
		p.settle()

		value, ok, err = p.Channel.Receive(p.XonTimeout)
		if err != nil {
			return
		}
		if !ok {
			err = &ErrProtocol{Index: stats.Bytes, Expected: XON, Timeout: true}
			return
		}
		if value != XON {
			err = &ErrProtocol{Index: stats.Bytes, Byte: value, Expected: XON}
			return
		}
		p.Log.Debug().Int("index", stats.Bytes).Msg("XON")
	}
}

// drain waits for the transmit queue to empty, so a character is never
// queued behind one the punch has not yet accepted.
func (p *Punch) drain(stats *Stats) (err error) {
	waiting, err := p.Channel.OutWaiting()
	if err != nil || waiting == 0 {
		return
	}

	stats.Stalls++
	p.Log.Debug().Int("index", stats.Bytes).Int("queued", waiting).Msg("output stall")

	for waiting > 0 {
		p.settle()
		waiting, err = p.Channel.OutWaiting()
		if err != nil {
			return
		}
	}

	return
}

// Character punches a single character.
func (p *Punch) Character(value byte, stats *Stats) (err error) {
	err = p.flowControl(stats)
	if err != nil {
		return
	}

	err = p.drain(stats)
	if err != nil {
		return
	}

	err = p.Channel.Send(value)
	if err != nil {
		return
	}
	stats.Bytes++

	p.settle()

	return
}

// Punch punches data in order. On error, stats still counts what was
// punched before the failure.
func (p *Punch) Punch(ctx context.Context, data iter.Seq[byte]) (stats Stats, err error) {
	for value := range data {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = p.Character(value, &stats)
		if err != nil {
			return
		}
	}

	return
}

// Runout punches count characters of blank tape.
func (p *Punch) Runout(ctx context.Context, count int) (stats Stats, err error) {
	stats, err = p.Punch(ctx, internal.Repeat(Fill, count))
	return
}

func sleepFor(sleep func(time.Duration), delay time.Duration) {
	if delay <= 0 {
		return
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(delay)
}
