package tape

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/channel"
)

const (
	DefaultReadTimeout = 100 * time.Millisecond // Silence this long means the tape ran out.
	DefaultIdlePoll    = 100 * time.Millisecond // Poll interval while waiting for the reader to start.
)

// Reader captures one pass of a tape through the reader.
type Reader struct {
	Channel  channel.Channel
	Timeout  time.Duration       // Zero selects DefaultReadTimeout.
	IdlePoll time.Duration       // Zero selects DefaultIdlePoll.
	Reel     int                 // Maximum characters per pass. Zero selects ReelLength.
	Sleep    func(time.Duration) // Replaces time.Sleep, if set.
	Log      zerolog.Logger
}

// awaitTape blocks until the reader starts sending.
func (r *Reader) awaitTape(ctx context.Context) (err error) {
	poll := r.IdlePoll
	if poll == 0 {
		poll = DefaultIdlePoll
	}

	for {
		var waiting int
		waiting, err = r.Channel.InWaiting()
		if err != nil || waiting > 0 {
			return
		}

		err = ctx.Err()
		if err != nil {
			return
		}

		sleepFor(r.Sleep, poll)
	}
}

// dropFramingByte discards the last character captured. The pass ends
// on the first read that times out, and the character received just
// before that silence is not trusted to have been framed completely.
// The trailer is blank tape, so in practice only trailer is lost.
func dropFramingByte(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	return buf[:len(buf)-1]
}

// Read waits for the operator to start the reader, then captures
// characters until the tape runs out or a full reel has been read.
// The result is untrimmed.
func (r *Reader) Read(ctx context.Context) (buf []byte, err error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	reel := r.Reel
	if reel == 0 {
		reel = ReelLength
	}

	r.Log.Debug().Msg("waiting for reader")
	err = r.awaitTape(ctx)
	if err != nil {
		return
	}

	buf = make([]byte, 0, min(reel, 4096))
	for len(buf) < reel {
		err = ctx.Err()
		if err != nil {
			return
		}

		var value byte
		var ok bool
		value, ok, err = r.Channel.Receive(timeout)
		if err != nil {
			return
		}
		if !ok {
			break
		}
		buf = append(buf, value)
	}

	if len(buf) == reel {
		r.Log.Warn().Int("reel", reel).Msg("read stopped at reel limit")
	}

	buf = dropFramingByte(buf)
	r.Log.Info().Int("characters", len(buf)).Msg("tape read")

	return
}
