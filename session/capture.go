package session

import (
	"context"
	"io"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/internal"
	"github.com/ezrec/gnt4604/tape"
)

// Capture copies an existing tape into a file. The tape is read twice
// and both passes must agree before anything is written.
type Capture struct {
	Channel  channel.Channel
	Operator Operator
	Reader   tape.Reader // Reader settings. Channel is filled in by NewCapture.
	Runout   int         // Blank characters written before and after the tape.
	Log      zerolog.Logger
}

// NewCapture creates a capture reading from ch.
func NewCapture(ch channel.Channel, op Operator) (c *Capture) {
	c = &Capture{
		Channel:  ch,
		Operator: op,
		Runout:   60,
	}
	c.Reader.Channel = ch
	return
}

func (c *Capture) pass(ctx context.Context, prompt string) (buf []byte, err error) {
	err = c.Operator.Prompt(ctx, prompt)
	if err != nil {
		return
	}

	err = channel.Reload(c.Channel)
	if err != nil {
		return
	}

	raw, err := c.Reader.Read(ctx)
	if err != nil {
		return
	}

	buf = tape.Trim(raw)
	c.Log.Info().Int("characters", len(raw)).Int("trimmed", len(buf)).Msg("tape pass")
	return
}

// Read reads the tape twice and returns it trimmed.
func (c *Capture) Read(ctx context.Context) (buf []byte, err error) {
	first, err := c.pass(ctx, f("Load tape in reader, press RETURN and start reader"))
	if err != nil {
		err = &ErrSession{State: AwaitingReload, Err: err}
		return
	}

	second, err := c.pass(ctx, f("Reload tape, press RETURN and start reader"))
	if err != nil {
		err = &ErrSession{State: AwaitingReload, Err: err}
		return
	}

	err = tape.Verify(first, second)
	if err != nil {
		err = &ErrSession{State: Verifying, Err: err}
		return
	}

	buf = first
	return
}

// Write stores buf with Runout blank characters either side.
func (c *Capture) Write(w io.Writer, buf []byte) (err error) {
	out := slices.Collect(internal.Concat(
		internal.Repeat(tape.Fill, c.Runout),
		slices.Values(buf),
		internal.Repeat(tape.Fill, c.Runout),
	))
	_, err = w.Write(out)
	return
}
