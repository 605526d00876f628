package session

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/gnt4604/channel"
	"github.com/ezrec/gnt4604/tape"
)

func newTestCapture(ch channel.Channel, op Operator) *Capture {
	c := NewCapture(ch, op)
	c.Reader.Sleep = noSleep
	return c
}

func TestCapture(t *testing.T) {
	assert := assert.New(t)

	image := slices.Concat(make([]byte, 20), []byte{5, 0, 6}, make([]byte, 20))
	tc := &channel.Tape{Input: bytes.NewReader(image)}
	op := &fakeOperator{}
	c := newTestCapture(tc, op)

	buf, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal([]byte{5, 0, 6}, buf)
	assert.Len(op.prompts, 2)

	var out bytes.Buffer
	require.NoError(t, c.Write(&out, buf))
	assert.Equal(slices.Concat(make([]byte, 60), []byte{5, 0, 6}, make([]byte, 60)), out.Bytes())
}

func TestCapture_PassesDiffer(t *testing.T) {
	assert := assert.New(t)

	tc := &channel.Tape{Input: bytes.NewReader([]byte{0, 1, 2, 3, 0})}
	op := &fakeOperator{}
	op.onPrompt = func(n int) {
		if n == 2 {
			tc.Input = bytes.NewReader([]byte{0, 1, 7, 3, 0})
		}
	}
	c := newTestCapture(tc, op)

	buf, err := c.Read(context.Background())
	assert.Nil(buf)
	assert.True(errors.Is(err, tape.ErrVerification))

	var bm *tape.ErrByteMismatch
	require.True(t, errors.As(err, &bm))
	assert.Equal(1, bm.Index)
}
