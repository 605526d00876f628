package tape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReader(t *testing.T) {
	assert := assert.New(t)

	fc := &fakeChannel{inbound: []byte{0, 0, 1, 2, 3, 0, 0}}
	sl := sleepLog{}
	r := &Reader{Channel: fc, Sleep: sl.Sleep}

	buf, err := r.Read(context.Background())
	assert.NoError(err)

	// The character before run-out is dropped.
	assert.Equal([]byte{0, 0, 1, 2, 3, 0}, buf)
	assert.Equal([]byte{1, 2, 3}, Trim(buf))

	for _, timeout := range fc.timeouts {
		assert.Equal(DefaultReadTimeout, timeout)
	}
	assert.Empty(sl)
}

func TestReader_AwaitTape(t *testing.T) {
	assert := assert.New(t)

	fc := &fakeChannel{inbound: []byte{4, 5, 0}, idle: 3}
	sl := sleepLog{}
	r := &Reader{Channel: fc, Sleep: sl.Sleep, IdlePoll: 50 * time.Millisecond}

	buf, err := r.Read(context.Background())
	assert.NoError(err)
	assert.Equal([]byte{4, 5}, buf)
	assert.Equal(sleepLog{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond}, sl)
}

func TestReader_Reel(t *testing.T) {
	assert := assert.New(t)

	fc := &fakeChannel{inbound: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	r := &Reader{Channel: fc, Reel: 4}

	buf, err := r.Read(context.Background())
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3}, buf)
	assert.Equal([]byte{5, 6, 7, 8}, fc.inbound)
}

func TestReader_Canceled(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())

	fc := &fakeChannel{idle: 1000}
	polls := 0
	r := &Reader{
		Channel: fc,
		Sleep: func(time.Duration) {
			polls++
			if polls == 5 {
				cancel()
			}
		},
	}

	buf, err := r.Read(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Empty(buf)
	assert.Equal(5, polls)
}

func TestDropFramingByte(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(dropFramingByte(nil))
	assert.Empty(dropFramingByte([]byte{9}))
	assert.Equal([]byte{1, 2}, dropFramingByte([]byte{1, 2, 3}))
}
