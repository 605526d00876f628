package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat(t *testing.T) {
	assert := assert.New(t)

	seq := Concat(Repeat(byte(0), 2), slices.Values([]byte{7, 8}), Repeat(byte(0), 1))
	assert.Equal([]byte{0, 0, 7, 8, 0}, slices.Collect(seq))
	assert.Equal(5, Count(seq))
}

func TestConcat_Stop(t *testing.T) {
	assert := assert.New(t)

	var got []int
	for v := range Concat(slices.Values([]int{1, 2}), slices.Values([]int{3, 4})) {
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	assert.Equal([]int{1, 2, 3}, got)
}

func TestRepeat_Empty(t *testing.T) {
	assert.Equal(t, 0, Count(Repeat("x", 0)))
}
