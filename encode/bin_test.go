package encode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBin(t *testing.T) {
	assert := assert.New(t)

	out, err := Bin{}.Encode([]byte("(ignored 1 2) 10 20 (skip) 30"))
	assert.NoError(err)
	assert.Equal([]byte{10, 20, 30}, out)
}

func TestBin_Table(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		In  string
		Out []byte
	}){
		{In: "", Out: []byte{}},
		{In: "0 0 0", Out: []byte{}},
		{In: "0 0 255 0 1 0 0", Out: []byte{255, 0, 1}},
		{In: "\ufeff1\n2\t3", Out: []byte{1, 2, 3}},
		{In: "(a) (b c)\n(d\ne\nf) 7", Out: []byte{7}},
		{In: "(a)(b) 6", Out: []byte{6}},
		{In: "010 $(0o10) $(64|3)", Out: []byte{10, 8, 67}},
	}

	for _, tc := range table {
		out, err := Bin{}.Encode([]byte(tc.In))
		assert.NoError(err, "%q", tc.In)
		assert.Equal(len(tc.Out), len(out), "%q", tc.In)
		if len(tc.Out) > 0 {
			assert.Equal(tc.Out, out, "%q", tc.In)
		}
	}
}

func TestBin_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		In    string
		Index int
		Err   error
	}){
		{In: "1 2 x", Index: 2},
		{In: "1 256", Index: 1, Err: ErrWordRange},
		{In: "-1", Index: 0},
		{In: "1 (open 2 3", Index: 1, Err: ErrCommentOpen},
		{In: "$(300)", Index: 0, Err: ErrWordRange},
		{In: "$('a')", Index: 0, Err: ErrWordNotValue},
	}

	for _, tc := range table {
		out, err := Bin{}.Encode([]byte(tc.In))
		assert.Nil(out, tc.In)
		assert.True(errors.Is(err, ErrParse), tc.In)

		var terr *ErrToken
		require.True(t, errors.As(err, &terr), tc.In)
		assert.Equal(tc.Index, terr.Index, tc.In)
		if tc.Err != nil {
			assert.True(errors.Is(err, tc.Err), tc.In)
		}
	}
}
