package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/gnt4604/encode"
	"github.com/ezrec/gnt4604/session"
)

type readyOperator struct {
	prompts []string
}

func (op *readyOperator) Prompt(ctx context.Context, message string) error {
	op.prompts = append(op.prompts, message)
	return nil
}

var _ session.Operator = (*readyOperator)(nil)

const fastConfig = `
settle = "1ns"
read_timeout = "1ms"
idle_poll = "1ms"
runout = 4
file_runout = 2

[log]
level = "error"
color = "never"
`

func writeFile(t *testing.T, name string, content []byte) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return
}

func TestRun_Punch(t *testing.T) {
	assert := assert.New(t)

	cfg := writeFile(t, "gnt.toml", []byte(fastConfig))
	src := writeFile(t, "hello.txt", []byte("HELLO\nWORLD\n"))
	out := filepath.Join(t.TempDir(), "hello.tape")

	var stdout, stderr bytes.Buffer
	op := &readyOperator{}
	err := run(context.Background(),
		[]string{"-config", cfg, "punch", "-dry-run", out, src},
		&stdout, &stderr, op)
	require.NoError(t, err, stderr.String())
	assert.Contains(stdout.String(), "Tape verified ok")
	assert.Len(op.prompts, 1)

	expected, err := encode.Telecode{}.Encode([]byte("HELLO\nWORLD\n"))
	require.NoError(t, err)

	punched, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(append(append(make([]byte, 4), expected...), make([]byte, 4)...), punched)
}

func TestRun_Read(t *testing.T) {
	assert := assert.New(t)

	cfg := writeFile(t, "gnt.toml", []byte(fastConfig))
	in := writeFile(t, "in.tape", []byte{0, 0, 0, 1, 2, 3, 0, 0, 0xff})
	out := filepath.Join(t.TempDir(), "out.tape")

	var stdout, stderr bytes.Buffer
	op := &readyOperator{}
	err := run(context.Background(),
		[]string{"-config", cfg, "read", "-dry-run", in, out},
		&stdout, &stderr, op)
	require.NoError(t, err, stderr.String())
	assert.Contains(stdout.String(), "Tapes match ok")
	assert.Len(op.prompts, 2)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal([]byte{0, 0, 1, 2, 3, 0, 0}, written)
}

func TestRun_Usage(t *testing.T) {
	table := [][]string{
		{},
		{"sing"},
		{"punch"},
		{"punch", "a", "b", "c"},
		{"read"},
		{"ports", "extra"},
	}

	for _, args := range table {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), args, &stdout, &stderr, &readyOperator{})
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	src := writeFile(t, "x.txt", []byte("X"))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"punch", "-format", "ebcdic", "-dry-run", filepath.Join(t.TempDir(), "x.tape"), src},
		&stdout, &stderr, &readyOperator{})

	var errFormat encode.ErrFormat
	assert.ErrorAs(t, err, &errFormat)
}
