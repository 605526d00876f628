// Package console talks to the operator standing at the GNT4604.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

var (
	ErrAborted    = errors.New(f("aborted by operator"))
	ErrNoOperator = errors.New(f("no operator input"))
)

const ctrlC = 3

// Operator prompts on Out and waits for RETURN on In. When In is a
// terminal it is switched to raw mode for the wait, so a stray key
// does not echo over the prompt and ^C aborts the session cleanly.
type Operator struct {
	In  io.Reader
	Out io.Writer

	lines *bufio.Reader
}

// NewOperator returns an operator on the process's stdin and stdout.
func NewOperator() *Operator {
	return &Operator{In: os.Stdin, Out: os.Stdout}
}

func (op *Operator) terminal() (fd int, ok bool) {
	file, isFile := op.In.(*os.File)
	if !isFile {
		return
	}
	fd = int(file.Fd())
	ok = term.IsTerminal(fd)
	return
}

// waitRaw reads keys until RETURN or ^C.
func (op *Operator) waitRaw(fd int) (err error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	var key [1]byte
	for {
		_, err = op.In.Read(key[:])
		if err != nil {
			return
		}
		switch key[0] {
		case '\r', '\n':
			fmt.Fprint(op.Out, "\r\n")
			return
		case ctrlC:
			fmt.Fprint(op.Out, "^C\r\n")
			err = ErrAborted
			return
		}
	}
}

// waitLine reads one line.
func (op *Operator) waitLine() (err error) {
	if op.lines == nil {
		op.lines = bufio.NewReader(op.In)
	}
	line, err := op.lines.ReadString('\n')
	if errors.Is(err, io.EOF) {
		err = nil
		if line == "" {
			err = ErrNoOperator
		}
	}
	return
}

// Prompt shows message and waits for the operator to press RETURN.
func (op *Operator) Prompt(ctx context.Context, message string) (err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	fmt.Fprint(op.Out, message, " ")

	if fd, ok := op.terminal(); ok {
		err = op.waitRaw(fd)
	} else {
		err = op.waitLine()
	}
	if err != nil {
		return
	}

	err = ctx.Err()
	return
}

// Say shows message on its own line.
func (op *Operator) Say(message string) {
	fmt.Fprintln(op.Out, message)
}
