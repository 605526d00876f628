package session

import (
	"github.com/ezrec/gnt4604/translate"
)

var f = translate.From

// ErrSession records the state a session was in when it failed.
type ErrSession struct {
	State State
	Err   error
}

func (err *ErrSession) Error() string {
	return f("%v: %v", err.State, err.Err)
}

func (err *ErrSession) Unwrap() error {
	return err.Err
}
