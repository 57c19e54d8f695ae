package io

import (
	"errors"

	"github.com/ezrec/hmmm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull  = errors.New(f("channel full"))
	ErrChannelEmpty = errors.New(f("channel empty"))
	ErrNoInput      = errors.New(f("no input attached"))
	ErrNoOutput     = errors.New(f("no output attached"))
)

// ErrNotNumber is returned when an input line does not hold an integer.
type ErrNotNumber string

func (err ErrNotNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
