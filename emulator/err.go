package emulator

import (
	"strconv"

	"github.com/ezrec/hmmm/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc %s: %v", strconv.Itoa(err.Pc), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
