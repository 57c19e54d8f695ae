package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/hmmm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotRunning      = errors.New(f("cpu not running"))
	ErrDivideByZero    = errors.New(f("divide by zero"))
	ErrInput           = errors.New(f("input"))
	ErrOutput          = errors.New(f("output"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrChannelMissing  = errors.New(f("channel missing"))

	// Table errors
	ErrMnemonicInvalid = errors.New(f("mnemonic invalid"))

	// Image errors
	ErrImageTruncated  = errors.New(f("image truncated"))
	ErrProgramTooLarge = errors.New(f("program too large"))
)

// ErrOpcode is returned when no encoding matches an instruction word.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrMemoryBounds is returned for an address outside of memory.
type ErrMemoryBounds int

func (em ErrMemoryBounds) Error() string {
	return f("address %s out of bounds", strconv.Itoa(int(em)))
}

func (em ErrMemoryBounds) Is(err error) (ok bool) {
	_, ok = err.(ErrMemoryBounds)
	return
}

// ErrImageVersion is returned for an unsupported program image version.
type ErrImageVersion byte

func (ev ErrImageVersion) Error() string {
	return f("unsupported image version %s (max supported is %s)", strconv.Itoa(int(ev)), strconv.Itoa(IMAGE_VERSION))
}

func (ev ErrImageVersion) Is(err error) (ok bool) {
	_, ok = err.(ErrImageVersion)
	return
}

// ErrFieldInvalid is returned for an unknown operand field code.
type ErrFieldInvalid byte

func (ef ErrFieldInvalid) Error() string {
	return f("field code '%c' invalid", rune(ef))
}

// ErrFieldOverflow is returned when operand fields do not fit in a word.
type ErrFieldOverflow Fields

func (ef ErrFieldOverflow) Error() string {
	return f("fields '%v' exceed %s bits", string(ef), strconv.Itoa(OPERAND_BITS))
}

// ErrEncoding is returned for an encoding whose pattern has bits outside its mask.
type ErrEncoding Encoding

func (ee ErrEncoding) Error() string {
	return f("encoding %v pattern 0x%04x outside mask 0x%04x", ee.Mnemonic, ee.Pattern, ee.Mask)
}

// ErrInstruction attaches the faulting instruction to an error.
type ErrInstruction struct {
	Pc          int
	Instruction Instruction
	Err         error
}

func (err *ErrInstruction) Error() string {
	return f("pc %s '%v' %v", strconv.Itoa(err.Pc), err.Instruction.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}
