// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Mnemonic is a decoded operation.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_HALT   = Mnemonic(0)  // halt
	OP_READ   = Mnemonic(1)  // read
	OP_WRITE  = Mnemonic(2)  // write
	OP_JUMPI  = Mnemonic(3)  // jumpi
	OP_LOADN  = Mnemonic(4)  // loadn
	OP_LOAD   = Mnemonic(5)  // load
	OP_STORE  = Mnemonic(6)  // store
	OP_LOADI  = Mnemonic(7)  // loadi
	OP_STOREI = Mnemonic(8)  // storei
	OP_POPR   = Mnemonic(9)  // popr
	OP_PUSHN  = Mnemonic(10) // pushn
	OP_ADDN   = Mnemonic(11) // addn
	OP_NOP    = Mnemonic(12) // nop
	OP_MOV    = Mnemonic(13) // mov
	OP_ADD    = Mnemonic(14) // add
	OP_NEG    = Mnemonic(15) // neg
	OP_SUB    = Mnemonic(16) // sub
	OP_MUL    = Mnemonic(17) // mul
	OP_DIV    = Mnemonic(18) // div
	OP_MOD    = Mnemonic(19) // mod
	OP_JUMP   = Mnemonic(20) // jump
	OP_CALL   = Mnemonic(21) // call
	OP_JEQZ   = Mnemonic(22) // jeqz
	OP_JNEZ   = Mnemonic(23) // jnez
	OP_JGTZ   = Mnemonic(24) // jgtz
	OP_JLTZ   = Mnemonic(25) // jltz
	OP_DATA   = Mnemonic(26) // data

	opCount = 27
)

// mnemonicFields holds the operand fields of each mnemonic.
var mnemonicFields = [opCount]Fields{
	OP_HALT:   "",
	OP_READ:   "r",
	OP_WRITE:  "r",
	OP_JUMPI:  "uz",
	OP_LOADN:  "rs",
	OP_LOAD:   "ru",
	OP_STORE:  "ru",
	OP_LOADI:  "rr",
	OP_STOREI: "rr",
	OP_POPR:   "rr",
	OP_PUSHN:  "rr",
	OP_ADDN:   "rs",
	OP_NOP:    "",
	OP_MOV:    "rr",
	OP_ADD:    "rrr",
	OP_NEG:    "rzr",
	OP_SUB:    "rrr",
	OP_MUL:    "rrr",
	OP_DIV:    "rrr",
	OP_MOD:    "rrr",
	OP_JUMP:   "zu",
	OP_CALL:   "ru",
	OP_JEQZ:   "ru",
	OP_JNEZ:   "ru",
	OP_JGTZ:   "ru",
	OP_JLTZ:   "ru",
	OP_DATA:   "n",
}

// Fields returns the operand field codes of the mnemonic.
func (op Mnemonic) Fields() Fields {
	if op < 0 || op >= opCount {
		return ""
	}
	return mnemonicFields[op]
}

// Encoding matches an instruction word when word&Mask == Pattern.
type Encoding struct {
	Pattern  uint16
	Mask     uint16
	Mnemonic Mnemonic
}

// Matches returns true if word belongs to this encoding.
func (enc Encoding) Matches(word uint16) bool {
	return word&enc.Mask == enc.Pattern
}

// Table is an ordered list of encodings. The first match wins, so
// narrower masks must precede the wider masks that overlap them.
type Table []Encoding

// DefaultTable is the HMMM instruction set.
var DefaultTable = MustTable(
	Encoding{0x0000, 0xffff, OP_HALT},
	Encoding{0x0001, 0xf0ff, OP_READ},
	Encoding{0x0002, 0xf0ff, OP_WRITE},
	Encoding{0x0003, 0xf00f, OP_JUMPI},
	Encoding{0x1000, 0xf000, OP_LOADN},
	Encoding{0x2000, 0xf000, OP_LOAD},
	Encoding{0x3000, 0xf000, OP_STORE},
	Encoding{0x4000, 0xf00f, OP_LOADI},
	Encoding{0x4001, 0xf00f, OP_STOREI},
	Encoding{0x4002, 0xf00f, OP_POPR},
	Encoding{0x4003, 0xf00f, OP_PUSHN},
	Encoding{0x5000, 0xf000, OP_ADDN},
	Encoding{0x6000, 0xffff, OP_NOP},
	Encoding{0x6000, 0xf00f, OP_MOV},
	Encoding{0x6000, 0xf000, OP_ADD},
	Encoding{0x7000, 0xf0f0, OP_NEG},
	Encoding{0x7000, 0xf000, OP_SUB},
	Encoding{0x8000, 0xf000, OP_MUL},
	Encoding{0x9000, 0xf000, OP_DIV},
	Encoding{0xa000, 0xf000, OP_MOD},
	Encoding{0xb000, 0xff00, OP_JUMP},
	Encoding{0xb000, 0xf000, OP_CALL},
	Encoding{0xc000, 0xf000, OP_JEQZ},
	Encoding{0xd000, 0xf000, OP_JNEZ},
	Encoding{0xe000, 0xf000, OP_JGTZ},
	Encoding{0xf000, 0xf000, OP_JLTZ},
	Encoding{0x0000, 0x0000, OP_DATA},
)

// NewTable validates and builds an encoding table.
// Every pattern must lie inside its mask, and every mnemonic must
// have well formed operand fields.
func NewTable(encs ...Encoding) (table Table, err error) {
	for _, enc := range encs {
		if enc.Mnemonic < 0 || enc.Mnemonic >= opCount {
			err = ErrMnemonicInvalid
			return
		}
		if enc.Pattern&^enc.Mask != 0 {
			err = ErrEncoding(enc)
			return
		}
		err = enc.Mnemonic.Fields().Validate()
		if err != nil {
			return
		}
	}

	table = Table(encs)
	return
}

// MustTable is NewTable that panics on error.
func MustTable(encs ...Encoding) Table {
	table, err := NewTable(encs...)
	if err != nil {
		panic(err)
	}
	return table
}

// Match returns the mnemonic of the first encoding that matches word.
func (table Table) Match(word uint16) (op Mnemonic, ok bool) {
	for _, enc := range table {
		if enc.Matches(word) {
			return enc.Mnemonic, true
		}
	}

	return
}

// Lookup returns the first encoding for a mnemonic.
func (table Table) Lookup(op Mnemonic) (enc Encoding, ok bool) {
	for _, enc = range table {
		if enc.Mnemonic == op {
			return enc, true
		}
	}

	return Encoding{}, false
}

// Field is an operand field code.
type Field byte

const (
	FIELD_SKIP     = Field('z') // 4 reserved bits
	FIELD_REGISTER = Field('r') // 4 bit register index
	FIELD_UNSIGNED = Field('u') // 8 bit unsigned value
	FIELD_SIGNED   = Field('s') // 8 bit signed value
	FIELD_WORD     = Field('n') // signed value of the whole word
)

// OPERAND_BITS is the number of bits below the opcode nibble.
const OPERAND_BITS = 12

// Width returns the number of cursor bits consumed by the field.
func (fc Field) Width() (width int, ok bool) {
	switch fc {
	case FIELD_SKIP, FIELD_REGISTER:
		return 4, true
	case FIELD_UNSIGNED, FIELD_SIGNED:
		return 8, true
	case FIELD_WORD:
		return 0, true
	}
	return 0, false
}

// Fields is an ordered sequence of field codes, most significant first.
type Fields string

// Validate checks every field code, and that the fields fit under the
// opcode nibble.
func (fs Fields) Validate() error {
	used := 0
	for _, fc := range []byte(fs) {
		width, ok := Field(fc).Width()
		if !ok {
			return ErrFieldInvalid(fc)
		}
		used += width
	}

	if used > OPERAND_BITS {
		return ErrFieldOverflow(fs)
	}

	return nil
}

// Count returns the number of operands the fields yield.
func (fs Fields) Count() (count int) {
	for _, fc := range []byte(fs) {
		if Field(fc) != FIELD_SKIP {
			count++
		}
	}
	return
}

// Code is a single instruction word.
type Code uint16

// Operands decodes the operand values of the word, in field order.
// The bit cursor starts under the opcode nibble and walks down.
func (code Code) Operands(fields Fields) iter.Seq[int] {
	return func(yield func(value int) bool) {
		word := uint16(code)
		offs := OPERAND_BITS
		for _, fc := range []byte(fields) {
			width, ok := Field(fc).Width()
			if !ok || width > offs {
				return
			}

			var value int
			switch Field(fc) {
			case FIELD_SKIP:
				offs -= 4
				continue
			case FIELD_REGISTER:
				offs -= 4
				value = int((word >> offs) & 0xf)
			case FIELD_UNSIGNED:
				offs -= 8
				value = int(uint8(word >> offs))
			case FIELD_SIGNED:
				offs -= 8
				value = int(int8(word >> offs))
			case FIELD_WORD:
				value = int(int16(word))
			}
			if !yield(value) {
				return
			}
		}
	}
}

// MakeCode encodes an instruction with the default table. Each argument
// is masked to the width of its field.
func MakeCode(op Mnemonic, args ...int) Code {
	return DefaultTable.MakeCode(op, args...)
}

// MakeCode encodes an instruction for a mnemonic of this table.
// Missing arguments encode as zero.
func (table Table) MakeCode(op Mnemonic, args ...int) Code {
	enc, ok := table.Lookup(op)
	if !ok {
		panic(ErrMnemonicInvalid)
	}

	word := enc.Pattern
	offs := OPERAND_BITS
	for _, fc := range []byte(op.Fields()) {
		if Field(fc) == FIELD_SKIP {
			offs -= 4
			continue
		}

		var arg int
		if len(args) > 0 {
			arg, args = args[0], args[1:]
		}

		switch Field(fc) {
		case FIELD_REGISTER:
			offs -= 4
			word |= (uint16(arg) & 0xf) << offs
		case FIELD_UNSIGNED, FIELD_SIGNED:
			offs -= 8
			word |= (uint16(arg) & 0xff) << offs
		case FIELD_WORD:
			word = uint16(arg)
		}
	}

	return Code(word)
}

// Instruction is a decoded instruction: a mnemonic and its operands.
type Instruction struct {
	Mnemonic Mnemonic
	Operands []int
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() string {
	words := []string{inst.Mnemonic.String()}

	fields := []byte(inst.Mnemonic.Fields())
	n := 0
	for _, fc := range fields {
		if Field(fc) == FIELD_SKIP {
			continue
		}
		if n >= len(inst.Operands) {
			break
		}
		value := inst.Operands[n]
		n++
		if Field(fc) == FIELD_REGISTER {
			words = append(words, fmt.Sprintf("r%d", value))
		} else {
			words = append(words, fmt.Sprintf("%d", value))
		}
	}

	return strings.Join(words, " ")
}
