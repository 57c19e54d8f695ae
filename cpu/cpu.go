// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/hmmm/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

const (
	REGISTER_COUNT = 16  // Architectural registers, r0 included.
	MEMORY_SIZE    = 256 // Words of memory.
)

// State is the execution state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

// Cpu is the simulation context of the HMMM processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Table Table // Instruction encodings; nil selects DefaultTable.

	Pc       int                       // Program counter.
	Register [REGISTER_COUNT - 1]int16 // r1 - r15; r0 is hardwired to zero.
	Memory   [MEMORY_SIZE]uint16       // Main memory.
	State    State                     // Execution state.

	Input  Channel // Source for 'read'.
	Output Channel // Sink for 'write'.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU attached to the given console channels.
func NewCpu(input, output Channel) (cpu *Cpu) {
	cpu = &Cpu{
		Input:  input,
		Output: output,
	}

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Copies the image into low memory.
// - Sets the program counter to zero and the state to running.
func (cpu *Cpu) Reset(image []uint16) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: reset, %d words", len(image))
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	copy(cpu.Memory[:], image)

	cpu.Pc = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0

	return
}

func (cpu *Cpu) table() Table {
	if cpu.Table == nil {
		return DefaultTable
	}
	return cpu.Table
}

// GetRegister returns the value of a register. r0 always reads zero.
func (cpu *Cpu) GetRegister(r int) (value int16, err error) {
	if r < 0 || r >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	if r == 0 {
		return
	}

	value = cpu.Register[r-1]
	return
}

// SetRegister stores value, wrapped to 16 bit two's complement, into a
// register. Writes to r0 are discarded.
func (cpu *Cpu) SetRegister(r int, value int) (err error) {
	if r < 0 || r >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	if r == 0 {
		return
	}

	cpu.Register[r-1] = int16(value)
	return
}

// Load returns the memory word at addr.
func (cpu *Cpu) Load(addr int) (value uint16, err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrMemoryBounds(addr)
		return
	}

	value = cpu.Memory[addr]
	return
}

// Store writes value, wrapped to 16 bits, into memory at addr.
func (cpu *Cpu) Store(addr int, value int) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrMemoryBounds(addr)
		return
	}

	cpu.Memory[addr] = uint16(value)
	return
}

// Fetch returns the instruction word at the program counter.
func (cpu *Cpu) Fetch() (code Code, err error) {
	word, err := cpu.Load(cpu.Pc)
	if err != nil {
		return
	}

	code = Code(word)
	return
}

// Decode matches the instruction word and extracts its operands.
func (cpu *Cpu) Decode(code Code) (inst Instruction, err error) {
	op, ok := cpu.table().Match(uint16(code))
	if !ok {
		err = ErrOpcode(code)
		return
	}

	inst = Instruction{
		Mnemonic: op,
		Operands: slices.Collect(code.Operands(op.Fields())),
	}

	if len(inst.Operands) != op.Fields().Count() {
		err = ErrOpcode(code)
		return
	}

	return
}

// Tick executes a single fetch, decode, execute cycle.
// The returned state is STATE_FAULTED exactly when err is set.
func (cpu *Cpu) Tick() (state State, err error) {
	if cpu.State != STATE_RUNNING {
		return cpu.State, ErrNotRunning
	}

	defer func() {
		if err != nil {
			cpu.State = STATE_FAULTED
		}
		state = cpu.State
	}()

	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	inst, err := cpu.Decode(code)
	if err != nil {
		return
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	return
}

// Execute applies a decoded instruction to the CPU state.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: pc, Instruction: inst, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %v", pc, inst)
	}

	cpu.Ticks++

	args := inst.Operands
	reg := func(n int) int {
		var value int16
		if err == nil {
			value, err = cpu.GetRegister(args[n])
		}
		return int(value)
	}
	set := func(n int, value int) {
		if err == nil {
			err = cpu.SetRegister(args[n], value)
		}
	}

	next := pc + 1

	switch inst.Mnemonic {
	case OP_HALT, OP_DATA:
		cpu.State = STATE_HALTED
		return
	case OP_NOP:
	case OP_READ:
		var value int
		value, err = cpu.receive()
		set(0, value)
	case OP_WRITE:
		value := reg(0)
		if err == nil {
			err = cpu.send(value)
		}
	case OP_JUMPI, OP_JUMP:
		next = args[0]
	case OP_LOADN:
		set(0, args[1])
	case OP_LOAD:
		var value uint16
		value, err = cpu.Load(args[1])
		set(0, int(value))
	case OP_STORE:
		value := reg(0)
		if err == nil {
			err = cpu.Store(args[1], value)
		}
	case OP_LOADI:
		var value uint16
		addr := reg(1)
		if err == nil {
			value, err = cpu.Load(addr)
		}
		set(0, int(value))
	case OP_STOREI:
		value, addr := reg(0), reg(1)
		if err == nil {
			err = cpu.Store(addr, value)
		}
	case OP_POPR:
		var value uint16
		addr := reg(1)
		if err == nil {
			value, err = cpu.Load(addr)
		}
		set(0, int(value))
		set(1, reg(1)-1)
	case OP_PUSHN:
		value, addr := reg(0), reg(1)
		if err == nil {
			err = cpu.Store(addr, value)
		}
		set(1, reg(1)+1)
	case OP_ADDN:
		set(0, reg(0)+args[1])
	case OP_MOV:
		set(0, reg(1))
	case OP_ADD:
		set(0, reg(1)+reg(2))
	case OP_NEG:
		set(0, -reg(1))
	case OP_SUB:
		set(0, reg(1)-reg(2))
	case OP_MUL:
		set(0, reg(1)*reg(2))
	case OP_DIV, OP_MOD:
		x, y := reg(1), reg(2)
		if err == nil && y == 0 {
			err = ErrDivideByZero
		}
		if err == nil {
			quo, rem := floorDivMod(x, y)
			if inst.Mnemonic == OP_DIV {
				set(0, quo)
			} else {
				set(0, rem)
			}
		}
	case OP_CALL:
		set(0, pc)
		next = args[1]
	case OP_JEQZ:
		if reg(0) == 0 {
			next = args[1]
		}
	case OP_JNEZ:
		if reg(0) != 0 {
			next = args[1]
		}
	case OP_JGTZ:
		if reg(0) > 0 {
			next = args[1]
		}
	case OP_JLTZ:
		if reg(0) < 0 {
			next = args[1]
		}
	default:
		err = ErrMnemonicInvalid
	}

	if err != nil {
		return
	}

	cpu.Pc = next

	return
}

func (cpu *Cpu) receive() (value int, err error) {
	if cpu.Input == nil {
		err = errors.Join(ErrInput, ErrChannelMissing)
		return
	}

	value, err = cpu.Input.Receive()
	if err != nil {
		err = errors.Join(ErrInput, err)
	}
	return
}

func (cpu *Cpu) send(value int) (err error) {
	if cpu.Output == nil {
		err = errors.Join(ErrOutput, ErrChannelMissing)
		return
	}

	err = cpu.Output.Send(value)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}
	return
}

// floorDivMod divides rounding toward negative infinity; the remainder
// takes the sign of the divisor.
func floorDivMod(x, y int) (quo, rem int) {
	quo, rem = x/y, x%y
	if rem != 0 && (rem < 0) != (y < 0) {
		quo--
		rem += y
	}
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("%5s: %v\n", "pc", cpu.Pc)
	text += fmt.Sprintf("%5s: %v\n", "state", cpu.State)
	for r := 1; r < REGISTER_COUNT; r++ {
		text += fmt.Sprintf("%5s: %6d (0x%04X)\n", fmt.Sprintf("r%d", r), cpu.Register[r-1], uint16(cpu.Register[r-1]))
	}

	return
}
