package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/hmmm/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Empty(emu.Program.Words)
}

// doRun builds an image from codes, loads it through the image reader and
// runs it with the given console input.
func doRun(t *testing.T, emu *Emulator, input string, codes ...cpu.Code) (output string, dump string, err error) {
	t.Helper()

	image := &bytes.Buffer{}
	_, err = cpu.MakeProgram(codes...).WriteTo(image)
	require.NoError(t, err)

	require.NoError(t, emu.Load(bytes.NewReader(image.Bytes())))

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output
	dump_output := &bytes.Buffer{}
	emu.DumpOutput = dump_output

	require.NoError(t, emu.Reset())

	err = emu.Run()

	output = tape_output.String()
	dump = dump_output.String()
	return
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	output, dump, err := doRun(t, NewEmulator(), "",
		cpu.MakeCode(cpu.OP_LOADN, 1, 5),
		cpu.MakeCode(cpu.OP_LOADN, 2, 3),
		cpu.MakeCode(cpu.OP_ADD, 1, 1, 2),
		cpu.MakeCode(cpu.OP_WRITE, 1),
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.NoError(err)
	assert.Equal("8\n", output)
	assert.Empty(dump)
}

func TestEmulatorNegative(t *testing.T) {
	assert := assert.New(t)

	output, dump, err := doRun(t, NewEmulator(), "",
		cpu.MakeCode(cpu.OP_LOADN, 1, -1),
		cpu.MakeCode(cpu.OP_WRITE, 1),
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.NoError(err)
	assert.Equal("-1\n", output)
	assert.Empty(dump)
}

func TestEmulatorBranch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value  int
		output string
	}){
		{0, "2\n"},
		{5, "1\n"},
		{-5, "1\n"},
	}

	for _, entry := range table {
		output, _, err := doRun(t, NewEmulator(), "",
			cpu.MakeCode(cpu.OP_LOADN, 1, entry.value),
			cpu.MakeCode(cpu.OP_JEQZ, 1, 5),
			cpu.MakeCode(cpu.OP_LOADN, 2, 1),
			cpu.MakeCode(cpu.OP_WRITE, 2),
			cpu.MakeCode(cpu.OP_HALT),
			cpu.MakeCode(cpu.OP_LOADN, 2, 2), // 5
			cpu.MakeCode(cpu.OP_WRITE, 2),
			cpu.MakeCode(cpu.OP_HALT),
		)
		assert.NoError(err)
		assert.Equal(entry.output, output, "value %v", entry.value)
	}
}

func TestEmulatorVersion(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := emu.Program

	image := []byte{2, 0x00, 0x05, 0x00, 0x01, 0x00, 0x00}
	err := emu.Load(bytes.NewReader(image))
	assert.ErrorIs(err, cpu.ErrImageVersion(0))

	assert.Same(prog, emu.Program)
	assert.Equal(0, emu.Ticks())
}

func TestEmulatorReadLoop(t *testing.T) {
	assert := assert.New(t)

	// Sum the input until a zero is read.
	output, dump, err := doRun(t, NewEmulator(), "3\n4\n-10\n0\n",
		cpu.MakeCode(cpu.OP_READ, 1),
		cpu.MakeCode(cpu.OP_JEQZ, 1, 4),
		cpu.MakeCode(cpu.OP_ADD, 2, 2, 1),
		cpu.MakeCode(cpu.OP_JUMP, 0),
		cpu.MakeCode(cpu.OP_WRITE, 2), // 4
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.NoError(err)
	assert.Equal("-3\n", output)
	assert.Empty(dump)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output, dump, err := doRun(t, emu, "",
		cpu.MakeCode(cpu.OP_LOADN, 1, 6),
		cpu.MakeCode(cpu.OP_WRITE, 1),
		cpu.MakeCode(cpu.OP_DIV, 3, 1, 0),
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.Equal("6\n", output)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(2, runtime.Pc)

	assert.Equal(cpu.STATE_FAULTED, emu.Cpu.State)
	assert.True(strings.HasPrefix(dump, "pc: 2\n"), dump)
	assert.Contains(dump, "1106 0102 9310 0000 ")

	done, err := emu.Tick()
	assert.True(done)
	assert.ErrorIs(err, cpu.ErrNotRunning)
}

func TestEmulatorInputFault(t *testing.T) {
	assert := assert.New(t)

	output, dump, err := doRun(t, NewEmulator(), "12\nseven\n",
		cpu.MakeCode(cpu.OP_READ, 1),
		cpu.MakeCode(cpu.OP_WRITE, 1),
		cpu.MakeCode(cpu.OP_READ, 1),
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.ErrorIs(err, cpu.ErrInput)
	assert.ErrorContains(err, "seven")
	assert.Equal("12\n", output)
	assert.Contains(dump, "pc: 2\n")
	assert.Contains(dump, "    12      0")
}

func TestEmulatorTooLarge(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = &cpu.Program{Words: make([]uint16, cpu.MEMORY_SIZE+1)}

	assert.ErrorIs(emu.Reset(), cpu.ErrProgramTooLarge)
}

func TestEmulatorVerbose(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Verbose = true
	trace := &bytes.Buffer{}
	emu.Trace = trace

	output, _, err := doRun(t, emu, "",
		cpu.MakeCode(cpu.OP_LOADN, 1, 2),
		cpu.MakeCode(cpu.OP_MUL, 1, 1, 1),
		cpu.MakeCode(cpu.OP_WRITE, 1),
		cpu.MakeCode(cpu.OP_HALT),
	)
	assert.NoError(err)
	assert.Equal("4\n", output)
	assert.Equal(4, emu.Ticks())

	text := trace.String()
	assert.Contains(text, "loadn")
	assert.Contains(text, "mul")
	assert.Contains(text, "halt")
	assert.Equal(4, strings.Count(text, "\n"))
}

func TestEmulatorVerboseFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Verbose = true
	trace := &bytes.Buffer{}
	emu.Trace = trace

	_, dump, err := doRun(t, emu, "",
		cpu.MakeCode(cpu.OP_LOADN, 1, 1),
		cpu.MakeCode(cpu.OP_MOD, 1, 1, 0),
	)
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.Contains(dump, "pc: 1\n")

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	assert.Greater(len(lines), 2)
	assert.Equal("000: 1101 loadn r1 1", lines[0])
	assert.Equal("001: a110 mod r1 r1 r0", lines[1])

	report := strings.Join(lines[2:], "\n")
	assert.Contains(report, "Instruction")
	assert.Contains(report, "mod r1 r1 r0")
	assert.Contains(report, "Registers")
	assert.Contains(report, "divide by zero")
}

func TestEmulatorVerboseCpu(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Verbose = true
	emu.Trace = &bytes.Buffer{}

	_, _, err := doRun(t, emu, "", cpu.MakeCode(cpu.OP_HALT))
	assert.NoError(err)
	assert.False(emu.Cpu.Verbose)
}

func TestEmulatorCode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = cpu.MakeProgram(
		cpu.MakeCode(cpu.OP_ADD, 1, 2, 3),
	)
	require.NoError(t, emu.Reset())

	code, inst, err := emu.Code()
	assert.NoError(err)
	assert.Equal(cpu.Code(0x6123), code)
	assert.Equal("add r1 r2 r3", inst.String())

	emu.Cpu.Pc = cpu.MEMORY_SIZE
	_, _, err = emu.Code()
	assert.ErrorIs(err, cpu.ErrMemoryBounds(0))
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{Pc: 1000, Err: cpu.ErrDivideByZero}
	assert.Equal("pc 1000: divide by zero", err.Error())
	assert.ErrorIs(err, cpu.ErrDivideByZero)
}
