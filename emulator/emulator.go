// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	goio "io"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/ezrec/hmmm/cpu"
	"github.com/ezrec/hmmm/io"
)

// Emulator state. CPU + program + console tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging and tracing.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Tape io.Tape // Console IO channel.

	Trace      goio.Writer // Destination of the verbose trace; nil is os.Stderr.
	DumpOutput goio.Writer // Destination of the fault dump; nil is os.Stdout.

	tracer *pp.PrettyPrinter
}

// NewEmulator creates a new emulator, with the CPU console attached to Tape.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Tape, &emu.Tape)

	return
}

// Load reads a program image and makes it the current program.
func (emu *Emulator) Load(r goio.ReadSeeker) (err error) {
	prog, err := cpu.ReadProgram(r)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded version %d image, %d words", prog.Version, len(prog.Words))
	}

	emu.Program = prog
	return
}

// Reset the CPU and copy the program into memory.
func (emu *Emulator) Reset() (err error) {
	// The emulator traces each instruction itself.
	emu.Cpu.Verbose = false
	emu.Tape.Rewind()

	err = emu.Cpu.Reset(emu.Program.Words)
	if err != nil {
		return
	}

	emu.tracer = nil
	if emu.Verbose {
		trace := emu.traceOutput()
		emu.tracer = pp.New()
		emu.tracer.SetOutput(trace)
		emu.tracer.SetColoringEnabled(isTerminal(trace))
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the decoded instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code, inst cpu.Instruction, err error) {
	code, err = emu.Cpu.Fetch()
	if err != nil {
		return
	}

	inst, err = emu.Cpu.Decode(code)
	return
}

// Tick performs a single instruction of the emulator.
// done is set once the program halts or faults.
func (emu *Emulator) Tick() (done bool, err error) {
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.tracer != nil {
		emu.trace(pc)
	}

	state, err := emu.Cpu.Tick()
	done = state != cpu.STATE_RUNNING

	return
}

// Run ticks the emulator until the program halts. On a fault the full
// machine state is dumped before the fault is returned.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
	}

	if err != nil {
		dumpErr := emu.Cpu.Dump(emu.dumpOutput())
		if dumpErr != nil {
			log.Printf("emulator: dump: %v", dumpErr)
		}
		if emu.tracer != nil {
			emu.traceFault(err)
		}
		return
	}

	if emu.Verbose {
		log.Printf("emulator: halted at pc %d after %d ticks", emu.Cpu.Pc, emu.Ticks())
	}

	return
}

func (emu *Emulator) trace(pc int) {
	out := emu.traceOutput()

	code, inst, err := emu.Code()
	switch {
	case errors.Is(err, cpu.ErrMemoryBounds(0)):
		fmt.Fprintf(out, "%03d: ----\n", pc)
	case err != nil:
		fmt.Fprintf(out, "%03d: %04x ?\n", pc, uint16(code))
	default:
		fmt.Fprintf(out, "%03d: %04x %v\n", pc, uint16(code), inst)
	}
}

// faultReport is the machine state pretty printed after a verbose fault.
type faultReport struct {
	Pc          int
	Instruction string
	Ticks       int
	Registers   []int16
	Errors      []string
}

func (emu *Emulator) traceFault(err error) {
	report := faultReport{
		Pc:        emu.Cpu.Pc,
		Ticks:     emu.Ticks(),
		Registers: emu.Cpu.Register[:],
	}

	var inst *cpu.ErrInstruction
	if errors.As(err, &inst) {
		report.Instruction = inst.Instruction.String()
	}

	for ; err != nil; err = errors.Unwrap(err) {
		report.Errors = append(report.Errors, err.Error())
	}

	emu.tracer.Println(report)
}

func (emu *Emulator) traceOutput() goio.Writer {
	if emu.Trace == nil {
		return os.Stderr
	}
	return emu.Trace
}

func (emu *Emulator) dumpOutput() goio.Writer {
	if emu.DumpOutput == nil {
		return os.Stdout
	}
	return emu.DumpOutput
}

func isTerminal(w goio.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
