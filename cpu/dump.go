package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DUMP_ROW is the number of memory words per dump line.
const DUMP_ROW = 16

// Dump renders the program counter, the general registers and all of
// memory to w. The layout is fixed so dumps can be compared as text.
func (cpu *Cpu) Dump(w io.Writer) (err error) {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "pc: %d\n", cpu.Pc)

	names := make([]string, 0, len(cpu.Register))
	values := make([]string, 0, len(cpu.Register))
	for n, value := range cpu.Register {
		names = append(names, fmt.Sprintf("%6s", fmt.Sprintf("r%d", n+1)))
		values = append(values, fmt.Sprintf("%6d", value))
	}
	fmt.Fprintln(out, strings.Join(names, " "))
	fmt.Fprintln(out, strings.Join(values, " "))

	for addr, word := range cpu.Memory {
		fmt.Fprintf(out, "%04x ", word)
		if addr%DUMP_ROW == DUMP_ROW-1 {
			fmt.Fprintln(out)
		}
	}

	return out.Flush()
}
