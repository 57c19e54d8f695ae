package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu_Dump(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil, nil)
	assert.NoError(cpu.Reset([]uint16{0x1105}))
	cpu.Pc = 3
	assert.NoError(cpu.SetRegister(1, 8))
	assert.NoError(cpu.SetRegister(15, -1))
	cpu.Memory[255] = 0xbeef

	var buf bytes.Buffer
	assert.NoError(cpu.Dump(&buf))

	lines := strings.Split(buf.String(), "\n")
	assert.Len(lines, 3+MEMORY_SIZE/DUMP_ROW+1)
	assert.Equal("", lines[len(lines)-1])

	assert.Equal("pc: 3", lines[0])
	assert.Equal("    r1     r2     r3     r4     r5     r6     r7     r8     r9    r10    r11    r12    r13    r14    r15", lines[1])
	assert.Equal("     8"+strings.Repeat("      0", 13)+"     -1", lines[2])

	assert.Equal("1105 "+strings.Repeat("0000 ", 15), lines[3])
	for _, line := range lines[4:18] {
		assert.Equal(strings.Repeat("0000 ", 16), line)
	}
	assert.Equal(strings.Repeat("0000 ", 15)+"beef ", lines[18])
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil, nil)
	assert.NoError(cpu.SetRegister(2, -3))

	text := cpu.String()
	assert.Contains(text, "   pc: 0\n")
	assert.Contains(text, "state: running\n")
	assert.Contains(text, "   r2:     -3 (0xFFFD)\n")
}
