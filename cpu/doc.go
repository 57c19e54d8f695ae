// Package cpu implements the processor of the Harvey Mudd Miniature Machine.
//
// The CPU has a program counter, sixteen 16-bit signed registers (r0 is
// hardwired to zero) and 256 words of memory. Instruction words are matched
// against an ordered encoding table; the first pattern whose masked bits
// match selects the mnemonic, and the operand fields below the opcode nibble
// are decoded by the mnemonic's field codes.
//
// Programs are loaded from a binary image: a version byte, a big-endian
// start offset and word count, then the big-endian words.
package cpu
