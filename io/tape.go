package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides line oriented integer I/O. Each Receive consumes one line
// of Input; each Send writes one decimal line to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind drops any buffered input; a tape cannot seek back.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.source = nil
}

// Receive reads the next line of input and parses it as a base 10 integer.
// io.EOF is returned only when no characters remain.
func (tc *Tape) Receive() (value int, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	line, err := tc.reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return
	}

	text := strings.TrimSpace(line)
	value, err = strconv.Atoi(text)
	if err != nil {
		err = ErrNotNumber(text)
		return
	}

	return
}

// Send writes value as a decimal line.
func (tc *Tape) Send(value int) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = fmt.Fprintln(tc.Output, value)

	return
}
