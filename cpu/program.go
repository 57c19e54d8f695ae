package cpu

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
)

const (
	IMAGE_VERSION = 1 // Newest image version understood.
	IMAGE_HEADER  = 5 // Version byte, start and length.
)

// Program is a loaded program image.
type Program struct {
	Version byte
	Words   []uint16
}

// ReadProgram reads a program image.
//
// The image is a version byte (0 or 1), a big-endian start offset and word
// count, and then, at the start offset, the big-endian program words.
func ReadProgram(r io.ReadSeeker) (prog *Program, err error) {
	var version byte
	err = binary.Read(r, binary.BigEndian, &version)
	if err != nil {
		err = imageError(err)
		return
	}

	if version > IMAGE_VERSION {
		err = ErrImageVersion(version)
		return
	}

	var header struct {
		Start  uint16
		Length uint16
	}
	err = binary.Read(r, binary.BigEndian, &header)
	if err != nil {
		err = imageError(err)
		return
	}

	_, err = r.Seek(int64(header.Start), io.SeekStart)
	if err != nil {
		return
	}

	words := make([]uint16, header.Length)
	err = binary.Read(r, binary.BigEndian, words)
	if err != nil {
		err = imageError(err)
		return
	}

	prog = &Program{
		Version: version,
		Words:   words,
	}

	return
}

func imageError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Join(ErrImageTruncated, err)
	}
	return err
}

// WriteTo writes the program as a version 1 image, words immediately
// after the header.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	if len(prog.Words) > 0xffff {
		err = ErrProgramTooLarge
		return
	}

	buf := make([]byte, IMAGE_HEADER, IMAGE_HEADER+2*len(prog.Words))
	buf[0] = IMAGE_VERSION
	binary.BigEndian.PutUint16(buf[1:], IMAGE_HEADER)
	binary.BigEndian.PutUint16(buf[3:], uint16(len(prog.Words)))
	for _, word := range prog.Words {
		buf = binary.BigEndian.AppendUint16(buf, word)
	}

	written, err := w.Write(buf)
	n = int64(written)

	return
}

// Codes returns each address and instruction word of the program.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for addr, word := range prog.Words {
			if !yield(addr, Code(word)) {
				return
			}
		}
	}
}

// MakeProgram builds a program from instruction codes.
func MakeProgram(codes ...Code) (prog *Program) {
	prog = &Program{Version: IMAGE_VERSION}
	for _, code := range codes {
		prog.Words = append(prog.Words, uint16(code))
	}

	return
}
