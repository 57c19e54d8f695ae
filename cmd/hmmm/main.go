// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ezrec/hmmm/emulator"
)

// programPath resolves the image path, falling back to the '.b' suffix
// the assembler writes.
func programPath(path string) string {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		alt := path + ".b"
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return path
}

func run(emu *emulator.Emulator, path, input, output string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf)
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			return err
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			return err
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}

	return emu.Run()
}

func main() {
	var input string
	var output string
	var verbose bool

	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one program image, got %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err := run(emu, programPath(flag.Arg(0)), input, output)
	if err != nil {
		log.Fatal(err)
	}
}
