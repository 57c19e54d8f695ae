// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the console channels for the HMMM simulator.
// A channel moves whole signed integers: Tape talks to a line oriented
// reader and writer, Temporary is an in-memory FIFO.
package io

// Channel defines the interface for all I/O channels of the simulator.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive blocks until one integer is available.
	Receive() (value int, err error)
	// Send writes a single integer to the channel.
	Send(value int) error
}
