package io

// Temporary implements a bounded FIFO of integers. It is the in-memory
// counterpart of Tape, used to feed and capture a program's console.
type Temporary struct {
	Capacity int // Capacity in values; zero means unbounded.

	Data []int
}

var _ Channel = (*Temporary)(nil)

// Rewind empties the buffer.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Receive pops the oldest value. Returns ErrChannelEmpty when drained.
func (temp *Temporary) Receive() (value int, err error) {
	if len(temp.Data) == 0 {
		err = ErrChannelEmpty
		return
	}

	value = temp.Data[0]
	temp.Data = temp.Data[1:]

	return
}

// Send appends a value to the buffer.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value int) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)

	return
}
