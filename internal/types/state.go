package types

import (
	"encoding/binary"
	"fmt"
)

// State is an in-memory snapshot of the machine, written and read
// back in the same order by each component. It is used to compare
// and rewind machines within a process; it is not a file format.
type State struct {
	raw          []byte
	readPosition int
}

// Stater is implemented by components whose state is captured by
// a snapshot.
type Stater interface {
	Load(*State)
	Save(*State)
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x4000),
	}
}

// StateFromBytes creates a new state from the given bytes, ready to
// be loaded from the start.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// ResetPosition rewinds the read position, allowing the state
// to be loaded again.
func (s *State) ResetPosition() {
	s.readPosition = 0
}

// Write8 appends a byte.
func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

// Write16 appends a little endian word.
func (s *State) Write16(value uint16) {
	s.raw = binary.LittleEndian.AppendUint16(s.raw, value)
}

// Write64 appends a little endian double word.
func (s *State) Write64(value uint64) {
	s.raw = binary.LittleEndian.AppendUint64(s.raw, value)
}

// WriteBool appends a bool as a single byte.
func (s *State) WriteBool(value bool) {
	var b uint8
	if value {
		b = 1
	}
	s.Write8(b)
}

// WriteData appends data as is. The reader must know its length.
func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// next consumes n bytes. Running past the end means the state was
// saved by a differently shaped machine, which is a programming error.
func (s *State) next(n int) []byte {
	if s.readPosition+n > len(s.raw) {
		panic(fmt.Sprintf("state: read of %d bytes at %d overruns %d byte state", n, s.readPosition, len(s.raw)))
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 { return s.next(1)[0] }

func (s *State) Read16() uint16 { return binary.LittleEndian.Uint16(s.next(2)) }

func (s *State) Read64() uint64 { return binary.LittleEndian.Uint64(s.next(8)) }

func (s *State) ReadBool() bool { return s.Read8() != 0 }

// ReadData fills p.
func (s *State) ReadData(p []byte) {
	copy(p, s.next(len(p)))
}

// Len returns the number of bytes held by the state.
func (s *State) Len() int {
	return len(s.raw)
}

// Bytes returns the raw state data.
func (s *State) Bytes() []byte {
	return s.raw
}
