// Package ram provides a basic RAM implementation.
package ram

import "github.com/thelolagemann/gbcore/internal/types"

// RAM represents a fixed size block of RAM, addressed by offset from
// the start of the block.
type RAM struct {
	data []byte
}

// NewRAM returns a new zeroed RAM of the given size.
func NewRAM(size uint16) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[offset]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[offset] = value
}

var _ types.Stater = (*RAM)(nil)

// Load implements the types.Stater interface.
func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

// Save implements the types.Stater interface.
func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}
