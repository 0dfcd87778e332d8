// Package digest produces hashes of the machine that can be compared
// between runs. If a new hash differs from a previously recorded value
// then something has changed in the emulation. This is the basis for
// the determinism tests and for the digest printed by the CLI.
package digest

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Snapshotter is implemented by machines that can capture their
// state.
type Snapshotter interface {
	Snapshot() *types.State
}

// Of returns the digest of the current state of s.
func Of(s Snapshotter) string {
	return State(s.Snapshot())
}

// State returns the digest of st.
func State(st *types.State) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(st.Bytes()))
}

// Execution chains every executed instruction, and the registers it
// left behind, into a running hash. Install Trace as the instruction
// trace hook of a machine.
type Execution struct {
	h     hash.Hash64
	buf   [14]byte
	count uint64
}

// NewExecution returns an empty Execution digest.
func NewExecution() *Execution {
	return &Execution{h: xxhash.New()}
}

// Trace adds an executed instruction to the digest.
func (e *Execution) Trace(t cpu.Trace) {
	binary.LittleEndian.PutUint16(e.buf[0:], t.Address)
	binary.LittleEndian.PutUint16(e.buf[2:], t.AF.Uint16())
	binary.LittleEndian.PutUint16(e.buf[4:], t.BC.Uint16())
	binary.LittleEndian.PutUint16(e.buf[6:], t.DE.Uint16())
	binary.LittleEndian.PutUint16(e.buf[8:], t.HL.Uint16())
	binary.LittleEndian.PutUint16(e.buf[10:], t.SP)
	e.buf[12] = t.Opcode
	e.buf[13] = t.Cycles
	e.h.Write(e.buf[:])
	e.count++
}

// Count returns the number of instructions in the digest.
func (e *Execution) Count() uint64 {
	return e.count
}

// Hash returns the digest of every instruction traced so far.
func (e *Execution) Hash() string {
	return fmt.Sprintf("%016x", e.h.Sum64())
}
