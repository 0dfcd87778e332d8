package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/types"
)

type snapshotter []byte

func (s snapshotter) Snapshot() *types.State {
	st := types.NewState()
	st.WriteData(s)
	return st
}

func TestOf(t *testing.T) {
	a := Of(snapshotter{0x01, 0x02})
	assert.Len(t, a, 16)
	assert.Equal(t, a, Of(snapshotter{0x01, 0x02}))
	assert.NotEqual(t, a, Of(snapshotter{0x01, 0x03}))
}

func TestExecution(t *testing.T) {
	e := NewExecution()
	empty := e.Hash()

	e.Trace(cpu.Trace{Address: 0x0100, Opcode: 0x00, Cycles: 4})
	first := e.Hash()
	assert.NotEqual(t, empty, first)
	assert.Equal(t, uint64(1), e.Count())

	// order matters
	other := NewExecution()
	other.Trace(cpu.Trace{Address: 0x0101, Opcode: 0x00, Cycles: 4})
	other.Trace(cpu.Trace{Address: 0x0100, Opcode: 0x00, Cycles: 4})
	e.Trace(cpu.Trace{Address: 0x0101, Opcode: 0x00, Cycles: 4})
	assert.NotEqual(t, other.Hash(), e.Hash())
	assert.Equal(t, empty, NewExecution().Hash())
}
