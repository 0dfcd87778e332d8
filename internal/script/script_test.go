package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/gameboy"
)

// newGameBoy returns a machine running program from 0x0150.
func newGameBoy(t *testing.T, program []uint8, opts ...gameboy.Opt) *gameboy.GameBoy {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []uint8{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0150:], program)

	gb, err := gameboy.NewGameBoy(rom, opts...)
	require.NoError(t, err)
	return gb
}

func TestRun_Registers(t *testing.T) {
	// LD A, 0x42; INC A
	gb := newGameBoy(t, []uint8{0x3E, 0x42, 0x3C})

	err := Run(gb, nil, `
		run_until(0x0150, 10)
		assert(step() == 8)
		assert(reg("a") == 0x42)
		assert(step() == 4)
		assert(reg("A") == 0x43)
		assert(reg("PC") == 0x0153)

		set_reg("HL", 0x1234)
		assert(reg("H") == 0x12 and reg("L") == 0x34)
		set_reg("F", 0xFF)
		assert(reg("F") == 0xF0)
	`)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), gb.CPU.HL.Uint16())
}

func TestRun_Memory(t *testing.T) {
	gb := newGameBoy(t, nil)

	require.NoError(t, Run(gb, nil, `
		write(0xC010, 0x99)
		assert(read(0xE010) == 0x99)
		write(0xFEA0, 0x12)
		assert(read(0xFEA0) == 0)
	`))
	assert.Equal(t, uint8(0x99), gb.MMU.Read(0xC010))
}

func TestRun_Interrupt(t *testing.T) {
	// EI; NOP; NOP
	gb := newGameBoy(t, []uint8{0xFB, 0x00, 0x00})

	require.NoError(t, Run(gb, nil, `
		run_until(0x0150, 10)
		write(0xFFFF, 0x01)
		step(2)
		interrupt(0)
		assert(step() == 20)
		assert(reg("PC") == 0x40)
		assert(cycles() > 0)
	`))
}

func TestRun_Serial(t *testing.T) {
	var out string
	// LD A, 'P'; LDH (SB), A; LD A, 0x81; LDH (SC), A; JR -2
	gb := newGameBoy(t, []uint8{0x3E, 'P', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02, 0x18, 0xFE}, gameboy.SerialDebugger(&out))

	require.NoError(t, Run(gb, &out, `
		run_until(0x0158, 100)
		assert(serial() == "P")
		assert(#digest() == 16)
	`))
	assert.Equal(t, "P", out)
}

func TestRun_Errors(t *testing.T) {
	t.Run("illegal opcode", func(t *testing.T) {
		gb := newGameBoy(t, []uint8{0xD3})
		err := Run(gb, nil, `step(3)`)
		assert.Error(t, err)
		assert.True(t, gb.Stopped())
	})
	t.Run("unknown register", func(t *testing.T) {
		gb := newGameBoy(t, nil)
		assert.Error(t, Run(gb, nil, `reg("X")`))
	})
	t.Run("value out of range", func(t *testing.T) {
		gb := newGameBoy(t, nil)
		assert.Error(t, Run(gb, nil, `write(0xC000, 0x100)`))
	})
	t.Run("syntax", func(t *testing.T) {
		gb := newGameBoy(t, nil)
		assert.Error(t, Run(gb, nil, `step(`))
	})
	t.Run("pc not reached", func(t *testing.T) {
		// JR -2
		gb := newGameBoy(t, []uint8{0x18, 0xFE})
		assert.Error(t, Run(gb, nil, `run_until(0x4000, 50)`))
	})
}
