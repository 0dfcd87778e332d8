package gameboy

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/digest"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// newROM returns a 32kB rom which jumps from the entry point to
// program at 0x0150.
func newROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []uint8{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0134:], "GBCORE")
	copy(rom[0x0150:], program)
	return rom
}

// newGameBoy returns a machine which has stepped to the start of
// program.
func newGameBoy(t *testing.T, program []uint8, opts ...Opt) *GameBoy {
	t.Helper()
	g, err := NewGameBoy(newROM(program...), opts...)
	require.NoError(t, err)
	require.NoError(t, g.RunUntil(0x0150, 2))
	return g
}

// serialProgram prints s through the serial port, then loops.
func serialProgram(s string) []uint8 {
	var program []uint8
	for _, c := range []byte(s) {
		program = append(program,
			0x3E, c, // LD A, c
			0xE0, 0x01, // LDH (SB), A
			0x3E, 0x81, // LD A, 0x81
			0xE0, 0x02, // LDH (SC), A
		)
	}
	return append(program, 0x18, 0xFE) // JR -2
}

func TestNewGameBoy_PostBootState(t *testing.T) {
	g, err := NewGameBoy(newROM())
	require.NoError(t, err)

	assert.Equal(t, uint16(0x01B0), g.CPU.AF.Uint16())
	assert.Equal(t, uint16(0x0013), g.CPU.BC.Uint16())
	assert.Equal(t, uint16(0x00D8), g.CPU.DE.Uint16())
	assert.Equal(t, uint16(0x014D), g.CPU.HL.Uint16())
	assert.Equal(t, uint16(0xFFFE), g.CPU.SP)
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
	assert.False(t, g.MMU.BootROMMapped())
	assert.Equal(t, "GBCORE", g.Cartridge.Title())
}

func TestGameBoy_NOP(t *testing.T) {
	g := newGameBoy(t, []uint8{0x00})
	before := g.CPU.Registers

	cycles, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), cycles)

	before.PC = 0x0151
	assert.Equal(t, before, g.CPU.Registers)
}

func TestGameBoy_RaiseInterrupt(t *testing.T) {
	// EI; NOP; NOP
	g := newGameBoy(t, []uint8{0xFB, 0x00, 0x00})
	g.MMU.Write(types.IE, 0x01)

	require.NoError(t, g.RunSteps(2))
	require.Equal(t, uint16(0x0152), g.CPU.PC)

	g.RaiseInterrupt(0)
	cycles, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(20), cycles)
	assert.Equal(t, uint16(0x0040), g.CPU.PC)
	assert.Equal(t, uint16(0xFFFC), g.CPU.SP)
	assert.Equal(t, uint8(0x01), g.MMU.Read(0xFFFD))
	assert.Equal(t, uint8(0x52), g.MMU.Read(0xFFFC))
	assert.False(t, g.Interrupts.IME)
	assert.Zero(t, g.MMU.Read(types.IF)&0x01)
}

func TestGameBoy_RaiseInterrupt_IgnoresHighBits(t *testing.T) {
	g := newGameBoy(t, nil)
	for bit := uint8(5); bit < 8; bit++ {
		g.RaiseInterrupt(bit)
	}
	assert.Equal(t, uint8(0x00), g.MMU.Read(types.IF))

	g.RaiseInterrupt(4)
	assert.Equal(t, uint8(0x10), g.MMU.Read(types.IF))
}

func TestGameBoy_IllegalOpcode(t *testing.T) {
	g := newGameBoy(t, []uint8{0xDD})

	_, err := g.Step()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIllegalOpcode))
	assert.True(t, g.Stopped())

	var e *types.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, uint8(0xDD), e.Opcode)
	assert.Equal(t, uint16(0x0150), e.Address)

	// the machine stays stopped
	_, again := g.Step()
	assert.Equal(t, err, again)
	assert.Equal(t, uint16(0x0150), g.CPU.PC)
}

func TestGameBoy_SerialDebugger(t *testing.T) {
	var output string
	g := newGameBoy(t, serialProgram("Passed"), SerialDebugger(&output))

	require.NoError(t, g.Run(CyclesPerFrame))
	assert.True(t, g.Breakpoint())
	assert.Equal(t, "Passed", output)
	assert.Equal(t, uint8(0x01), g.MMU.Read(types.SC))
	assert.Equal(t, uint8(0x08), g.MMU.Read(types.IF)&0x08)
}

func TestGameBoy_DebugBreakpoint(t *testing.T) {
	// NOP; NOP; LD B, B; JR -2
	program := []uint8{0x00, 0x00, 0x40, 0x18, 0xFE}

	g := newGameBoy(t, program, Debug())
	require.NoError(t, g.Run(CyclesPerFrame))
	assert.True(t, g.Breakpoint())
	assert.Equal(t, uint16(0x0153), g.CPU.PC)

	g = newGameBoy(t, program)
	require.NoError(t, g.Run(CyclesPerFrame))
	assert.False(t, g.Breakpoint())
	assert.GreaterOrEqual(t, g.Cycles(), uint64(CyclesPerFrame))
}

func TestGameBoy_BootROM(t *testing.T) {
	// the boot rom unmaps itself from its last two bytes, and
	// execution falls through to the cartridge entry point
	bootROM := make([]byte, boot.Size)
	copy(bootROM, []uint8{0xC3, 0xFC, 0x00}) // JP 0x00FC
	copy(bootROM[0xFC:], []uint8{
		0x3E, 0x01, // LD A, 0x01
		0xE0, 0x50, // LDH (BDIS), A
	})

	var buf bytes.Buffer
	l, err := log.NewWithLevel(&buf, "debug")
	require.NoError(t, err)

	g, err := NewGameBoy(newROM(0x00), WithBootROM(bootROM), WithLogger(l))
	require.NoError(t, err)
	assert.Equal(t, cpu.Registers{}, g.CPU.Registers)
	assert.True(t, g.MMU.BootROMMapped())
	assert.Equal(t, uint8(0xC3), g.MMU.Read(0x0000))

	require.NoError(t, g.RunUntil(0x00FE, 2))
	assert.True(t, g.MMU.BootROMMapped())
	require.NoError(t, g.RunSteps(1))
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
	assert.False(t, g.MMU.BootROMMapped())

	require.NoError(t, g.RunUntil(0x0150, 2))
	assert.False(t, g.MMU.BootROMMapped())
	assert.Equal(t, uint8(0x00), g.MMU.Read(0x0000))
	assert.Contains(t, buf.String(), "boot rom unmapped")
	assert.Contains(t, buf.String(), "boot: unknown")
}

func TestNewGameBoy_Errors(t *testing.T) {
	_, err := NewGameBoy(newROM(), WithBootROM(make([]byte, 0x80)))
	assert.Error(t, err)

	_, err = NewGameBoy(make([]byte, 0x100))
	assert.Error(t, err)

	big := make([]byte, 0x10000)
	copy(big, newROM())
	big[0x147] = 0x01
	_, err = NewGameBoy(big)
	assert.Error(t, err)
}

func TestGameBoy_SnapshotRestore(t *testing.T) {
	// LD HL, 0xC000; INC (HL); INC HL; JR -4
	g := newGameBoy(t, []uint8{0x21, 0x00, 0xC0, 0x34, 0x23, 0x18, 0xFC})
	require.NoError(t, g.RunSteps(100))

	st := g.Snapshot()
	registers := g.CPU.Registers
	wram := g.MMU.Read(0xC010)

	require.NoError(t, g.RunSteps(100))
	require.NotEqual(t, registers, g.CPU.Registers)

	g.Restore(st)
	assert.Equal(t, registers, g.CPU.Registers)
	assert.Equal(t, wram, g.MMU.Read(0xC010))

	// restoring is repeatable
	g.Restore(st)
	assert.Equal(t, registers, g.CPU.Registers)
}

func TestGameBoy_RestoreStopped(t *testing.T) {
	// NOP; NOP; ILLEGAL
	g := newGameBoy(t, []uint8{0x00, 0x00, 0xD3})
	require.NoError(t, g.RunSteps(1))
	st := g.Snapshot()
	cycles := g.Cycles()

	require.NoError(t, g.RunSteps(1))
	_, err := g.Step()
	require.Error(t, err)
	require.True(t, g.Stopped())
	require.Greater(t, g.Cycles(), cycles)

	g.Restore(st)
	assert.False(t, g.Stopped())
	assert.NoError(t, g.Err())
	assert.Equal(t, cycles, g.Cycles())
	assert.Equal(t, uint16(0x0151), g.CPU.PC)

	_, err = g.Step()
	assert.NoError(t, err)
	assert.Equal(t, cycles+4, g.Cycles())
}

func TestGameBoy_Trace(t *testing.T) {
	var names []string
	g := newGameBoy(t, []uint8{0x3E, 0x01, 0x3C}, WithTrace(func(tr cpu.Trace) {
		names = append(names, tr.Name)
	}))
	require.NoError(t, g.RunSteps(2))
	assert.Equal(t, []string{"NOP", "JP a16", "LD A, d8", "INC A"}, names)
}

func TestGameBoy_RunUntil(t *testing.T) {
	g := newGameBoy(t, []uint8{0x18, 0xFE})
	assert.Error(t, g.RunUntil(0x0200, 10))
	assert.False(t, g.Stopped())
}

func TestGameBoy_Deterministic(t *testing.T) {
	// LD HL, 0xC000; INC (HL); INC HL; JR -4
	program := []uint8{0x21, 0x00, 0xC0, 0x34, 0x23, 0x18, 0xFC}

	run := func() (*GameBoy, *digest.Execution) {
		exec := digest.NewExecution()
		g := newGameBoy(t, program, WithTrace(exec.Trace))
		require.NoError(t, g.Run(CyclesPerFrame))
		return g, exec
	}
	a, execA := run()
	b, execB := run()

	assert.Equal(t, digest.Of(a), digest.Of(b))
	assert.Equal(t, execA.Hash(), execB.Hash())
	assert.Equal(t, execA.Count(), execB.Count())

	require.NoError(t, b.RunSteps(1))
	assert.NotEqual(t, digest.Of(a), digest.Of(b))
}
