package gameboy

import (
	"strings"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy instance. Options are
// applied before the cartridge is inserted.
type Opt func(gb *GameBoy)

// Debug enables the LD B, B breakpoint.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.CPU.Debug = true
	}
}

// SerialDebugger captures the bytes sent over the serial port into
// output. A transfer completes instantly, as if nothing was connected
// to the link port. Once output contains "Passed" or "Failed" the
// breakpoint is hit.
func SerialDebugger(output *string) Opt {
	return func(gb *GameBoy) {
		gb.MMU.HookWrite(types.SC, func(v uint8) {
			if v != 0x81 {
				return
			}
			*output += string(gb.MMU.Get(types.SB))
			gb.MMU.Set(types.SB, 0xFF)
			gb.MMU.Set(types.SC, types.Reset(v, types.Bit7))
			gb.Interrupts.Request(interrupts.Serial)

			if strings.Contains(*output, "Passed") || strings.Contains(*output, "Failed") {
				gb.CPU.DebugBreakpoint = true
			}
		})
	}
}

// WithLogger sets the logger of the machine.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. The registers are
// left zeroed, and execution starts at 0x0000 inside the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithTrace adds fn to the instruction trace hooks.
func WithTrace(fn cpu.TraceFunc) Opt {
	return func(gb *GameBoy) {
		gb.CPU.AddTrace(fn)
	}
}

// WithBusTrace adds fn to the bus trace hooks.
func WithBusTrace(fn mmu.TraceFunc) Opt {
	return func(gb *GameBoy) {
		gb.MMU.AddTrace(fn)
	}
}
