// Package gameboy provides the top-level machine: the CPU, the memory
// bus and the interrupt controller wired to a cartridge, stepped one
// instruction at a time.
package gameboy

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224
)

// GameBoy represents a Game Boy. It contains all the components of
// the core, and is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Controller
	Cartridge  *cartridge.Cartridge
	BootROM    *boot.ROM

	log.Logger

	bootROM []byte // raw boot rom, validated once the machine is wired
	cycles  uint64
	err     error
}

// NewGameBoy returns a new GameBoy running rom. Without a boot ROM the
// machine starts in the state the DMG boot ROM hands over to the
// cartridge in.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	memBus := mmu.NewMMU(nil)
	interrupt := interrupts.NewController(memBus)

	g := &GameBoy{
		CPU:        cpu.NewCPU(memBus, interrupt),
		MMU:        memBus,
		Interrupts: interrupt,
		Logger:     log.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.NewCartridge(rom, g.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "gameboy")
	}
	g.Cartridge = cart
	g.MMU.Cart = cart
	g.MMU.Log = g.Logger
	header := cart.Header()
	g.Infof("cartridge: %s", header.String())
	if !header.ChecksumValid() {
		g.Warnf("cartridge: header checksum mismatch")
	}

	if g.bootROM != nil {
		bootROM, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return nil, errors.Wrap(err, "gameboy")
		}
		g.BootROM = bootROM
		g.MMU.SetBootROM(bootROM)
		g.Infof("boot: %s (%s)", bootROM.Model(), bootROM.Checksum())
	} else {
		g.skipBoot()
	}

	return g, nil
}

// skipBoot sets the registers to the values the DMG boot ROM leaves
// them in upon completion.
func (g *GameBoy) skipBoot() {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100
}

// Step performs a single step of the machine, returning the number
// of T-states it took. Once a step has failed, the machine is
// stopped and every further step returns the same error.
func (g *GameBoy) Step() (cycles uint8, err error) {
	if g.err != nil {
		return 0, g.err
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*types.Error)
			if !ok {
				panic(r)
			}
			cycles, err = 0, g.stop(e)
		}
	}()

	cycles, err = g.CPU.Step()
	if err != nil {
		return 0, g.stop(err)
	}
	g.cycles += uint64(cycles)
	return cycles, nil
}

func (g *GameBoy) stop(err error) error {
	g.err = errors.Wrapf(err, "gameboy: stopped after %d cycles", g.cycles)
	g.Errorf("%v", g.err)
	return g.err
}

// Run steps the machine until at least n cycles have passed, a
// breakpoint is hit or a step fails.
func (g *GameBoy) Run(n uint64) error {
	target := g.cycles + n
	for g.cycles < target && !g.CPU.DebugBreakpoint {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunSteps performs n steps, stopping early on a breakpoint or a
// failed step.
func (g *GameBoy) RunSteps(n int) error {
	for i := 0; i < n && !g.CPU.DebugBreakpoint; i++ {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil steps the machine until PC reaches pc, giving up with an
// error after max steps.
func (g *GameBoy) RunUntil(pc uint16, max int) error {
	for i := 0; i < max; i++ {
		if g.CPU.PC == pc {
			return nil
		}
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	if g.CPU.PC == pc {
		return nil
	}
	return errors.Errorf("gameboy: PC 0x%04X not reached after %d steps", pc, max)
}

// RaiseInterrupt requests the interrupt with the given bit (0-4).
// Higher bits are ignored.
func (g *GameBoy) RaiseInterrupt(bit uint8) {
	g.Interrupts.Request(interrupts.Interrupt(bit))
}

// Breakpoint returns true once a breakpoint has been hit, either by
// LD B, B with Debug enabled or by a serial verdict.
func (g *GameBoy) Breakpoint() bool {
	return g.CPU.DebugBreakpoint
}

// Cycles returns the number of T-states executed so far.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Stopped returns true once a step has failed.
func (g *GameBoy) Stopped() bool {
	return g.err != nil
}

// Err returns the error that stopped the machine, if any.
func (g *GameBoy) Err() error {
	return g.err
}

// Snapshot captures the state of the machine in memory, including
// the number of cycles executed so far.
func (g *GameBoy) Snapshot() *types.State {
	st := types.NewState()
	g.CPU.Save(st)
	g.MMU.Save(st)
	st.Write64(g.cycles)
	return st
}

// Restore loads a state captured by Snapshot of a machine running
// the same cartridge. A machine stopped by an error runs again from
// the restored state.
func (g *GameBoy) Restore(st *types.State) {
	st.ResetPosition()
	g.CPU.Load(st)
	g.MMU.Load(st)
	g.cycles = st.Read64()
	g.err = nil
}
