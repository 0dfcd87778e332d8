// Package script drives a machine from a Lua chunk, for test ROM
// automation.
//
// The following globals are available to a script:
//
//	step([n])             execute n instructions (default 1), returns the cycles used
//	run_until(pc, [max])  execute until PC == pc, at most max instructions
//	read(addr)            read a byte from the bus
//	write(addr, value)    write a byte to the bus
//	reg(name)             read a register by name ("A", "HL", "PC"...)
//	set_reg(name, value)  write a register by name
//	interrupt(bit)        raise an interrupt
//	digest()              digest of the machine state
//	serial()              bytes sent over the serial port so far
//	cycles()              cycles executed so far
package script

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/digest"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	lua "github.com/yuin/gopher-lua"
)

// defaultRunUntil bounds run_until when no limit is given.
const defaultRunUntil = 1 << 24

// Harness exposes a machine to Lua.
type Harness struct {
	gb     *gameboy.GameBoy
	serial *string
	state  *lua.LState
}

// NewHarness returns a Harness for gb. serial, which may be nil, is
// the buffer filled by gameboy.SerialDebugger.
func NewHarness(gb *gameboy.GameBoy, serial *string) *Harness {
	h := &Harness{
		gb:     gb,
		serial: serial,
		state:  lua.NewState(),
	}

	for name, fn := range map[string]lua.LGFunction{
		"step":      h.step,
		"run_until": h.runUntil,
		"read":      h.read,
		"write":     h.write,
		"reg":       h.reg,
		"set_reg":   h.setReg,
		"interrupt": h.interrupt,
		"digest":    h.digest,
		"serial":    h.serialOutput,
		"cycles":    h.cycles,
	} {
		h.state.SetGlobal(name, h.state.NewFunction(fn))
	}

	return h
}

// Close releases the Lua state.
func (h *Harness) Close() {
	h.state.Close()
}

// DoString executes source.
func (h *Harness) DoString(source string) error {
	if err := h.state.DoString(source); err != nil {
		return errors.Wrap(err, "script")
	}
	return nil
}

// DoFile executes the script at path.
func (h *Harness) DoFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return errors.Wrapf(err, "script: %s", path)
	}
	return nil
}

// Run executes source against gb in a fresh Harness.
func Run(gb *gameboy.GameBoy, serial *string, source string) error {
	h := NewHarness(gb, serial)
	defer h.Close()

	return h.DoString(source)
}

func (h *Harness) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	var total int
	for i := 0; i < n; i++ {
		cycles, err := h.gb.Step()
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		total += int(cycles)
	}
	L.Push(lua.LNumber(total))
	return 1
}

func (h *Harness) runUntil(L *lua.LState) int {
	pc := checkUint16(L, 1)
	max := L.OptInt(2, defaultRunUntil)
	if err := h.gb.RunUntil(pc, max); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Harness) read(L *lua.LState) int {
	L.Push(lua.LNumber(h.gb.MMU.Read(checkUint16(L, 1))))
	return 1
}

func (h *Harness) write(L *lua.LState) int {
	h.gb.MMU.Write(checkUint16(L, 1), checkUint8(L, 2))
	return 0
}

func (h *Harness) reg(L *lua.LState) int {
	name, err := cpu.ParseName(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	var value uint16
	if name.Is8() {
		var v uint8
		v, err = h.gb.CPU.Get8(name)
		value = uint16(v)
	} else {
		value, err = h.gb.CPU.Get16(name)
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(value))
	return 1
}

func (h *Harness) setReg(L *lua.LState) int {
	name, err := cpu.ParseName(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	if name.Is8() {
		err = h.gb.CPU.Set8(name, checkUint8(L, 2))
	} else {
		err = h.gb.CPU.Set16(name, checkUint16(L, 2))
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Harness) interrupt(L *lua.LState) int {
	h.gb.RaiseInterrupt(checkUint8(L, 1))
	return 0
}

func (h *Harness) digest(L *lua.LState) int {
	L.Push(lua.LString(digest.Of(h.gb)))
	return 1
}

func (h *Harness) serialOutput(L *lua.LState) int {
	if h.serial == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(*h.serial))
	return 1
}

func (h *Harness) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(h.gb.Cycles()))
	return 1
}

func checkUint8(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFF {
		L.ArgError(n, "value out of range")
	}
	return uint8(v)
}

func checkUint16(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFFFF {
		L.ArgError(n, "address out of range")
	}
	return uint16(v)
}
