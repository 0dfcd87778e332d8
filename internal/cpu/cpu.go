package cpu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-states per second.
	ClockSpeed = 4194304

	// interruptCycles is the cost of dispatching an interrupt.
	interruptCycles = 20
	// idleCycles is the cost of a step spent halted or stopped.
	idleCycles = 4
)

type mode = uint8

const (
	// ModeNormal is the normal mode of the CPU, fetching and
	// executing instructions.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, the CPU idles until an
	// interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP. It is left the same way as
	// ModeHalt.
	ModeStop
)

// Bus is the memory the CPU fetches instructions and operands from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Trace describes an executed instruction.
type Trace struct {
	Address  uint16 // address the opcode was fetched from
	Opcode   uint8
	Prefixed bool // Opcode is from the CB prefixed set
	Name     string
	Cycles   uint8

	// Bytes holds the first Length bytes fetched by the instruction,
	// as they were read before it executed.
	Bytes  [3]uint8
	Length uint8

	// Registers holds the register file after execution.
	Registers
}

// TraceFunc is called after each executed instruction.
type TraceFunc func(Trace)

// CPU represents the SM83 CPU of the Game Boy.
type CPU struct {
	Registers

	// Debug enables the LD B, B software breakpoint.
	Debug bool
	// DebugBreakpoint is set when LD B, B is executed with
	// Debug enabled, and left for the caller to clear.
	DebugBreakpoint bool

	bus    Bus
	irq    *interrupts.Controller
	traces []TraceFunc

	mode      mode
	haltBug   bool // next fetch does not advance PC
	eiPending bool // IME is set before the next instruction
	taken     bool // the current conditional instruction took its branch

	bytes   [3]uint8 // bytes fetched by the current instruction
	fetched uint8
}

// NewCPU creates a new CPU connected to the given bus and interrupt
// controller. All registers are zero.
func NewCPU(bus Bus, irq *interrupts.Controller) *CPU {
	return &CPU{
		bus: bus,
		irq: irq,
	}
}

// AddTrace registers fn to be called after every executed
// instruction. Traces run in the order they were added.
func (c *CPU) AddTrace(fn TraceFunc) {
	c.traces = append(c.traces, fn)
}

// Interrupts returns the interrupt controller of the CPU.
func (c *CPU) Interrupts() *interrupts.Controller {
	return c.irq
}

// Halted returns true if the CPU is idling in HALT.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Stopped returns true if the CPU is idling in STOP.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Step performs a single step of the CPU: either an interrupt
// dispatch, an idle step while halted, or the execution of a single
// instruction. The number of T-states taken is returned.
//
// An illegal opcode fails the step with a *types.Error, leaving the
// registers as they were before the step.
func (c *CPU) Step() (uint8, error) {
	if c.mode != ModeNormal {
		if !c.irq.HasInterrupts() {
			return idleCycles, nil
		}
		c.mode = ModeNormal
	}

	if c.irq.IME && c.irq.HasInterrupts() {
		return c.executeInterrupt(), nil
	}

	if c.eiPending {
		c.eiPending = false
		c.irq.IME = true
	}

	return c.execute()
}

func (c *CPU) execute() (uint8, error) {
	pc, haltBug := c.PC, c.haltBug
	c.fetched = 0
	opcode := c.fetch()
	instruction := &InstructionSet[opcode]
	prefixed := opcode == 0xCB
	if prefixed {
		opcode = c.fetch()
		instruction = &InstructionSetCB[opcode]
	}
	if instruction.fn == nil {
		c.PC, c.haltBug = pc, haltBug
		return 0, &types.Error{Kind: types.IllegalOpcode, Opcode: opcode, Address: pc}
	}

	c.taken = false
	instruction.fn(c)

	cycles := instruction.cycles
	if c.taken {
		cycles = instruction.cyclesTaken
	}

	if len(c.traces) > 0 {
		t := Trace{
			Address:   pc,
			Opcode:    opcode,
			Prefixed:  prefixed,
			Name:      instruction.name,
			Cycles:    cycles,
			Bytes:     c.bytes,
			Length:    c.fetched,
			Registers: c.Registers,
		}
		for _, trace := range c.traces {
			trace(t)
		}
	}

	return cycles, nil
}

// executeInterrupt services the highest priority pending interrupt.
// The vector is only decided after the high byte of PC has been
// pushed, as that write may land on IE and cancel the dispatch, in
// which case execution continues from 0x0000.
func (c *CPU) executeInterrupt() uint8 {
	c.irq.IME = false

	c.SP--
	c.write(c.SP, uint8(c.PC>>8))
	vector := c.irq.Vector()
	c.SP--
	c.write(c.SP, uint8(c.PC))

	c.PC = vector
	return interruptCycles
}

// fetch returns the byte at PC and advances PC, unless the HALT bug
// was triggered by the previous instruction.
func (c *CPU) fetch() uint8 {
	value := c.bus.Read(c.PC)
	if int(c.fetched) < len(c.bytes) {
		c.bytes[c.fetched] = value
		c.fetched++
	}
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next 8-bit operand.
func (c *CPU) readOperand() uint8 {
	return c.fetch()
}

// readOperand16 reads the next 16-bit operand, low byte first.
func (c *CPU) readOperand16() uint16 {
	low := c.fetch()
	return uint16(c.fetch())<<8 | uint16(low)
}

func (c *CPU) read(address uint16) uint8 {
	return c.bus.Read(address)
}

func (c *CPU) write(address uint16, value uint8) {
	c.bus.Write(address, value)
}

// push pushes value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.write(c.SP, uint8(value>>8))
	c.SP--
	c.write(c.SP, uint8(value))
}

// pop pops a 16-bit value from the stack.
func (c *CPU) pop() uint16 {
	low := c.read(c.SP)
	c.SP++
	high := c.read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// get8 returns the operand encoded as index in an opcode:
// B, C, D, E, H, L, (HL), A.
func (c *CPU) get8(index uint8) uint8 {
	if index == 6 {
		return c.read(c.HL.Uint16())
	}
	return *c.reg8(index)
}

// set8 sets the operand encoded as index in an opcode.
func (c *CPU) set8(index uint8, value uint8) {
	if index == 6 {
		c.write(c.HL.Uint16(), value)
		return
	}
	*c.reg8(index) = value
}

func (c *CPU) reg8(index uint8) *uint8 {
	switch index {
	case 0:
		return &c.BC[hi]
	case 1:
		return &c.BC[lo]
	case 2:
		return &c.DE[hi]
	case 3:
		return &c.DE[lo]
	case 4:
		return &c.HL[hi]
	case 5:
		return &c.HL[lo]
	}
	return &c.AF[hi]
}

// getRP returns the 16-bit register encoded as p: BC, DE, HL, SP.
func (c *CPU) getRP(p uint8) uint16 {
	switch p {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

func (c *CPU) setRP(p uint8, value uint16) {
	switch p {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// getRP2 returns the 16-bit register encoded as p in PUSH and POP:
// BC, DE, HL, AF.
func (c *CPU) getRP2(p uint8) uint16 {
	if p == 3 {
		return c.AF.Uint16()
	}
	return c.getRP(p)
}

func (c *CPU) setRP2(p uint8, value uint16) {
	if p == 3 {
		c.AF.SetUint16(value & 0xFFF0)
		return
	}
	c.setRP(p, value)
}

// condition evaluates the condition encoded as cc: NZ, Z, NC, C.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.Zero()
	case 1:
		return c.Zero()
	case 2:
		return !c.Carry()
	}
	return c.Carry()
}

// alu performs op on A and value, storing the result in A unless op
// is a comparison.
func (c *CPU) alu(op Op, value uint8) {
	result, f := ALU(op, c.AF[hi], value, c.Flags())
	c.AF[hi] = result
	c.SetFlags(f)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - AF, BC, DE, HL, SP, PC (uint16)
//   - mode (uint8)
//   - haltBug, eiPending, IME (bool)
func (c *CPU) Load(s *types.State) {
	c.AF.SetUint16(s.Read16() & 0xFFF0)
	c.BC.SetUint16(s.Read16())
	c.DE.SetUint16(s.Read16())
	c.HL.SetUint16(s.Read16())
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.mode = s.Read8()
	c.haltBug = s.ReadBool()
	c.eiPending = s.ReadBool()
	c.irq.Load(s)
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.AF.Uint16())
	s.Write16(c.BC.Uint16())
	s.Write16(c.DE.Uint16())
	s.Write16(c.HL.Uint16())
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.mode)
	s.WriteBool(c.haltBug)
	s.WriteBool(c.eiPending)
	c.irq.Save(s)
}
