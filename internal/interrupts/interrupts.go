package interrupts

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// Interrupt identifies one of the five interrupt sources. The value
// is the bit position in the IF and IE registers, which is also the
// priority of the interrupt (lower wins).
type Interrupt uint8

const (
	// VBlank is requested every time the PPU enters VBlank mode.
	VBlank Interrupt = iota
	// LCD is requested by the LCD STAT register, when certain
	// conditions are met.
	LCD
	// Timer is requested when the timer overflows.
	Timer
	// Serial is requested when a serial transfer is completed.
	Serial
	// Joypad is requested when any of the P1 input lines go from
	// high to low.
	Joypad
)

// Mask is the mask of the implemented interrupt bits.
const Mask = 0x1F

var interruptNames = [...]string{"VBlank", "LCD", "Timer", "Serial", "Joypad"}

func (i Interrupt) String() string {
	if i > Joypad {
		return "Unknown"
	}
	return interruptNames[i]
}

// Flag returns the bit of the interrupt in the IF and IE registers.
func (i Interrupt) Flag() uint8 {
	return 1 << i
}

// Vector returns the address of the interrupt's service routine.
func (i Interrupt) Vector() uint16 {
	return 0x0040 + uint16(i)*8
}

// Registers provides untraced access to the IF and IE registers,
// which live in the address space of the bus.
type Registers interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
}

// Controller is the interrupt controller, used to request interrupts
// and to get the next interrupt vector.
//
// When an interrupt is requested, the corresponding bit in IF
// (0xFF0F) is set. When an interrupt is enabled, the corresponding bit
// in IE (0xFFFF) is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt vector, and
// the corresponding bit in IF will be cleared.
//
// The IME is set by the EI and RETI instructions, and cleared by DI
// and by the dispatch of an interrupt.
type Controller struct {
	IME bool

	regs Registers
}

// NewController returns a new Controller operating on the IF and IE
// registers held by regs.
func NewController(regs Registers) *Controller {
	return &Controller{regs: regs}
}

// Flag returns the IF register.
func (c *Controller) Flag() uint8 {
	return c.regs.Get(types.IF)
}

// Enable returns the IE register.
func (c *Controller) Enable() uint8 {
	return c.regs.Get(types.IE)
}

// Pending returns the interrupts that are both requested and enabled.
func (c *Controller) Pending() uint8 {
	return c.Flag() & c.Enable() & Mask
}

// HasInterrupts returns true if there are any interrupts that are
// requested and enabled, regardless of the IME.
func (c *Controller) HasInterrupts() bool {
	return c.Pending() != 0
}

// Request requests the interrupt by setting its bit in IF. Unknown
// interrupts are ignored.
func (c *Controller) Request(i Interrupt) {
	if i > Joypad {
		return
	}
	c.regs.Set(types.IF, types.Set(c.Flag(), i.Flag()))
}

// Vector returns the vector of the highest priority pending
// interrupt, or 0 if no interrupt is pending. The bit of the
// returned interrupt is cleared in IF.
func (c *Controller) Vector() uint16 {
	pending := c.Pending()
	for i := VBlank; i <= Joypad; i++ {
		if types.Test(pending, i.Flag()) {
			c.regs.Set(types.IF, types.Reset(c.Flag(), i.Flag()))
			return i.Vector()
		}
	}

	return 0
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface. IF and IE are saved
// with the memory they are mapped in, only the IME is held here.
func (c *Controller) Load(st *types.State) {
	c.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(st *types.State) {
	st.WriteBool(c.IME)
}
