package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Name identifies a register of the register file. The 8-bit
// registers come first, followed by the 16-bit views.
type Name uint8

const (
	A Name = iota
	F
	B
	C
	D
	E
	H
	L
	AF
	BC
	DE
	HL
	SP
	PC
)

var registerNames = [...]string{"A", "F", "B", "C", "D", "E", "H", "L", "AF", "BC", "DE", "HL", "SP", "PC"}

func (n Name) String() string {
	if int(n) < len(registerNames) {
		return registerNames[n]
	}
	return "?"
}

// Is8 reports whether n names an 8-bit register.
func (n Name) Is8() bool {
	return n <= L
}

// ParseName returns the register named s (case-insensitive).
func ParseName(s string) (Name, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range registerNames {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, &types.Error{Kind: types.InvalidRegister, Register: s}
}

const (
	hi = 0 // index of the most significant register of a Pair
	lo = 1 // index of the least significant register of a Pair
)

// Pair is a group of two 8-bit registers that can also be addressed
// as a single 16-bit register. The first register forms the most
// significant byte, e.g. B in BC, regardless of host byte order.
type Pair [2]uint8

// Uint16 returns the value of the Pair as an uint16.
func (p *Pair) Uint16() uint16 {
	return uint16(p[hi])<<8 | uint16(p[lo])
}

// SetUint16 sets both halves of the Pair from value.
func (p *Pair) SetUint16(value uint16) {
	p[hi] = uint8(value >> 8)
	p[lo] = uint8(value)
}

// Registers is the register file of the SM83. The eight 8-bit
// registers live in four Pairs; SP and PC stand alone.
type Registers struct {
	AF Pair
	BC Pair
	DE Pair
	HL Pair

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next byte to be fetched.
	PC uint16
}

// ref8 returns the storage backing the 8-bit register n, or nil if n
// does not name an 8-bit register.
func (r *Registers) ref8(n Name) *uint8 {
	switch n {
	case A:
		return &r.AF[hi]
	case F:
		return &r.AF[lo]
	case B:
		return &r.BC[hi]
	case C:
		return &r.BC[lo]
	case D:
		return &r.DE[hi]
	case E:
		return &r.DE[lo]
	case H:
		return &r.HL[hi]
	case L:
		return &r.HL[lo]
	}
	return nil
}

func invalidRegister(n Name) error {
	return &types.Error{Kind: types.InvalidRegister, Register: n.String()}
}

// Get8 returns the value of the 8-bit register n.
func (r *Registers) Get8(n Name) (uint8, error) {
	ref := r.ref8(n)
	if ref == nil {
		return 0, invalidRegister(n)
	}
	return *ref, nil
}

// Set8 sets the 8-bit register n. The low nibble of F is always
// written as zero.
func (r *Registers) Set8(n Name, value uint8) error {
	ref := r.ref8(n)
	if ref == nil {
		return invalidRegister(n)
	}
	if n == F {
		value &= flagMask
	}
	*ref = value
	return nil
}

// Get16 returns the value of the 16-bit register n. Along with the
// four pairs, SP and PC are accepted.
func (r *Registers) Get16(n Name) (uint16, error) {
	switch n {
	case AF:
		return r.AF.Uint16(), nil
	case BC:
		return r.BC.Uint16(), nil
	case DE:
		return r.DE.Uint16(), nil
	case HL:
		return r.HL.Uint16(), nil
	case SP:
		return r.SP, nil
	case PC:
		return r.PC, nil
	}
	return 0, invalidRegister(n)
}

// Set16 sets the 16-bit register n. Writes to AF mask the low
// nibble of F.
func (r *Registers) Set16(n Name, value uint16) error {
	switch n {
	case AF:
		r.AF.SetUint16(value & 0xFFF0)
	case BC:
		r.BC.SetUint16(value)
	case DE:
		r.DE.SetUint16(value)
	case HL:
		r.HL.SetUint16(value)
	case SP:
		r.SP = value
	case PC:
		r.PC = value
	default:
		return invalidRegister(n)
	}
	return nil
}

// Flags returns the flag register.
func (r *Registers) Flags() Flags {
	return Flags(r.AF[lo])
}

// SetFlags replaces the flag register, discarding the low nibble.
func (r *Registers) SetFlags(f Flags) {
	r.AF[lo] = uint8(f) & flagMask
}

func (r *Registers) setFlag(flag Flags, on bool) {
	r.SetFlags(r.Flags().With(flag, on))
}

// Zero reports whether the zero flag is set.
func (r *Registers) Zero() bool { return r.Flags().Has(FlagZero) }

// Subtract reports whether the subtract flag is set.
func (r *Registers) Subtract() bool { return r.Flags().Has(FlagSubtract) }

// HalfCarry reports whether the half-carry flag is set.
func (r *Registers) HalfCarry() bool { return r.Flags().Has(FlagHalfCarry) }

// Carry reports whether the carry flag is set.
func (r *Registers) Carry() bool { return r.Flags().Has(FlagCarry) }

func (r *Registers) SetZero(on bool)      { r.setFlag(FlagZero, on) }
func (r *Registers) SetSubtract(on bool)  { r.setFlag(FlagSubtract, on) }
func (r *Registers) SetHalfCarry(on bool) { r.setFlag(FlagHalfCarry, on) }
func (r *Registers) SetCarry(on bool)     { r.setFlag(FlagCarry, on) }

func (r Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X [%s]",
		r.AF.Uint16(), r.BC.Uint16(), r.DE.Uint16(), r.HL.Uint16(), r.SP, r.PC, r.Flags())
}
