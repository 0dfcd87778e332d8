package cpu

// The arithmetic and logic unit is implemented as pure functions that
// take their operands and the current flags, and return the result
// along with the new flags. Flags documented as "not affected" are
// carried over from the flags passed in.

// Op is an operation of the ALU. The first eight operations are
// ordered as they are encoded in bits 3-5 of the 0x80-0xBF and
// 0xC6-0xFE opcodes, the next eight as in the rotate/shift block of
// the CB prefixed opcodes.
type Op uint8

const (
	OpAdd Op = iota
	OpAdc
	OpSub
	OpSbc
	OpAnd
	OpXor
	OpOr
	OpCp
	OpRlc
	OpRrc
	OpRl
	OpRr
	OpSla
	OpSra
	OpSwap
	OpSrl
	OpInc
	OpDec
)

// ALU performs op on a and b. Unary operations ignore b. For OpCp
// the result is a, as only the flags are affected.
func ALU(op Op, a, b uint8, f Flags) (uint8, Flags) {
	switch op {
	case OpAdd:
		return Add(a, b, false)
	case OpAdc:
		return Add(a, b, f.Has(FlagCarry))
	case OpSub:
		return Sub(a, b, false)
	case OpSbc:
		return Sub(a, b, f.Has(FlagCarry))
	case OpAnd:
		return And(a, b)
	case OpXor:
		return Xor(a, b)
	case OpOr:
		return Or(a, b)
	case OpCp:
		return a, Compare(a, b)
	case OpRlc:
		return RotateLeftCarry(a)
	case OpRrc:
		return RotateRightCarry(a)
	case OpRl:
		return RotateLeftThroughCarry(a, f)
	case OpRr:
		return RotateRightThroughCarry(a, f)
	case OpSla:
		return ShiftLeftArithmetic(a)
	case OpSra:
		return ShiftRightArithmetic(a)
	case OpSwap:
		return Swap(a)
	case OpSrl:
		return ShiftRightLogical(a)
	case OpInc:
		return Increment(a, f)
	case OpDec:
		return Decrement(a, f)
	}
	return a, f
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Add adds b and the carry to a.
//
//	ADD A, n / ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(a, b uint8, carry bool) (uint8, Flags) {
	c := b2u(carry)
	sum := uint16(a) + uint16(b) + uint16(c)
	half := a&0x0F+b&0x0F+c > 0x0F
	return uint8(sum), flags(uint8(sum) == 0, false, half, sum > 0xFF)
}

// Sub subtracts b and the carry from a.
//
//	SUB n / SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(a, b uint8, carry bool) (uint8, Flags) {
	c := int16(b2u(carry))
	diff := int16(a) - int16(b) - c
	half := int16(a&0x0F)-int16(b&0x0F)-c < 0
	return uint8(diff), flags(uint8(diff) == 0, true, half, diff < 0)
}

// And performs a bitwise AND of a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func And(a, b uint8) (uint8, Flags) {
	r := a & b
	return r, flags(r == 0, false, true, false)
}

// Or performs a bitwise OR of a and b. Z is set if the result is
// zero, every other flag is reset.
func Or(a, b uint8) (uint8, Flags) {
	r := a | b
	return r, flags(r == 0, false, false, false)
}

// Xor performs a bitwise XOR of a and b. Z is set if the result is
// zero, every other flag is reset.
func Xor(a, b uint8) (uint8, Flags) {
	r := a ^ b
	return r, flags(r == 0, false, false, false)
}

// Compare compares b to a. It is a subtraction with the result
// thrown away.
func Compare(a, b uint8) Flags {
	_, f := Sub(a, b, false)
	return f
}

// Increment increments v by one.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func Increment(v uint8, f Flags) (uint8, Flags) {
	r := v + 1
	return r, flags(r == 0, false, v&0x0F == 0x0F, f.Has(FlagCarry))
}

// Decrement decrements v by one.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func Decrement(v uint8, f Flags) (uint8, Flags) {
	r := v - 1
	return r, flags(r == 0, true, v&0x0F == 0, f.Has(FlagCarry))
}

// AddUint16 adds v to hl, as ADD HL, rr does.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func AddUint16(hl, v uint16, f Flags) (uint16, Flags) {
	sum := uint32(hl) + uint32(v)
	half := hl&0x0FFF+v&0x0FFF > 0x0FFF
	return uint16(sum), flags(f.Has(FlagZero), false, half, sum > 0xFFFF)
}

// AddSigned adds the signed offset e to sp, as ADD SP, e and
// LD HL, SP+e do. The carries are computed on the low byte as an
// unsigned addition.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddSigned(sp uint16, e uint8) (uint16, Flags) {
	r := sp + uint16(int8(e))
	half := sp&0x0F+uint16(e&0x0F) > 0x0F
	carry := sp&0xFF+uint16(e) > 0xFF
	return r, flags(false, false, half, carry)
}

// RotateLeftCarry rotates v left, bit 7 goes to both bit 0 and the
// carry flag.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func RotateLeftCarry(v uint8) (uint8, Flags) {
	r := v<<1 | v>>7
	return r, flags(r == 0, false, false, v&0x80 != 0)
}

// RotateRightCarry rotates v right, bit 0 goes to both bit 7 and the
// carry flag.
func RotateRightCarry(v uint8) (uint8, Flags) {
	r := v>>1 | v<<7
	return r, flags(r == 0, false, false, v&0x01 != 0)
}

// RotateLeftThroughCarry rotates v left through the carry flag.
//
//	RL n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func RotateLeftThroughCarry(v uint8, f Flags) (uint8, Flags) {
	r := v<<1 | b2u(f.Has(FlagCarry))
	return r, flags(r == 0, false, false, v&0x80 != 0)
}

// RotateRightThroughCarry rotates v right through the carry flag.
func RotateRightThroughCarry(v uint8, f Flags) (uint8, Flags) {
	r := v>>1 | b2u(f.Has(FlagCarry))<<7
	return r, flags(r == 0, false, false, v&0x01 != 0)
}

// ShiftLeftArithmetic shifts v left into the carry flag. Bit 0 is
// reset.
func ShiftLeftArithmetic(v uint8) (uint8, Flags) {
	r := v << 1
	return r, flags(r == 0, false, false, v&0x80 != 0)
}

// ShiftRightArithmetic shifts v right into the carry flag. Bit 7 is
// preserved.
func ShiftRightArithmetic(v uint8) (uint8, Flags) {
	r := v>>1 | v&0x80
	return r, flags(r == 0, false, false, v&0x01 != 0)
}

// ShiftRightLogical shifts v right into the carry flag. Bit 7 is
// reset.
func ShiftRightLogical(v uint8) (uint8, Flags) {
	r := v >> 1
	return r, flags(r == 0, false, false, v&0x01 != 0)
}

// Swap swaps the upper and lower nibbles of v.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Swap(v uint8) (uint8, Flags) {
	r := v<<4 | v>>4
	return r, flags(r == 0, false, false, false)
}

// TestBit tests the bit at the given position of v.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of v is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func TestBit(v, position uint8, f Flags) Flags {
	return flags(v&(1<<position) == 0, false, true, f.Has(FlagCarry))
}

// SetBit sets the bit at the given position of v. No flags are
// affected.
func SetBit(v, position uint8) uint8 {
	return v | 1<<position
}

// ResetBit clears the bit at the given position of v. No flags are
// affected.
func ResetBit(v, position uint8) uint8 {
	return v &^ (1 << position)
}

// DecimalAdjust adjusts a so that the result of the previous
// addition or subtraction is a valid binary coded decimal.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func DecimalAdjust(a uint8, f Flags) (uint8, Flags) {
	carry := f.Has(FlagCarry)
	if !f.Has(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if f.Has(FlagHalfCarry) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if f.Has(FlagHalfCarry) {
			a -= 0x06
		}
	}
	return a, flags(a == 0, f.Has(FlagSubtract), false, carry)
}

// Complement flips every bit of a, setting N and H.
func Complement(a uint8, f Flags) (uint8, Flags) {
	return ^a, f | FlagSubtract | FlagHalfCarry
}

// SetCarryFlag sets the carry flag, resetting N and H.
func SetCarryFlag(f Flags) Flags {
	return f&FlagZero | FlagCarry
}

// ComplementCarryFlag inverts the carry flag, resetting N and H.
func ComplementCarryFlag(f Flags) Flags {
	return f&FlagZero | (f^FlagCarry)&FlagCarry
}
