package cpu

// Flags holds the flag bits of the F register. Only the upper
// nibble is meaningful.
type Flags uint8

const (
	FlagZero      Flags = 0x80
	FlagSubtract  Flags = 0x40
	FlagHalfCarry Flags = 0x20
	FlagCarry     Flags = 0x10

	flagMask = 0xF0
)

// flags builds a Flags value from the four individual flags.
func flags(z, n, h, c bool) Flags {
	var f Flags
	if z {
		f |= FlagZero
	}
	if n {
		f |= FlagSubtract
	}
	if h {
		f |= FlagHalfCarry
	}
	if c {
		f |= FlagCarry
	}
	return f
}

// Has returns true if all the given flags are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// With returns f with flag set or cleared.
func (f Flags) With(flag Flags, on bool) Flags {
	if on {
		return f | flag
	}
	return f &^ flag
}

// String renders the flags as ZNHC, using a dash for clear flags.
func (f Flags) String() string {
	s := []byte("----")
	for i, flag := range [4]Flags{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if f.Has(flag) {
			s[i] = "ZNHC"[i]
		}
	}
	return string(s)
}
