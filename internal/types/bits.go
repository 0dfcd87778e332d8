package types

// Bit is a single bit mask within a byte.
type Bit = uint8

const (
	Bit0 Bit = 1 << iota // 0b0000_0001
	Bit1                 // 0b0000_0010
	Bit2                 // 0b0000_0100
	Bit3                 // 0b0000_1000
	Bit4                 // 0b0001_0000
	Bit5                 // 0b0010_0000
	Bit6                 // 0b0100_0000
	Bit7                 // 0b1000_0000
)

// Test reports whether every bit of mask is set in b.
func Test(b uint8, mask Bit) bool {
	return b&mask == mask
}

// Set returns b with mask set.
func Set(b uint8, mask Bit) uint8 {
	return b | mask
}

// Reset returns b with mask cleared.
func Reset(b uint8, mask Bit) uint8 {
	return b &^ mask
}
