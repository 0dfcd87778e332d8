package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// Region is one of the eleven regions the address space is divided
// into.
type Region uint8

const (
	// ROMBank0 is the fixed ROM bank of the cartridge (0x0000 - 0x3FFF).
	ROMBank0 Region = iota
	// ROMBankN is the switchable ROM bank of the cartridge (0x4000 - 0x7FFF).
	ROMBankN
	// VRAM is the video RAM (0x8000 - 0x9FFF).
	VRAM
	// ExtRAM is the external RAM of the cartridge (0xA000 - 0xBFFF).
	ExtRAM
	// WRAM is the work RAM (0xC000 - 0xDFFF).
	WRAM
	// Echo mirrors the work RAM (0xE000 - 0xFDFF).
	Echo
	// OAM is the sprite attribute table (0xFE00 - 0xFE9F).
	OAM
	// Prohibited reads as 0 and ignores writes (0xFEA0 - 0xFEFF).
	Prohibited
	// IO holds the hardware registers (0xFF00 - 0xFF7F).
	IO
	// HRAM is the high RAM (0xFF80 - 0xFFFE).
	HRAM
	// IE is the interrupt enable register (0xFFFF).
	IE
)

var regionNames = [...]string{
	"ROM0", "ROMX", "VRAM", "SRAM", "WRAM", "ECHO", "OAM", "UNUSABLE", "IO", "HRAM", "IE",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "?"
}

// Classify returns the region address belongs to. Every address
// belongs to exactly one region.
func Classify(address uint16) Region {
	switch {
	case address <= types.ROMBank0End:
		return ROMBank0
	case address <= types.ROMBankNEnd:
		return ROMBankN
	case address <= types.VRAMEnd:
		return VRAM
	case address <= types.ExtRAMEnd:
		return ExtRAM
	case address <= types.WRAMEnd:
		return WRAM
	case address <= types.EchoEnd:
		return Echo
	case address <= types.OAMEnd:
		return OAM
	case address <= types.ProhibitedTo:
		return Prohibited
	case address <= types.IOEnd:
		return IO
	case address <= types.HRAMEnd:
		return HRAM
	case address == types.IE:
		return IE
	}

	// unreachable while the bounds above cover the address space
	panic(&types.Error{Kind: types.OutOfRangeAddress, Address: address})
}
