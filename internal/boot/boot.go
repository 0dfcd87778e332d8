// Package boot provides the boot ROM collaborator. A boot ROM is
// optional: without one the machine starts in the state the DMG boot
// ROM leaves behind.
package boot

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Size is the size of a DMG, MGB or SGB boot ROM.
const Size = 0x100

// ROM represents a boot ROM. When the machine powers on, the boot ROM
// is mapped over the cartridge at 0x0000 - 0x00FF, until it unmaps
// itself by writing to the types.BDIS register.
type ROM struct {
	raw      []byte
	checksum string // hex encoded MD5 of raw
}

// LoadBootROM validates b and returns a ROM holding a copy of it.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, errors.Errorf("boot: invalid boot rom length: %d (expected %d)", len(b), Size)
	}

	sum := md5.Sum(b)
	raw := make([]byte, Size)
	copy(raw, b)
	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) uint8 {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model the boot rom was dumped from, determined
// by its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

// MD5 checksums of the known 256 byte boot ROMs.
const (
	// DMG0 is the early boot ROM, found in the first Japanese units.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG  = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, loading 0xFF into A.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB by a single byte, loading 0xFF into A.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
