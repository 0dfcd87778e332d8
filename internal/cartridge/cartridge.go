// Package cartridge provides the cartridge collaborator of the bus.
// The cartridge holds the game ROM and any external RAM.
package cartridge

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// MaxROMSize is the most ROM that can be mapped without a
	// memory bank controller.
	MaxROMSize = 0x8000
	// flatRAMSize is the most external RAM that can be mapped
	// without a memory bank controller.
	flatRAMSize = 0x2000
)

// Cartridge is a cartridge without bank switching: up to 32kB of ROM
// at 0x0000 - 0x7FFF and up to 8kB of RAM at 0xA000 - 0xBFFF.
type Cartridge struct {
	rom    []byte
	ram    []byte
	header Header
}

// NewCartridge parses the header of rom and returns a cartridge
// mapping it. Cartridges that rely on bank switching are rejected,
// unless the whole ROM fits the unbanked window, in which case it
// is mapped flat with a warning.
func NewCartridge(rom []byte, l log.Logger) (*Cartridge, error) {
	if l == nil {
		l = log.NewNullLogger()
	}
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if len(rom) > MaxROMSize {
		return nil, errors.Errorf("cartridge: %s rom of %d bytes requires bank switching", header.CartridgeType, len(rom))
	}
	if !header.CartridgeType.Flat() {
		l.Warnf("cartridge: %s mapped without bank switching", header.CartridgeType)
	}

	c := &Cartridge{
		rom:    make([]byte, MaxROMSize),
		header: header,
	}
	copy(c.rom, rom)
	// the unused tail of the window reads as open bus
	for i := len(rom); i < MaxROMSize; i++ {
		c.rom[i] = 0xFF
	}
	if header.RAMSize > 0 {
		c.ram = make([]byte, flatRAMSize)
	}

	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Read returns the value at the given address.
func (c *Cartridge) Read(address uint16) uint8 {
	if address < MaxROMSize {
		return c.rom[address]
	}
	offset := address - types.ExtRAMStart
	if int(offset) < len(c.ram) {
		return c.ram[offset]
	}
	return 0xFF
}

// Write writes the value to the given address. Writes to ROM are
// ignored.
func (c *Cartridge) Write(address uint16, value uint8) {
	if address < MaxROMSize {
		return
	}
	offset := address - types.ExtRAMStart
	if int(offset) < len(c.ram) {
		c.ram[offset] = value
	}
}

var _ types.Stater = (*Cartridge)(nil)

// Load implements the types.Stater interface. Only the external RAM
// is held in the state, the ROM is read-only.
func (c *Cartridge) Load(s *types.State) {
	s.ReadData(c.ram)
}

// Save implements the types.Stater interface.
func (c *Cartridge) Save(s *types.State) {
	s.WriteData(c.ram)
}
