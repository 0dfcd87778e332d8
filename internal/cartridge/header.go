package cartridge

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Flag is the colour support flag of a cartridge.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the cartridge type byte (0x0147), describing the memory
// bank controller and any extra hardware on the cartridge.
type Type uint8

const (
	ROM              Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBATT      Type = 0x03
	MBC2             Type = 0x05
	MBC2BATT         Type = 0x06
	ROMRAM           Type = 0x08
	ROMRAMBATT       Type = 0x09
	MBC3TIMERBATT    Type = 0x0F
	MBC3TIMERRAMBATT Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBATT      Type = 0x13
	MBC5             Type = 0x19
	MBC5RAM          Type = 0x1A
	MBC5RAMBATT      Type = 0x1B
)

var typeNames = map[Type]string{
	ROM:              "ROM ONLY",
	MBC1:             "MBC1",
	MBC1RAM:          "MBC1+RAM",
	MBC1RAMBATT:      "MBC1+RAM+BATTERY",
	MBC2:             "MBC2",
	MBC2BATT:         "MBC2+BATTERY",
	ROMRAM:           "ROM+RAM",
	ROMRAMBATT:       "ROM+RAM+BATTERY",
	MBC3TIMERBATT:    "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT: "MBC3+TIMER+RAM+BATTERY",
	MBC3:             "MBC3",
	MBC3RAM:          "MBC3+RAM",
	MBC3RAMBATT:      "MBC3+RAM+BATTERY",
	MBC5:             "MBC5",
	MBC5RAM:          "MBC5+RAM",
	MBC5RAMBATT:      "MBC5+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(t))
}

// Flat returns true for the types without a memory bank controller.
func (t Type) Flat() bool {
	return t == ROM || t == ROMRAM || t == ROMRAMBATT
}

// Header represents the header of a cartridge, located at the address
// space 0x0100-0x014F. The header contains information about the
// cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	SGBFlag        bool
	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	MaskROMVersion uint8
	HeaderChecksum uint8
	GlobalChecksum uint16

	// checksum is the header checksum computed over 0x0134-0x014C
	checksum uint8
}

// headerStart and headerEnd bound the header in the ROM.
const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// ParseHeader parses the header of the given ROM, which may be
// larger than a flat cartridge can hold.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, errors.Errorf("cartridge: rom too small to hold a header: %d bytes", len(rom))
	}
	header := rom[headerStart:headerEnd]
	h := Header{}

	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	title := header[0x34:0x44]
	if h.CartridgeGBMode != FlagOnlyDMG {
		title = header[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")

	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])
	// 32kB x (1 << n)
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramSizes[header[0x49]]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	for _, b := range header[0x34:0x4D] {
		h.checksum = h.checksum - b - 1
	}

	return h, nil
}

// ChecksumValid returns true if the header checksum matches the
// header contents. The boot ROM refuses to start a cartridge when
// it does not.
func (h *Header) ChecksumValid() bool {
	return h.checksum == h.HeaderChecksum
}

// Hardware returns the hardware the cartridge was made for.
func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	}
	return "DMG"
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
