// Package mmu provides the memory bus of the Game Boy. The MMU owns
// every memory region except the cartridge, which it delegates to,
// and resolves each read and write to exactly one region.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Cartridge is the collaborator mapped at 0x0000 - 0x7FFF and
// 0xA000 - 0xBFFF. Addresses are passed through unchanged, bank
// switching is entirely its concern.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Access describes a single read or write on the bus.
type Access struct {
	Address uint16
	Value   uint8
	Region  Region
	Write   bool
}

// TraceFunc is called after every access made through Read and Write.
type TraceFunc func(Access)

// MMU is the memory management unit of the Game Boy.
type MMU struct {
	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart Cartridge

	// 0x0000 - 0x00FF - BOOT ROM (256B), while mapped
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM
	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam *ram.RAM
	// 0xFF00 - 0xFF7F - I/O Registers
	io *ram.RAM
	// 0xFF80 - 0xFFFE - High RAM (127B)
	hRAM *ram.RAM
	// 0xFFFF - Interrupt Enable register
	ie uint8

	hooks  map[types.HardwareAddress][]WriteHook
	traces []TraceFunc

	Log log.Logger
}

// NewMMU returns a new MMU delegating to cart, with every region
// zeroed.
func NewMMU(cart Cartridge) *MMU {
	m := &MMU{
		Cart: cart,

		vRAM: ram.NewRAM(types.VRAMEnd - types.VRAMStart + 1),
		wRAM: ram.NewRAM(types.WRAMEnd - types.WRAMStart + 1),
		oam:  ram.NewRAM(types.OAMEnd - types.OAMStart + 1),
		io:   ram.NewRAM(types.IOEnd - types.IOStart + 1),
		hRAM: ram.NewRAM(types.HRAMEnd - types.HRAMStart + 1),

		hooks: make(map[types.HardwareAddress][]WriteHook),
		Log:   log.NewNullLogger(),
	}

	m.HookWrite(types.BDIS, func(v uint8) {
		// any non-zero write unmaps the boot rom for good
		if v != 0 && m.BootROMMapped() {
			m.bootROMDone = true
			m.Log.Debugf("boot rom unmapped")
		}
	})

	return m
}

// SetBootROM maps rom over the cartridge at 0x0000 - 0x00FF.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = false
}

// BootROMMapped returns true while the boot ROM shadows the cartridge.
func (m *MMU) BootROMMapped() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// AddTrace registers fn to be called after every Read and Write.
func (m *MMU) AddTrace(fn TraceFunc) {
	m.traces = append(m.traces, fn)
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	region := Classify(address)
	value := m.read(region, address)
	for _, trace := range m.traces {
		trace(Access{Address: address, Value: value, Region: region})
	}
	return value
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	region := Classify(address)
	m.write(region, address, value)
	if region == IO {
		for _, hook := range m.hooks[address] {
			hook(value)
		}
	}
	for _, trace := range m.traces {
		trace(Access{Address: address, Value: value, Region: region, Write: true})
	}
}

// Get returns the value at the given address without notifying
// traces.
func (m *MMU) Get(address uint16) uint8 {
	return m.read(Classify(address), address)
}

// Set stores the value at the given address without notifying
// traces or write hooks.
func (m *MMU) Set(address uint16, value uint8) {
	m.write(Classify(address), address, value)
}

func (m *MMU) read(region Region, address uint16) uint8 {
	switch region {
	case ROMBank0:
		if address < boot.Size && m.BootROMMapped() {
			return m.bootROM.Read(address)
		}
		return m.Cart.Read(address)
	case ROMBankN, ExtRAM:
		return m.Cart.Read(address)
	case VRAM:
		return m.vRAM.Read(address - types.VRAMStart)
	case WRAM:
		return m.wRAM.Read(address - types.WRAMStart)
	case Echo:
		return m.wRAM.Read(address - types.EchoOffset - types.WRAMStart)
	case OAM:
		return m.oam.Read(address - types.OAMStart)
	case Prohibited:
		return 0
	case IO:
		return m.io.Read(address - types.IOStart)
	case HRAM:
		return m.hRAM.Read(address - types.HRAMStart)
	case IE:
		return m.ie
	}

	panic(&types.Error{Kind: types.OutOfRangeAddress, Address: address})
}

func (m *MMU) write(region Region, address uint16, value uint8) {
	switch region {
	case ROMBank0, ROMBankN, ExtRAM:
		m.Cart.Write(address, value)
	case VRAM:
		m.vRAM.Write(address-types.VRAMStart, value)
	case WRAM:
		m.wRAM.Write(address-types.WRAMStart, value)
	case Echo:
		m.wRAM.Write(address-types.EchoOffset-types.WRAMStart, value)
	case OAM:
		m.oam.Write(address-types.OAMStart, value)
	case Prohibited:
		// dropped
	case IO:
		m.io.Write(address-types.IOStart, value)
	case HRAM:
		m.hRAM.Write(address-types.HRAMStart, value)
	case IE:
		m.ie = value
	default:
		panic(&types.Error{Kind: types.OutOfRangeAddress, Address: address})
	}
}

var _ types.Stater = (*MMU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - VRAM, WRAM, OAM, IO, HRAM (raw)
//   - IE (uint8)
//   - bootROMDone (bool)
//   - the cartridge, if it implements types.Stater
func (m *MMU) Load(s *types.State) {
	m.vRAM.Load(s)
	m.wRAM.Load(s)
	m.oam.Load(s)
	m.io.Load(s)
	m.hRAM.Load(s)
	m.ie = s.Read8()
	m.bootROMDone = s.ReadBool()
	if cart, ok := m.Cart.(types.Stater); ok {
		cart.Load(s)
	}
}

// Save implements the types.Stater interface.
func (m *MMU) Save(s *types.State) {
	m.vRAM.Save(s)
	m.wRAM.Save(s)
	m.oam.Save(s)
	m.io.Save(s)
	m.hRAM.Save(s)
	s.Write8(m.ie)
	s.WriteBool(m.bootROMDone)
	if cart, ok := m.Cart.(types.Stater); ok {
		cart.Save(s)
	}
}
