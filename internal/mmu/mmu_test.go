package mmu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/types"
)

// testCart records every access delegated to it.
type testCart struct {
	reads  []uint16
	writes map[uint16]uint8
}

func newTestCart() *testCart {
	return &testCart{writes: make(map[uint16]uint8)}
}

func (c *testCart) Read(address uint16) uint8 {
	c.reads = append(c.reads, address)
	return uint8(address >> 8)
}

func (c *testCart) Write(address uint16, value uint8) {
	c.writes[address] = value
}

func TestClassify(t *testing.T) {
	tests := []struct {
		from, to uint16
		region   Region
	}{
		{0x0000, 0x3FFF, ROMBank0},
		{0x4000, 0x7FFF, ROMBankN},
		{0x8000, 0x9FFF, VRAM},
		{0xA000, 0xBFFF, ExtRAM},
		{0xC000, 0xDFFF, WRAM},
		{0xE000, 0xFDFF, Echo},
		{0xFE00, 0xFE9F, OAM},
		{0xFEA0, 0xFEFF, Prohibited},
		{0xFF00, 0xFF7F, IO},
		{0xFF80, 0xFFFE, HRAM},
		{0xFFFF, 0xFFFF, IE},
	}

	// the table must cover the address space without gaps
	next := uint32(0)
	for _, tt := range tests {
		require.Equal(t, next, uint32(tt.from), "gap before %s", tt.region)
		next = uint32(tt.to) + 1
	}
	require.Equal(t, uint32(0x10000), next)

	for _, tt := range tests {
		for address := uint32(tt.from); address <= uint32(tt.to); address++ {
			if got := Classify(uint16(address)); got != tt.region {
				t.Fatalf("0x%04X: expected %s, got %s", address, tt.region, got)
			}
		}
	}
}

func TestMMU_Total(t *testing.T) {
	m := NewMMU(newTestCart())
	assert.NotPanics(t, func() {
		for address := 0; address <= 0xFFFF; address++ {
			m.Write(uint16(address), 0xAA)
			m.Read(uint16(address))
		}
	})
}

func TestMMU_RoundTrip(t *testing.T) {
	m := NewMMU(newTestCart())
	for _, address := range []uint16{0x8000, 0x9FFF, 0xC000, 0xDFFF, 0xFE00, 0xFE9F, 0xFF80, 0xFFFE, 0xFFFF, 0xFF0F} {
		m.Write(address, 0x5A)
		assert.Equal(t, uint8(0x5A), m.Read(address), "0x%04X", address)
	}
}

func TestMMU_Echo(t *testing.T) {
	m := NewMMU(newTestCart())

	m.Write(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xE123))

	m.Write(0xFDFF, 0x24)
	assert.Equal(t, uint8(0x24), m.Read(0xDDFF))

	// for every echo address, writing either side is visible on the other
	for address := uint32(types.EchoStart); address <= uint32(types.EchoEnd); address += 0x101 {
		echo := uint16(address)
		m.Write(echo, uint8(address))
		assert.Equal(t, uint8(address), m.Read(echo-0x2000))
	}
}

func TestMMU_Prohibited(t *testing.T) {
	m := NewMMU(newTestCart())
	for address := uint32(types.ProhibitedFrom); address <= uint32(types.ProhibitedTo); address++ {
		m.Write(uint16(address), 0xFF)
		assert.Equal(t, uint8(0), m.Read(uint16(address)))
	}
	// neighbouring regions are untouched
	assert.Equal(t, uint8(0), m.Read(0xFE9F))
	assert.Equal(t, uint8(0), m.Read(0xFF00))
}

func TestMMU_CartridgeDelegation(t *testing.T) {
	cart := newTestCart()
	m := NewMMU(cart)

	assert.Equal(t, uint8(0x01), m.Read(0x0150))
	assert.Equal(t, uint8(0x45), m.Read(0x4567))
	assert.Equal(t, uint8(0xA0), m.Read(0xA000))
	assert.Equal(t, []uint16{0x0150, 0x4567, 0xA000}, cart.reads)

	m.Write(0x2000, 0x01)
	m.Write(0xBFFF, 0x99)
	assert.Equal(t, map[uint16]uint8{0x2000: 0x01, 0xBFFF: 0x99}, cart.writes)

	// nothing else reaches the cartridge
	m.Write(0xC000, 0x01)
	m.Read(0xC000)
	assert.Len(t, cart.reads, 3)
	assert.Len(t, cart.writes, 2)
}

func TestMMU_BootROM(t *testing.T) {
	raw := make([]byte, boot.Size)
	for i := range raw {
		raw[i] = 0xBB
	}
	rom, err := boot.LoadBootROM(raw)
	require.NoError(t, err)

	m := NewMMU(newTestCart())
	m.SetBootROM(rom)
	require.True(t, m.BootROMMapped())

	assert.Equal(t, uint8(0xBB), m.Read(0x0000))
	assert.Equal(t, uint8(0xBB), m.Read(0x00FF))
	assert.Equal(t, uint8(0x01), m.Read(0x0100), "cartridge is visible above the boot rom")

	m.Write(types.BDIS, 0x00)
	assert.True(t, m.BootROMMapped(), "zero write keeps the boot rom mapped")

	m.Write(types.BDIS, 0x01)
	assert.False(t, m.BootROMMapped())
	assert.Equal(t, uint8(0x00), m.Read(0x0000))
	assert.Equal(t, uint8(0x01), m.Read(types.BDIS))
}

func TestMMU_Trace(t *testing.T) {
	m := NewMMU(newTestCart())
	var accesses []Access
	m.AddTrace(func(a Access) { accesses = append(accesses, a) })

	m.Write(0xC000, 0x12)
	m.Read(0xE000)
	m.Set(0xC001, 0x34)
	assert.Equal(t, uint8(0x34), m.Get(0xC001))

	assert.Equal(t, []Access{
		{Address: 0xC000, Value: 0x12, Region: WRAM, Write: true},
		{Address: 0xE000, Value: 0x12, Region: Echo},
	}, accesses)
}

func TestMMU_HookWrite(t *testing.T) {
	m := NewMMU(newTestCart())
	var values []uint8
	m.HookWrite(types.SC, func(v uint8) { values = append(values, v) })
	m.HookWrite(0xC000, func(v uint8) { t.Errorf("hook outside the I/O region called") })

	m.Write(types.SC, 0x81)
	m.Set(types.SC, 0x01)
	m.Write(0xC000, 0x01)

	assert.Equal(t, []uint8{0x81}, values)
	assert.Equal(t, uint8(0x01), m.Read(types.SC))
}

func TestMMU_State(t *testing.T) {
	m := NewMMU(newTestCart())
	m.Write(0x8000, 0x01)
	m.Write(0xC000, 0x02)
	m.Write(0xFE00, 0x03)
	m.Write(0xFF0F, 0x04)
	m.Write(0xFF80, 0x05)
	m.Write(0xFFFF, 0x1F)

	st := types.NewState()
	m.Save(st)

	restored := NewMMU(newTestCart())
	restored.Load(types.StateFromBytes(st.Bytes()))
	for _, address := range []uint16{0x8000, 0xC000, 0xFE00, 0xFF0F, 0xFF80, 0xFFFF} {
		assert.Equal(t, m.Get(address), restored.Get(address), "0x%04X", address)
	}
}

func TestOutOfRangeError(t *testing.T) {
	err := error(&types.Error{Kind: types.OutOfRangeAddress, Address: 0x1234})
	assert.True(t, errors.Is(err, types.ErrOutOfRangeAddress))
	assert.Equal(t, "out of range address 0x1234", err.Error())
}
