package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// WriteHook is called after a value written through Write has been
// stored in a hardware register.
type WriteHook func(value uint8)

// HookWrite registers hook to be called on every write to the
// hardware register at address. Hooks run in the order they were
// registered. Addresses outside the I/O region are never hooked.
func (m *MMU) HookWrite(address types.HardwareAddress, hook WriteHook) {
	if Classify(address) != IO {
		return
	}
	m.hooks[address] = append(m.hooks[address], hook)
}
