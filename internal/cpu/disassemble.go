package cpu

import (
	"fmt"
	"strings"
)

// Reader is the read side of a Bus.
type Reader interface {
	Read(address uint16) uint8
}

// Disassemble decodes the instruction at address, returning its
// mnemonic with the operands filled in and its length in bytes.
func Disassemble(r Reader, address uint16) (string, uint8) {
	opcode := r.Read(address)
	if opcode == 0xCB {
		instruction := InstructionSetCB[r.Read(address+1)]
		return instruction.name, instruction.length
	}

	instruction := InstructionSet[opcode]
	name := instruction.name
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		value := uint16(r.Read(address+2))<<8 | uint16(r.Read(address+1))
		name = strings.NewReplacer("d16", fmt.Sprintf("$%04X", value), "a16", fmt.Sprintf("$%04X", value)).Replace(name)
	case strings.Contains(name, "r8"):
		offset := int8(r.Read(address + 1))
		if strings.HasPrefix(name, "JR") {
			// show the destination rather than the offset
			target := uint16(int32(address) + 2 + int32(offset))
			name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
		} else if strings.Contains(name, "+r8") {
			name = strings.Replace(name, "+r8", fmt.Sprintf("%+d", offset), 1)
		} else {
			name = strings.Replace(name, "r8", fmt.Sprintf("%d", offset), 1)
		}
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", r.Read(address+1)), 1)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", r.Read(address+1)), 1)
	}
	return name, instruction.length
}

// Read returns the byte fetched from address by the traced
// instruction, or 0 for addresses it did not fetch.
func (t Trace) Read(address uint16) uint8 {
	i := address - t.Address
	if i >= uint16(t.Length) {
		return 0
	}
	return t.Bytes[i]
}

// Disassemble renders the traced instruction from the bytes it was
// executed with.
func (t Trace) Disassemble() string {
	text, _ := Disassemble(t, t.Address)
	return text
}
