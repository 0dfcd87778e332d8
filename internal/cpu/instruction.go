package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a single entry of an instruction table.
type Instruction struct {
	name        string
	cycles      uint8 // T-states, or T-states when a branch is not taken
	cyclesTaken uint8 // T-states when a conditional branch is taken
	length      uint8 // bytes, including the opcode and any prefix
	fn          func(*CPU)
}

// Name returns the mnemonic of the instruction, with operand
// placeholders such as d8 or a16.
func (i Instruction) Name() string { return i.name }

// Cycles returns the T-states taken by the instruction, or taken
// when a conditional branch is not taken.
func (i Instruction) Cycles() uint8 { return i.cycles }

// CyclesTaken returns the T-states taken by a conditional
// instruction when its branch is taken.
func (i Instruction) CyclesTaken() uint8 { return i.cyclesTaken }

// Length returns the size of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Legal returns false for the opcodes that lock up the CPU.
func (i Instruction) Legal() bool { return i.fn != nil }

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// illegalOpcodes have no instruction; executing one is an error.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// operandLength returns the number of operand bytes named by the
// placeholders in name.
func operandLength(name string) uint8 {
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		return 2
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"), strings.Contains(name, "r8"):
		return 1
	}
	return 0
}

// define defines the instruction for opcode in the InstructionSet.
func define(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	defineBranch(opcode, name, cycles, cycles, fn)
}

// defineBranch defines a conditional instruction, whose cost depends
// on whether the branch is taken.
func defineBranch(opcode uint8, name string, cycles, cyclesTaken uint8, fn func(*CPU)) {
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("opcode 0x%02X already defined as %s", opcode, InstructionSet[opcode].name))
	}
	InstructionSet[opcode] = Instruction{
		name:        name,
		cycles:      cycles,
		cyclesTaken: cyclesTaken,
		length:      1 + operandLength(name),
		fn:          fn,
	}
}

// defineCB defines the instruction for opcode in the InstructionSetCB.
func defineCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:        name,
		cycles:      cycles,
		cyclesTaken: cycles,
		length:      2,
		fn:          fn,
	}
}

func init() {
	defineControl()
	defineLoads()
	defineArithmetic()
	defineJumps()
	defineCBInstructions()

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{name: fmt.Sprintf("ILLEGAL_%02X", opcode), length: 1}
	}
	// the prefix is never executed on its own, see CPU.execute
	InstructionSet[0xCB] = Instruction{name: "PREFIX CB", length: 1}
	// STOP skips the byte following it
	InstructionSet[0x10].length = 2
}
