package cpu

import "fmt"

// jumpRelative reads a signed offset and adds it to PC when
// condition is true.
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.taken = true
	}
}

// jumpAbsolute reads an address and jumps to it when condition is
// true.
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.taken = true
	}
}

// call reads an address, and when condition is true pushes PC and
// jumps to it.
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.push(c.PC)
		c.PC = address
		c.taken = true
	}
}

// ret pops PC from the stack when condition is true.
func (c *CPU) ret(condition bool) {
	if condition {
		c.PC = c.pop()
		c.taken = true
	}
}

func defineJumps() {
	define(0x18, "JR r8", 12, func(c *CPU) { c.jumpRelative(true) })
	define(0xC3, "JP a16", 16, func(c *CPU) { c.jumpAbsolute(true) })
	define(0xE9, "JP HL", 4, func(c *CPU) { c.PC = c.HL.Uint16() })
	define(0xCD, "CALL a16", 24, func(c *CPU) { c.call(true) })
	define(0xC9, "RET", 16, func(c *CPU) { c.ret(true) })
	define(0xD9, "RETI", 16, func(c *CPU) {
		c.ret(true)
		c.irq.IME = true
	})

	for i := uint8(0); i < 4; i++ {
		cc := i
		defineBranch(0x20|cc<<3, "JR "+ccNames[cc]+", r8", 8, 12, func(c *CPU) { c.jumpRelative(c.condition(cc)) })
		defineBranch(0xC2|cc<<3, "JP "+ccNames[cc]+", a16", 12, 16, func(c *CPU) { c.jumpAbsolute(c.condition(cc)) })
		defineBranch(0xC4|cc<<3, "CALL "+ccNames[cc]+", a16", 12, 24, func(c *CPU) { c.call(c.condition(cc)) })
		defineBranch(0xC0|cc<<3, "RET "+ccNames[cc], 8, 20, func(c *CPU) { c.ret(c.condition(cc)) })
	}

	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		define(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 16, func(c *CPU) {
			c.push(c.PC)
			c.PC = vector
		})
	}
}
