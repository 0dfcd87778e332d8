package cpu

// Opcodes are decoded from their bit fields, as laid out in the
// opcode table:
//
//	x = opcode >> 6      (bits 7-6)
//	y = opcode >> 3 & 7  (bits 5-3)
//	z = opcode & 7       (bits 2-0)
//	p = y >> 1, q = y & 1
//
// Register operands encoded in y or z index r8Names, register pairs
// encoded in p index rpNames (rp2Names for PUSH and POP) and
// conditions encoded in y index ccNames.

var (
	r8Names  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rpNames  = [4]string{"BC", "DE", "HL", "SP"}
	rp2Names = [4]string{"BC", "DE", "HL", "AF"}
	ccNames  = [4]string{"NZ", "Z", "NC", "C"}
	aluNames = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}
)

const hlIndex = 6

// r8Cycles returns cycles, or withHL when the operand is (HL).
func r8Cycles(index uint8, cycles, withHL uint8) uint8 {
	if index == hlIndex {
		return withHL
	}
	return cycles
}

func defineControl() {
	define(0x00, "NOP", 4, func(c *CPU) {})
	define(0x10, "STOP", 4, func(c *CPU) {
		c.readOperand() // STOP is followed by a padding byte
		c.mode = ModeStop
	})
	define(0x76, "HALT", 4, func(c *CPU) {
		if !c.irq.IME && c.irq.HasInterrupts() {
			// the CPU doesn't halt, and fails to increment PC
			// for the next fetch
			c.haltBug = true
			return
		}
		c.mode = ModeHalt
	})
	define(0xF3, "DI", 4, func(c *CPU) {
		c.irq.IME = false
		c.eiPending = false
	})
	define(0xFB, "EI", 4, func(c *CPU) {
		// takes effect after the next instruction
		c.eiPending = true
	})

	define(0x27, "DAA", 4, func(c *CPU) {
		a, f := DecimalAdjust(c.AF[hi], c.Flags())
		c.AF[hi] = a
		c.SetFlags(f)
	})
	define(0x2F, "CPL", 4, func(c *CPU) {
		a, f := Complement(c.AF[hi], c.Flags())
		c.AF[hi] = a
		c.SetFlags(f)
	})
	define(0x37, "SCF", 4, func(c *CPU) { c.SetFlags(SetCarryFlag(c.Flags())) })
	define(0x3F, "CCF", 4, func(c *CPU) { c.SetFlags(ComplementCarryFlag(c.Flags())) })

	// the accumulator rotates always reset Z
	accumulator := [4]struct {
		opcode uint8
		name   string
		op     Op
	}{
		{0x07, "RLCA", OpRlc},
		{0x0F, "RRCA", OpRrc},
		{0x17, "RLA", OpRl},
		{0x1F, "RRA", OpRr},
	}
	for _, rot := range accumulator {
		op := rot.op
		define(rot.opcode, rot.name, 4, func(c *CPU) {
			a, f := ALU(op, c.AF[hi], 0, c.Flags())
			c.AF[hi] = a
			c.SetFlags(f &^ FlagZero)
		})
	}
}

func defineLoads() {
	// LD r, r'
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			if y == hlIndex && z == hlIndex {
				continue // HALT
			}
			dst, src := y, z
			cycles := uint8(4)
			if dst == hlIndex || src == hlIndex {
				cycles = 8
			}
			fn := func(c *CPU) { c.set8(dst, c.get8(src)) }
			if dst == 0 && src == 0 {
				fn = func(c *CPU) {
					if c.Debug {
						c.DebugBreakpoint = true
					}
				}
			}
			define(0x40|dst<<3|src, "LD "+r8Names[dst]+", "+r8Names[src], cycles, fn)
		}
	}

	// LD r, d8
	for y := uint8(0); y < 8; y++ {
		dst := y
		define(dst<<3|0x06, "LD "+r8Names[dst]+", d8", r8Cycles(dst, 8, 12), func(c *CPU) {
			c.set8(dst, c.readOperand())
		})
	}

	// LD rr, d16
	for p := uint8(0); p < 4; p++ {
		rp := p
		define(rp<<4|0x01, "LD "+rpNames[rp]+", d16", 12, func(c *CPU) {
			c.setRP(rp, c.readOperand16())
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	define(0x02, "LD (BC), A", 8, func(c *CPU) { c.write(c.BC.Uint16(), c.AF[hi]) })
	define(0x12, "LD (DE), A", 8, func(c *CPU) { c.write(c.DE.Uint16(), c.AF[hi]) })
	define(0x22, "LD (HL+), A", 8, func(c *CPU) {
		hl := c.HL.Uint16()
		c.write(hl, c.AF[hi])
		c.HL.SetUint16(hl + 1)
	})
	define(0x32, "LD (HL-), A", 8, func(c *CPU) {
		hl := c.HL.Uint16()
		c.write(hl, c.AF[hi])
		c.HL.SetUint16(hl - 1)
	})
	define(0x0A, "LD A, (BC)", 8, func(c *CPU) { c.AF[hi] = c.read(c.BC.Uint16()) })
	define(0x1A, "LD A, (DE)", 8, func(c *CPU) { c.AF[hi] = c.read(c.DE.Uint16()) })
	define(0x2A, "LD A, (HL+)", 8, func(c *CPU) {
		hl := c.HL.Uint16()
		c.AF[hi] = c.read(hl)
		c.HL.SetUint16(hl + 1)
	})
	define(0x3A, "LD A, (HL-)", 8, func(c *CPU) {
		hl := c.HL.Uint16()
		c.AF[hi] = c.read(hl)
		c.HL.SetUint16(hl - 1)
	})

	define(0x08, "LD (a16), SP", 20, func(c *CPU) {
		address := c.readOperand16()
		c.write(address, uint8(c.SP))
		c.write(address+1, uint8(c.SP>>8))
	})

	// high memory loads
	define(0xE0, "LDH (a8), A", 12, func(c *CPU) { c.write(0xFF00|uint16(c.readOperand()), c.AF[hi]) })
	define(0xF0, "LDH A, (a8)", 12, func(c *CPU) { c.AF[hi] = c.read(0xFF00 | uint16(c.readOperand())) })
	define(0xE2, "LD (C), A", 8, func(c *CPU) { c.write(0xFF00|uint16(c.BC[lo]), c.AF[hi]) })
	define(0xF2, "LD A, (C)", 8, func(c *CPU) { c.AF[hi] = c.read(0xFF00 | uint16(c.BC[lo])) })
	define(0xEA, "LD (a16), A", 16, func(c *CPU) { c.write(c.readOperand16(), c.AF[hi]) })
	define(0xFA, "LD A, (a16)", 16, func(c *CPU) { c.AF[hi] = c.read(c.readOperand16()) })

	// stack
	for p := uint8(0); p < 4; p++ {
		rp := p
		define(0xC1|rp<<4, "POP "+rp2Names[rp], 12, func(c *CPU) { c.setRP2(rp, c.pop()) })
		define(0xC5|rp<<4, "PUSH "+rp2Names[rp], 16, func(c *CPU) { c.push(c.getRP2(rp)) })
	}
	define(0xF8, "LD HL, SP+r8", 12, func(c *CPU) {
		hl, f := AddSigned(c.SP, c.readOperand())
		c.HL.SetUint16(hl)
		c.SetFlags(f)
	})
	define(0xF9, "LD SP, HL", 8, func(c *CPU) { c.SP = c.HL.Uint16() })
}

func defineArithmetic() {
	// ALU A, r
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			op, src := Op(y), z
			define(0x80|y<<3|src, aluNames[op]+r8Names[src], r8Cycles(src, 4, 8), func(c *CPU) {
				c.alu(op, c.get8(src))
			})
		}
		// ALU A, d8
		op := Op(y)
		define(0xC6|y<<3, aluNames[op]+"d8", 8, func(c *CPU) { c.alu(op, c.readOperand()) })
	}

	// INC r, DEC r
	for y := uint8(0); y < 8; y++ {
		r := y
		define(r<<3|0x04, "INC "+r8Names[r], r8Cycles(r, 4, 12), func(c *CPU) {
			v, f := Increment(c.get8(r), c.Flags())
			c.set8(r, v)
			c.SetFlags(f)
		})
		define(r<<3|0x05, "DEC "+r8Names[r], r8Cycles(r, 4, 12), func(c *CPU) {
			v, f := Decrement(c.get8(r), c.Flags())
			c.set8(r, v)
			c.SetFlags(f)
		})
	}

	// INC rr, DEC rr, ADD HL, rr
	for p := uint8(0); p < 4; p++ {
		rp := p
		define(rp<<4|0x03, "INC "+rpNames[rp], 8, func(c *CPU) { c.setRP(rp, c.getRP(rp)+1) })
		define(rp<<4|0x0B, "DEC "+rpNames[rp], 8, func(c *CPU) { c.setRP(rp, c.getRP(rp)-1) })
		define(rp<<4|0x09, "ADD HL, "+rpNames[rp], 8, func(c *CPU) {
			hl, f := AddUint16(c.HL.Uint16(), c.getRP(rp), c.Flags())
			c.HL.SetUint16(hl)
			c.SetFlags(f)
		})
	}

	define(0xE8, "ADD SP, r8", 16, func(c *CPU) {
		sp, f := AddSigned(c.SP, c.readOperand())
		c.SP = sp
		c.SetFlags(f)
	})
}
