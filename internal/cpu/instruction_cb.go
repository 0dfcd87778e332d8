package cpu

import "fmt"

var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// defineCBInstructions fills the InstructionSetCB. Every operation
// works on B, C, D, E, H, L, (HL) or A, encoded in the low 3 bits.
func defineCBInstructions() {
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			r, n := z, y
			operand := r8Names[r]

			// rotates and shifts
			op := OpRlc + Op(n)
			defineCB(n<<3|r, rotNames[n]+" "+operand, r8Cycles(r, 8, 16), func(c *CPU) {
				v, f := ALU(op, c.get8(r), 0, c.Flags())
				c.set8(r, v)
				c.SetFlags(f)
			})

			// BIT only reads its operand
			defineCB(0x40|n<<3|r, fmt.Sprintf("BIT %d, %s", n, operand), r8Cycles(r, 8, 12), func(c *CPU) {
				c.SetFlags(TestBit(c.get8(r), n, c.Flags()))
			})
			defineCB(0x80|n<<3|r, fmt.Sprintf("RES %d, %s", n, operand), r8Cycles(r, 8, 16), func(c *CPU) {
				c.set8(r, ResetBit(c.get8(r), n))
			})
			defineCB(0xC0|n<<3|r, fmt.Sprintf("SET %d, %s", n, operand), r8Cycles(r, 8, 16), func(c *CPU) {
				c.set8(r, SetBit(c.get8(r), n))
			})
		}
	}
}
