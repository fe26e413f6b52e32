package cpu

// registerLoad wires every LD/LDH/PUSH-adjacent data-movement opcode: the
// 64-entry LD r,r' block (0x40-0x7F, minus 0x76 which is HALT), LD r,d8, the
// four indirect-pair forms (LD A,(BC)/(DE)/(HL+)/(HL-) and their mirror
// image writes), 16-bit immediate loads into BC/DE/HL/SP, LD (a16),SP, the
// two absolute accumulator forms, the two high-RAM forms, and LD SP,HL.
func registerLoad() {
	registerLoadRegisterToRegister()
	registerLoadImmediate8()
	registerLoadIndirectPairs()
	registerLoadImmediate16()
	registerLoadAbsolute()
}

// registerLoadRegisterToRegister wires the 0x40-0x7F block: LD dst,src for
// every combination of the eight 3-bit-encoded operands, including (HL) on
// either side, except 0x76 (HALT), which registerMisc already claimed.
func registerLoadRegisterToRegister() {
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := uint8(0x40 + 8*dst + src)
			if op == 0x76 {
				continue
			}
			d, s := uint8(dst), uint8(src)
			DefineInstruction(op, "LD "+registerNames[d]+","+registerNames[s], func(c *CPU) {
				c.writeOperand8(d, c.readOperand8(s))
			})
		}
	}
}

// registerLoadImmediate8 wires LD r,d8 for all eight operand slots,
// including (HL).
func registerLoadImmediate8() {
	bases := [8]uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for i, op := range bases {
		idx := uint8(i)
		DefineInstruction(op, "LD "+registerNames[idx]+",d8", func(c *CPU) {
			c.writeOperand8(idx, c.fetch8())
		})
	}
}

// registerLoadIndirectPairs wires the eight opcodes that move A through a
// register-pair address: plain (BC)/(DE), and the auto-incrementing and
// auto-decrementing (HL+)/(HL-) forms. (HL+) and (HL-) write (or read) A
// before adjusting HL, matching the documented operand order.
func registerLoadIndirectPairs() {
	DefineInstruction(0x02, "LD (BC),A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "LD (DE),A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x0A, "LD A,(BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A,(DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })

	DefineInstruction(0x22, "LD (HL+),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x2A, "LD A,(HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x3A, "LD A,(HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
}

// registerLoadImmediate16 wires LD BC/DE/HL/SP,d16 and LD (a16),SP.
func registerLoadImmediate16() {
	DefineInstruction(0x01, "LD BC,d16", func(c *CPU) { c.BC.SetUint16(c.fetch16()) })
	DefineInstruction(0x11, "LD DE,d16", func(c *CPU) { c.DE.SetUint16(c.fetch16()) })
	DefineInstruction(0x21, "LD HL,d16", func(c *CPU) { c.HL.SetUint16(c.fetch16()) })
	DefineInstruction(0x31, "LD SP,d16", func(c *CPU) { c.SP = c.fetch16() })

	DefineInstruction(0x08, "LD (a16),SP", func(c *CPU) {
		addr := c.fetch16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	})

	DefineInstruction(0xF9, "LD SP,HL", func(c *CPU) { c.SP = c.HL.Uint16() })
}

// registerLoadAbsolute wires the absolute-address accumulator forms (LD
// (a16),A and LD A,(a16), both raw 16-bit addresses with no 0xFF00 offset)
// and the four high-RAM/C-register shorthands LDH (a8),A, LDH A,(a8), LD
// (C),A, and LD A,(C).
func registerLoadAbsolute() {
	DefineInstruction(0xEA, "LD (a16),A", func(c *CPU) { c.writeByte(c.fetch16(), c.A) })
	DefineInstruction(0xFA, "LD A,(a16)", func(c *CPU) { c.A = c.readByte(c.fetch16()) })

	DefineInstruction(0xE0, "LDH (a8),A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.fetch8()), c.A)
	})
	DefineInstruction(0xF0, "LDH A,(a8)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.fetch8()))
	})
	DefineInstruction(0xE2, "LD (C),A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A,(C)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	})
}
