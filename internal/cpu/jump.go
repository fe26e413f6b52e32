package cpu

// condNames and condTrue implement the four branch conditions shared by
// JP cc, JR cc, CALL cc, and RET cc: NZ, Z, NC, C, in that fixed encoding
// order.
var condNames = [4]string{"NZ", "Z", "NC", "C"}

func (c *CPU) condTrue(idx uint8) bool {
	switch idx {
	case 0:
		return !c.isFlagSet(FlagZ)
	case 1:
		return c.isFlagSet(FlagZ)
	case 2:
		return !c.isFlagSet(FlagC)
	case 3:
		return c.isFlagSet(FlagC)
	}
	panic("cpu: invalid condition index")
}

// registerJump wires every control-flow opcode: unconditional and
// conditional JP/JR/CALL/RET, JP (HL), RETI, and the eight fixed-target RST
// opcodes.
func registerJump() {
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.PC = c.fetch16()
	})
	DefineInstruction(0xE9, "JP (HL)", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0x18, "JR r8", func(c *CPU) {
		offset := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(offset))
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		target := c.fetch16()
		c.push16(c.PC)
		c.PC = target
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.PC = c.pop16()
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.PC = c.pop16()
		c.IME = true
		c.imePending = false
	})

	jpBases := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	jrBases := [4]uint8{0x20, 0x28, 0x30, 0x38}
	callBases := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	retBases := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}

	for i := 0; i < 4; i++ {
		idx := uint8(i)
		name := condNames[i]

		DefineInstruction(jpBases[i], "JP "+name+",a16", func(c *CPU) {
			target := c.fetch16()
			if c.condTrue(idx) {
				c.PC = target
			}
		})

		DefineInstruction(jrBases[i], "JR "+name+",r8", func(c *CPU) {
			offset := int8(c.fetch8())
			if c.condTrue(idx) {
				c.PC = uint16(int32(c.PC) + int32(offset))
			}
		})

		DefineInstruction(callBases[i], "CALL "+name+",a16", func(c *CPU) {
			target := c.fetch16()
			if c.condTrue(idx) {
				c.push16(c.PC)
				c.PC = target
			}
		})

		DefineInstruction(retBases[i], "RET "+name, func(c *CPU) {
			if c.condTrue(idx) {
				c.PC = c.pop16()
			}
		})
	}

	rstTargets := [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	for i, target := range rstTargets {
		op := uint8(0xC7 + 8*i)
		t := target
		DefineInstruction(op, "RST "+hex8(uint8(t)), func(c *CPU) {
			c.push16(c.PC)
			c.PC = t
		})
	}
}
