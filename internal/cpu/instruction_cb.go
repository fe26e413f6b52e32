package cpu

// registerCB wires the entire 256-entry CB-prefixed table. The table is laid
// out by the hardware itself as four dense 64-entry blocks (rotates/shifts/
// SWAP, then BIT, RES and SET), each a function of an 8-wide register-or-(HL)
// operand and (for the last three blocks) a 3-bit bit index, so a handful of
// loops covers all 256 opcodes instead of 256 literal DefineInstructionCB
// calls.
func registerCB() {
	plain := []struct {
		base uint8
		name string
		fn   func(v uint8) (uint8, bool)
	}{
		{0x00, "RLC ", rlc},
		{0x08, "RRC ", rrc},
		{0x20, "SLA ", sla},
		{0x28, "SRA ", sra},
		{0x38, "SRL ", srl},
	}
	for _, g := range plain {
		g := g
		for i := 0; i < 8; i++ {
			idx := uint8(i)
			op := g.base + idx
			DefineInstructionCB(op, g.name+registerNames[idx], func(c *CPU) {
				res, carry := g.fn(c.readOperand8(idx))
				c.writeOperand8(idx, res)
				c.shouldZeroFlag(res)
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, false)
				c.setFlag(FlagC, carry)
			})
		}
	}

	throughCarry := []struct {
		base uint8
		name string
		fn   func(v uint8, carryIn bool) (uint8, bool)
	}{
		{0x10, "RL ", rl},
		{0x18, "RR ", rr},
	}
	for _, g := range throughCarry {
		g := g
		for i := 0; i < 8; i++ {
			idx := uint8(i)
			op := g.base + idx
			DefineInstructionCB(op, g.name+registerNames[idx], func(c *CPU) {
				res, carry := g.fn(c.readOperand8(idx), c.isFlagSet(FlagC))
				c.writeOperand8(idx, res)
				c.shouldZeroFlag(res)
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, false)
				c.setFlag(FlagC, carry)
			})
		}
	}

	for i := 0; i < 8; i++ {
		idx := uint8(i)
		op := uint8(0x30 + i)
		DefineInstructionCB(op, "SWAP "+registerNames[idx], func(c *CPU) {
			res := swap(c.readOperand8(idx))
			c.writeOperand8(idx, res)
			c.shouldZeroFlag(res)
			c.setFlag(FlagN, false)
			c.setFlag(FlagH, false)
			c.setFlag(FlagC, false)
		})
	}

	for bit := uint8(0); bit < 8; bit++ {
		for i := 0; i < 8; i++ {
			idx := uint8(i)
			b := bit

			bitOp := 0x40 + 8*bit + idx
			DefineInstructionCB(bitOp, "BIT "+bitName(b)+","+registerNames[idx], func(c *CPU) {
				v := c.readOperand8(idx)
				c.setFlag(FlagZ, !testBit(v, b))
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, true)
			})

			resOp := 0x80 + 8*bit + idx
			DefineInstructionCB(resOp, "RES "+bitName(b)+","+registerNames[idx], func(c *CPU) {
				c.writeOperand8(idx, clearBit(c.readOperand8(idx), b))
			})

			setOp := 0xC0 + 8*bit + idx
			DefineInstructionCB(setOp, "SET "+bitName(b)+","+registerNames[idx], func(c *CPU) {
				c.writeOperand8(idx, setBit(c.readOperand8(idx), b))
			})
		}
	}
}

func bitName(n uint8) string {
	return string([]byte{'0' + n})
}
