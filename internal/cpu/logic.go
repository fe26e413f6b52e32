package cpu

// registerLogic wires the 0xA0-0xBF register-operand AND/XOR/OR/CP block and
// their four immediate-operand counterparts.
func registerLogic() {
	groups := []struct {
		base uint8
		name string
		fn   func(c *CPU, v uint8)
	}{
		{0xA0, "AND ", (*CPU).and},
		{0xA8, "XOR ", (*CPU).xor},
		{0xB0, "OR ", (*CPU).or},
		{0xB8, "CP ", (*CPU).cp},
	}
	for _, g := range groups {
		g := g
		for i := 0; i < 8; i++ {
			idx := uint8(i)
			op := g.base + idx
			DefineInstruction(op, g.name+registerNames[idx], func(c *CPU) {
				g.fn(c, c.readOperand8(idx))
			})
		}
	}

	immediates := []struct {
		op   uint8
		name string
		fn   func(c *CPU, v uint8)
	}{
		{0xE6, "AND d8", (*CPU).and},
		{0xEE, "XOR d8", (*CPU).xor},
		{0xF6, "OR d8", (*CPU).or},
		{0xFE, "CP d8", (*CPU).cp},
	}
	for _, im := range immediates {
		im := im
		DefineInstruction(im.op, im.name, func(c *CPU) {
			im.fn(c, c.fetch8())
		})
	}
}

// and, or, and xor all clear N and C; AND sets H, OR and XOR clear it.
func (c *CPU) and(v uint8) {
	c.A &= v
	c.shouldZeroFlag(c.A)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
	c.setFlag(FlagC, false)
}

func (c *CPU) or(v uint8) {
	c.A |= v
	c.shouldZeroFlag(c.A)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func (c *CPU) xor(v uint8) {
	c.A ^= v
	c.shouldZeroFlag(c.A)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

// cp compares A against v using the same flag computation as SUB (no carry
// flag folded in), but discards the result instead of storing it into A.
func (c *CPU) cp(v uint8) {
	c.subFromA(v, false)
}
