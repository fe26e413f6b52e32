package cpu

// registerArithmetic wires every opcode whose result is computed by integer
// addition or subtraction: INC/DEC on 8-bit operands and register pairs,
// ADD/ADC/SUB/SBC/CP's ADD-family siblings, 16-bit ADD HL,rr and ADD SP,r8,
// LD HL,SP+r8 (which shares ADD SP,r8's flag computation), and the stack
// PUSH/POP pair. Register-indexed groups are wired with a loop over the
// standard 3-bit operand encoding rather than eight literal DefineInstruction
// calls apiece, mirroring the teacher's generateLoadRegisterToRegisterInstructions
// approach to the same repetition.
func registerArithmetic() {
	for i := 0; i < 8; i++ {
		idx := uint8(i)
		name := registerNames[idx]

		incOp := uint8(0x04 + 8*i)
		DefineInstruction(incOp, "INC "+name, func(c *CPU) {
			v := c.readOperand8(idx)
			res := v + 1
			c.setFlag(FlagH, v&0x0F == 0x0F)
			c.writeOperand8(idx, res)
			c.shouldZeroFlag(res)
			c.setFlag(FlagN, false)
		})

		decOp := uint8(0x05 + 8*i)
		DefineInstruction(decOp, "DEC "+name, func(c *CPU) {
			v := c.readOperand8(idx)
			res := v - 1
			c.setFlag(FlagH, v&0x0F == 0x00)
			c.writeOperand8(idx, res)
			c.shouldZeroFlag(res)
			c.setFlag(FlagN, true)
		})
	}

	pairs := []struct {
		name string
		get  func(c *CPU) *RegisterPair
		sp   bool
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }, false},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }, false},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }, false},
		{"SP", nil, true},
	}
	incBases := []uint8{0x03, 0x13, 0x23, 0x33}
	decBases := []uint8{0x0B, 0x1B, 0x2B, 0x3B}
	addHLBases := []uint8{0x09, 0x19, 0x29, 0x39}

	for i, p := range pairs {
		p := p
		DefineInstruction(incBases[i], "INC "+p.name, func(c *CPU) {
			if p.sp {
				c.SP++
				return
			}
			p.get(c).SetUint16(p.get(c).Uint16() + 1)
		})
		DefineInstruction(decBases[i], "DEC "+p.name, func(c *CPU) {
			if p.sp {
				c.SP--
				return
			}
			p.get(c).SetUint16(p.get(c).Uint16() - 1)
		})
		DefineInstruction(addHLBases[i], "ADD HL,"+p.name, func(c *CPU) {
			hl := c.HL.Uint16()
			var operand uint16
			if p.sp {
				operand = c.SP
			} else {
				operand = p.get(c).Uint16()
			}
			sum := uint32(hl) + uint32(operand)
			c.setFlag(FlagH, (hl&0x0FFF)+(operand&0x0FFF) > 0x0FFF)
			c.setFlag(FlagC, sum > 0xFFFF)
			c.HL.SetUint16(uint16(sum))
			c.setFlag(FlagN, false)
		})
	}

	DefineInstruction(0xE8, "ADD SP,r8", func(c *CPU) {
		sp := c.SP
		offset := int8(c.fetch8())
		result, half, carry := addSigned(sp, offset)
		c.SP = result
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, half)
		c.setFlag(FlagC, carry)
	})

	DefineInstruction(0xF8, "LD HL,SP+r8", func(c *CPU) {
		sp := c.SP
		offset := int8(c.fetch8())
		result, half, carry := addSigned(sp, offset)
		c.HL.SetUint16(result)
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, half)
		c.setFlag(FlagC, carry)
	})

	registerPushPop()
	registerALU()
}

// addSigned computes base + int16(offset) the way ADD SP,r8 and LD HL,SP+r8
// do: the half-carry and carry flags are derived from the low byte of base
// added to the unsigned byte pattern of offset, exactly as the 8-bit ADD
// flag rules, even though the result itself sign-extends offset across all
// 16 bits.
func addSigned(base uint16, offset int8) (result uint16, half, carry bool) {
	o := uint16(int32(offset))
	result = base + o
	lowSum := uint32(base&0xFF) + uint32(uint8(offset))
	half = (base&0x0F)+(uint16(uint8(offset))&0x0F) > 0x0F
	carry = lowSum > 0xFF
	return result, half, carry
}

// registerPushPop wires the four PUSH/POP register-pair opcodes. POP AF
// masks the low nibble of F to zero even though a popped byte might have
// garbage there, matching the always-zero low nibble invariant.
func registerPushPop() {
	type pair struct {
		name string
		get  func(c *CPU) *RegisterPair
		push uint8
		pop  uint8
	}
	pairs := []pair{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }, 0xC5, 0xC1},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }, 0xD5, 0xD1},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }, 0xE5, 0xE1},
		{"AF", func(c *CPU) *RegisterPair { return c.AF }, 0xF5, 0xF1},
	}
	for _, p := range pairs {
		p := p
		DefineInstruction(p.push, "PUSH "+p.name, func(c *CPU) {
			c.push16(p.get(c).Uint16())
		})
		DefineInstruction(p.pop, "POP "+p.name, func(c *CPU) {
			v := c.pop16()
			if p.name == "AF" {
				v &= 0xFFF0
			}
			p.get(c).SetUint16(v)
		})
	}
}

// registerALU wires the 0x80-0x9F register-operand ADD/ADC/SUB/SBC block
// plus their four immediate-operand counterparts.
func registerALU() {
	groups := []struct {
		base      uint8
		name      string
		sub       bool
		withCarry bool
	}{
		{0x80, "ADD A,", false, false},
		{0x88, "ADC A,", false, true},
		{0x90, "SUB ", true, false},
		{0x98, "SBC A,", true, true},
	}
	for _, g := range groups {
		g := g
		for i := 0; i < 8; i++ {
			idx := uint8(i)
			op := g.base + idx
			DefineInstruction(op, g.name+registerNames[idx], func(c *CPU) {
				v := c.readOperand8(idx)
				if g.sub {
					c.A = c.subFromA(v, g.withCarry)
				} else {
					c.addToA(v, g.withCarry)
				}
			})
		}
	}

	immediates := []struct {
		op        uint8
		name      string
		sub       bool
		withCarry bool
	}{
		{0xC6, "ADD A,d8", false, false},
		{0xCE, "ADC A,d8", false, true},
		{0xD6, "SUB d8", true, false},
		{0xDE, "SBC A,d8", true, true},
	}
	for _, im := range immediates {
		im := im
		DefineInstruction(im.op, im.name, func(c *CPU) {
			v := c.fetch8()
			if im.sub {
				c.A = c.subFromA(v, im.withCarry)
			} else {
				c.addToA(v, im.withCarry)
			}
		})
	}
}

// addToA adds v (plus the carry flag, if withCarry) into A, setting Z/H/C
// and clearing N.
func (c *CPU) addToA(v uint8, withCarry bool) {
	carryIn := uint16(0)
	if withCarry && c.isFlagSet(FlagC) {
		carryIn = 1
	}
	a := c.A
	sum := uint16(a) + uint16(v) + carryIn
	c.setFlag(FlagH, (a&0x0F)+(v&0x0F)+uint8(carryIn) > 0x0F)
	c.setFlag(FlagC, sum > 0xFF)
	c.A = uint8(sum)
	c.shouldZeroFlag(c.A)
	c.setFlag(FlagN, false)
}

// subFromA computes A - v (minus the carry flag, if withCarry), setting
// Z/H/C and N, and returns the result without storing it — CP reuses this to
// compare without mutating A.
func (c *CPU) subFromA(v uint8, withCarry bool) uint8 {
	carryIn := uint8(0)
	if withCarry && c.isFlagSet(FlagC) {
		carryIn = 1
	}
	a := c.A
	result := a - v - carryIn
	half := (a & 0x0F) < (v&0x0F)+carryIn
	full := uint16(a) < uint16(v)+uint16(carryIn)
	c.setFlag(FlagH, half)
	c.setFlag(FlagC, full)
	c.setFlag(FlagN, true)
	c.shouldZeroFlag(result)
	return result
}
