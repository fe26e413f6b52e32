package cpu

// rlc rotates v left by one bit, carrying the bit that fell off the top
// back into bit 0 and reporting it as the new carry.
func rlc(v uint8) (result uint8, carryOut bool) {
	carryOut = v&0x80 != 0
	result = v << 1
	if carryOut {
		result |= 0x01
	}
	return result, carryOut
}

// rl rotates v left by one bit through carryIn: the bit that falls off the
// top becomes the new carry, and carryIn is shifted into bit 0.
func rl(v uint8, carryIn bool) (result uint8, carryOut bool) {
	carryOut = v&0x80 != 0
	result = v << 1
	if carryIn {
		result |= 0x01
	}
	return result, carryOut
}

// rrc rotates v right by one bit, carrying the bit that fell off the bottom
// back into bit 7 and reporting it as the new carry.
func rrc(v uint8) (result uint8, carryOut bool) {
	carryOut = v&0x01 != 0
	result = v >> 1
	if carryOut {
		result |= 0x80
	}
	return result, carryOut
}

// rr rotates v right by one bit through carryIn.
func rr(v uint8, carryIn bool) (result uint8, carryOut bool) {
	carryOut = v&0x01 != 0
	result = v >> 1
	if carryIn {
		result |= 0x80
	}
	return result, carryOut
}

// registerRotate wires the four accumulator-only rotate opcodes. Unlike
// their CB-prefixed RLC/RL/RRC/RR siblings, these always clear the Z flag
// regardless of the result, matching real hardware despite how easy it is
// to mis-transcribe them as sharing the CB forms' shouldZeroFlag behavior.
func registerRotate() {
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		res, carry := rlc(c.A)
		c.A = res
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		res, carry := rl(c.A, c.isFlagSet(FlagC))
		c.A = res
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		res, carry := rrc(c.A)
		c.A = res
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		res, carry := rr(c.A, c.isFlagSet(FlagC))
		c.A = res
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry)
	})
}
