package cpu

// Instruction is one entry of the base or CB-prefixed opcode table: a name
// for diagnostics and the closure that performs the operation against a
// CPU. Unlike the teacher's era that carries operand byte slices and cycle
// counts for a scheduler, this core has no timing model, so fn reads
// whatever immediate bytes it needs directly off the CPU during execution.
type Instruction struct {
	opcode uint8
	name   string
	fn     func(c *CPU)
}

// InstructionSet is the base, unprefixed 256-entry opcode table.
var InstructionSet [256]Instruction

// InstructionSetCB is the 256-entry table reached via the 0xCB prefix byte.
var InstructionSetCB [256]Instruction

func init() {
	for i := range InstructionSet {
		op := uint8(i)
		InstructionSet[i] = Instruction{opcode: op, name: "ILLEGAL", fn: func(c *CPU) { c.illegal(op, false) }}
	}
	for i := range InstructionSetCB {
		op := uint8(i)
		InstructionSetCB[i] = Instruction{opcode: op, name: "ILLEGAL_CB", fn: func(c *CPU) { c.illegal(op, true) }}
	}

	registerMisc()
	registerArithmetic()
	registerLogic()
	registerLoad()
	registerJump()
	registerRotate()
	registerCB()
}

// DefineInstruction registers fn as opcode's handler in the base table. It
// panics if opcode was already registered, to catch a mistyped opcode
// literal at init time rather than silently overwriting a prior definition.
func DefineInstruction(opcode uint8, name string, fn func(c *CPU)) {
	if InstructionSet[opcode].name != "ILLEGAL" {
		panic("cpu: opcode " + hex8(opcode) + " already registered as " + InstructionSet[opcode].name)
	}
	InstructionSet[opcode] = Instruction{opcode: opcode, name: name, fn: fn}
}

// DefineInstructionCB registers fn as opcode's handler in the CB-prefixed
// table.
func DefineInstructionCB(opcode uint8, name string, fn func(c *CPU)) {
	if InstructionSetCB[opcode].name != "ILLEGAL_CB" {
		panic("cpu: CB opcode " + hex8(opcode) + " already registered as " + InstructionSetCB[opcode].name)
	}
	InstructionSetCB[opcode] = Instruction{opcode: opcode, name: name, fn: fn}
}

// illegal traps execution on one of the handful of opcodes the LR35902
// never defines (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC,
// 0xFD). Real hardware locks the bus permanently; this core models that as
// an unrecoverable HALT plus a diagnostic log line instead of a panic, so a
// host loop can still report final state.
func (c *CPU) illegal(opcode uint8, cb bool) {
	c.halted = true
	if cb {
		c.Log.Warnf("cpu: illegal CB opcode %s at PC=%s; halting", hex8(opcode), hex16(c.PC))
		return
	}
	c.Log.Warnf("cpu: illegal opcode %s at PC=%s; halting", hex8(opcode), hex16(c.PC))
}

func hex8(v uint8) string  { return "0x" + hexDigits(uint16(v), 2) }
func hex16(v uint16) string { return "0x" + hexDigits(v, 4) }

func hexDigits(v uint16, width int) string {
	const digits = "0123456789ABCDEF"
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf)
}

// registerMisc wires the handful of opcodes that don't fit the arithmetic,
// logic, load, jump, or bit-manipulation families: NOP, STOP, HALT, DI, EI,
// and the four accumulator/flag-only operations DAA, CPL, SCF, CCF.
func registerMisc() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})

	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.fetch8() // STOP is followed by an ignored padding byte on real hardware.
		c.stopped = true
	})

	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.IME && c.b.InterruptPending() {
			// The HALT bug: the CPU never actually halts. original_source's
			// bug branch (src/cpu.cpp:943-950) leaves PC untouched here, so
			// this only arms haltBug; the doubled fetch happens on the
			// instruction that follows HALT, not on HALT itself.
			c.haltBug = true
			return
		}
		c.halted = true
	})

	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
		c.imePending = false
	})

	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.imePending = true
	})

	DefineInstruction(0x27, "DAA", func(c *CPU) {
		a := c.A
		adjust := uint8(0)
		carry := false
		if c.isFlagSet(FlagH) || (!c.isFlagSet(FlagN) && a&0x0F > 9) {
			adjust |= 0x06
		}
		if c.isFlagSet(FlagC) || (!c.isFlagSet(FlagN) && a > 0x99) {
			adjust |= 0x60
			carry = true
		}
		if c.isFlagSet(FlagN) {
			a -= adjust
		} else {
			a += adjust
		}
		c.A = a
		c.shouldZeroFlag(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry)
	})

	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagN, true)
		c.setFlag(FlagH, true)
	})

	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, true)
	})

	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, !c.isFlagSet(FlagC))
	})
}
