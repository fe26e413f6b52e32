// Package cpu implements the Sharp LR35902 instruction-stream interpreter:
// the register file, the four-bit flag word, the IME/HALT/STOP control
// latches, and the fetch/decode/execute loop that drives an
// github.com/bramwell/gbcore/internal/bus.Bus. Structure and naming are
// grounded on the teacher's internal/cpu package (NewCPU's register-pair
// wiring, the Instruction/DefineInstruction registration pattern, and the
// per-concern file split), trimmed to the Bus this core actually has — no
// PPU/APU/timer/DMA ticking, since those components are out of scope.
package cpu

import (
	"fmt"

	"github.com/bramwell/gbcore/internal/bus"
	"github.com/bramwell/gbcore/internal/hostlog"
	"github.com/bramwell/gbcore/internal/types"
)

// Register and RegisterPair are re-exported from internal/types so that CPU
// clients never need to import that package directly.
type Register = types.Register
type RegisterPair = types.RegisterPair

// CPU represents the Game Boy's processor. It is the exclusive owner of a
// Bus: no peripheral holds a back-reference to the CPU, matching the
// teacher's "Bus-CPU ownership" design note.
type CPU struct {
	PC uint16
	SP uint16

	types.Registers

	b *bus.Bus

	// IME is the master interrupt enable latch.
	IME bool
	// imePending is set by EI; IME becomes true at the end of the step
	// *following* the one that set it.
	imePending bool

	halted  bool
	stopped bool

	// haltBug is armed by HALT when it observes IME false with an interrupt
	// already pending. It makes the very next opcode fetch not advance PC,
	// so that opcode's byte is read again by the fetch after it — the
	// textbook doubled-next-instruction behavior of the HALT bug.
	haltBug bool

	Log hostlog.Logger

	// onFetch, if set, is called with every base opcode byte as it is
	// fetched (not for the CB second byte). Used by cmd/gbtrace to build an
	// opcode-frequency histogram without the CPU knowing anything about
	// plotting.
	onFetch func(opcode uint8)
}

// NewCPU creates a CPU bound to b, seeded with the documented post-boot-ROM
// state (PC=0x0100, SP=0xFFFE, A=0x01, F=0xB0, B=0x00, C=0x13, D=0x00,
// E=0xD8, H=0x01, L=0x4D, IME=false, halted=false).
func NewCPU(b *bus.Bus, log hostlog.Logger) *CPU {
	if log == nil {
		log = hostlog.NewNull()
	}
	c := &CPU{
		b:   b,
		Log: log,
		PC:  0x0100,
		SP:  0xFFFE,
	}
	// wire up the 16-bit register-pair views, exactly as the teacher's
	// NewCPU constructor does.
	c.BC = &RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &RegisterPair{High: &c.A, Low: &c.F}

	c.A = 0x01
	c.F = 0xB0
	c.C = 0x13
	c.E = 0xD8
	c.H = 0x01
	c.L = 0x4D

	return c
}

// LoadROM delegates to the Bus's ROM loader.
func (c *CPU) LoadROM(rom []byte) {
	c.b.LoadROM(rom)
}

// Peek performs a non-mutating Bus read, for host inspection.
func (c *CPU) Peek(addr uint16) uint8 {
	return c.b.Read(addr)
}

// IsHalted reports whether the CPU is in the HALT or STOP power state.
func (c *CPU) IsHalted() bool {
	return c.halted || c.stopped
}

// OnFetch installs a callback invoked with every fetched base opcode byte.
// Passing nil disables the callback. This has no effect on execution; it
// exists solely for cmd/gbtrace's opcode-frequency diagnostic.
func (c *CPU) OnFetch(fn func(opcode uint8)) {
	c.onFetch = fn
}

// registerPointer returns a pointer to the 8-bit register selected by the
// standard 3-bit register-index encoding (0=B,1=C,2=D,3=E,4=H,5=L,7=A). It
// panics for index 6, which always denotes memory at HL and must be handled
// by the caller via readOperand8/writeOperand8.
func (c *CPU) registerPointer(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("cpu: invalid register index %d", index))
}

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// readOperand8 returns the value of the 3-bit-encoded operand: the named
// register, or the byte at HL for index 6.
func (c *CPU) readOperand8(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerPointer(index)
}

// writeOperand8 stores value into the 3-bit-encoded operand.
func (c *CPU) writeOperand8(index uint8, value uint8) {
	if index == 6 {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerPointer(index) = value
}

// Step executes one unit of CPU work: interrupt service, a HALT/STOP poll,
// or one fetch-decode-execute cycle. If IME was armed by EI before this
// step, IME is committed at the end of it (the one-instruction EI delay).
func (c *CPU) Step() {
	pendingBefore := c.imePending

	if c.IME && c.hasInterrupt() {
		c.serviceInterrupt()
	} else if c.halted {
		if c.b.InterruptPending() {
			// Wake-only: clear halted without vectoring. The next Step
			// resumes ordinary fetch/decode/execute.
			c.halted = false
		}
	} else if c.stopped {
		// STOP has no defined exit in this core: real hardware only wakes
		// it via a joypad edge, and the joypad is an explicit Non-goal, so
		// a pending IE/IF interrupt never clears stopped.
	} else {
		opcode := c.fetch8()
		if c.onFetch != nil {
			c.onFetch(opcode)
		}
		c.execute(opcode)
	}

	if pendingBefore {
		c.IME = true
		c.imePending = false
	}
}

// hasInterrupt reports whether any enabled interrupt is currently requested.
func (c *CPU) hasInterrupt() bool {
	return c.b.InterruptPending()
}

// interruptVectors holds the fixed jump targets for the five interrupt
// sources, indexed by their bit position in IE/IF.
var interruptVectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// serviceInterrupt selects the lowest-set pending+enabled interrupt bit,
// clears IME, clears that bit in IF, pushes PC, and vectors to the fixed
// target. No instruction is decoded this Step.
func (c *CPU) serviceInterrupt() {
	pending := c.b.Read(bus.IE) & c.b.Read(bus.IF)
	for i := uint8(0); i < 5; i++ {
		if pending&(1<<i) == 0 {
			continue
		}
		c.IME = false
		c.b.Write(bus.IF, c.b.Read(bus.IF)&^(1<<i))
		c.push16(c.PC)
		c.PC = interruptVectors[i]
		return
	}
}

// execute runs the instruction identified by opcode, dispatching to the
// CB-prefixed table when opcode is 0xCB.
func (c *CPU) execute(opcode uint8) {
	var instr Instruction
	if opcode == 0xCB {
		instr = InstructionSetCB[c.fetch8()]
	} else {
		instr = InstructionSet[opcode]
	}
	instr.fn(c)
}

// fetch8 reads the byte at PC and advances PC by one, wrapping modulo 2^16.
// If haltBug is armed, this one fetch leaves PC untouched instead, so the
// byte just read is read again by the next fetch.
func (c *CPU) fetch8() uint8 {
	v := c.b.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return v
}

// fetch16 reads a little-endian 16-bit immediate and advances PC by two.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

// readByte performs a Bus read. Bus reads have no side effects; the serial
// observer only reacts to writes.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.b.Read(addr)
}

// writeByte performs a Bus write.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.b.Write(addr, value)
}

// push16 pushes a 16-bit value onto the stack, high byte first so that the
// low byte ends up at the lower address — a little-endian stack when paired
// with pop16.
func (c *CPU) push16(v uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

// pop16 pops a 16-bit value off the stack.
func (c *CPU) pop16() uint16 {
	lo := uint16(c.readByte(c.SP))
	c.SP++
	hi := uint16(c.readByte(c.SP))
	c.SP++
	return hi<<8 | lo
}
