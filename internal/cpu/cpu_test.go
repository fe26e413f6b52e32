package cpu

import (
	"testing"

	"github.com/bramwell/gbcore/internal/bus"
)

// newTestCPU returns a CPU over a fresh Bus with PC reset to 0 so tests can
// place instructions at known addresses rather than the post-boot 0x0100.
func newTestCPU() *CPU {
	b := bus.New(nil)
	c := NewCPU(b, nil)
	c.PC = 0
	c.SP = 0xFFFE
	return c
}

// loadAndStep (re)loads code at address 0, resets PC to 0, and executes
// exactly one Step. Each call is independent of any prior one: callers that
// need a sequence of instructions to interact (e.g. a push followed by a
// later pop) rely on Bus/register state outliving the reload, not on PC
// continuity across calls.
func (c *CPU) loadAndStep(code ...uint8) {
	c.LoadROM(code)
	c.PC = 0
	c.Step()
}

func TestNOPAdvancesPCByOne(t *testing.T) {
	c := newTestCPU()
	c.loadAndStep(0x00)
	if c.PC != 1 {
		t.Errorf("expected PC=1 after NOP, got %#04x", c.PC)
	}
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c := newTestCPU()
	c.setFlag(FlagZ, true)
	c.setFlag(FlagC, true)
	if c.F&0x0F != 0 {
		t.Errorf("expected low nibble of F to stay zero, got %#02x", c.F)
	}
}

// serialOut exposes the Bus's serial log through the CPU for this package's
// tests, which otherwise have no accessor for the unexported bus field.
func (c *CPU) serialOut() string {
	return c.b.SerialString()
}

func TestHelloWorldSerialLoop(t *testing.T) {
	c := newTestCPU()
	msg := "Hi"
	// LD HL,msgAddr ; loop: LD A,(HL+) ; OR A ; JR Z,done ; LD (0xFF01),A ;
	// LD A,0x81 ; LD (0xFF02),A ; JR loop ; done: HALT
	code := []byte{
		0x21, 0x10, 0x01, // 0x00: LD HL,0x0110
		0x2A,             // 0x03: LD A,(HL+)   <- loop
		0xB7,             // 0x04: OR A
		0x28, 0x0A,       // 0x05: JR Z,+10      -> 0x11 (HALT)
		0xEA, 0x01, 0xFF, // 0x07: LD (0xFF01),A
		0x3E, 0x81, // 0x0A: LD A,0x81
		0xEA, 0x02, 0xFF, // 0x0C: LD (0xFF02),A
		0x18, 0xF2, // 0x0F: JR -14           -> 0x03 (loop)
		0x76, // 0x11: HALT
	}
	rom := make([]byte, 0x113)
	copy(rom, code)
	copy(rom[0x110:], msg)
	c.LoadROM(rom)

	for i := 0; i < 10000 && !c.IsHalted(); i++ {
		c.Step()
	}
	if !c.IsHalted() {
		t.Fatalf("expected CPU to reach HALT")
	}
	if got := c.serialOut(); got != msg {
		t.Errorf("expected serial output %q, got %q", msg, got)
	}
}

func TestCallAndReturnIsLIFO(t *testing.T) {
	c := newTestCPU()
	code := []byte{
		0xCD, 0x06, 0x00, // CALL 0x0006
		0x3E, 0x42, // LD A,0x42 (landing pad after RET)
		0x76,       // HALT
		0x3E, 0x01, // 0x0006: LD A,0x01
		0xC9, // RET
	}
	c.LoadROM(code)
	for i := 0; i < 10 && !c.IsHalted(); i++ {
		c.Step()
	}
	if c.A != 0x42 {
		t.Errorf("expected A=0x42 after call/return, got %#02x", c.A)
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP restored to 0xFFFE, got %#04x", c.SP)
	}
}

func TestJRBackwardBranch(t *testing.T) {
	c := newTestCPU()
	// 0x00: INC B ; 0x01: JR -3 (back to INC B) forever; we just single-step
	// three times and check B incremented each full loop.
	code := []byte{0x04, 0x18, 0xFD}
	c.LoadROM(code)
	c.Step() // INC B -> B=1, PC=1
	c.Step() // JR -3 -> PC=0
	if c.PC != 0 {
		t.Errorf("expected backward JR to return PC to 0, got %#04x", c.PC)
	}
	if c.B != 1 {
		t.Errorf("expected B=1, got %d", c.B)
	}
	c.Step() // INC B again
	if c.B != 2 {
		t.Errorf("expected B=2 after second pass, got %d", c.B)
	}
}

func TestInterruptVectoring(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0x00}) // NOP at 0x0000
	c.PC = 0x0200
	c.IME = true
	c.b.Write(bus.IE, 0x01) // VBlank enabled
	c.b.Write(bus.IF, 0x01) // VBlank requested

	c.Step()

	if c.PC != 0x0040 {
		t.Errorf("expected vector to 0x0040, got %#04x", c.PC)
	}
	if c.IME {
		t.Errorf("expected IME cleared after entering the handler")
	}
	if c.b.Read(bus.IF)&0x01 != 0 {
		t.Errorf("expected IF bit 0 cleared")
	}
	if c.pop16() != 0x0200 {
		t.Errorf("expected return address 0x0200 pushed to the stack")
	}
}

func TestHaltWakesWithoutVectoringWhenIMEFalse(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0x76, 0x00}) // HALT; NOP
	c.IME = false
	c.b.Write(bus.IE, 0x00) // not yet enabled/pending
	c.Step()                // HALT
	if !c.IsHalted() {
		t.Fatalf("expected CPU to be halted")
	}

	c.b.Write(bus.IE, 0x01)
	c.b.Write(bus.IF, 0x01)
	c.Step() // wakes but IME is false, so no vectoring occurs this Step
	if c.IsHalted() {
		t.Errorf("expected CPU to wake once an interrupt is pending")
	}
	if c.PC != 0x0001 {
		t.Errorf("expected PC to resume at the instruction after HALT, got %#04x", c.PC)
	}
}

func TestHaltBugDoublesTheFollowingInstruction(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0x76, 0x04}) // HALT; INC B
	c.IME = false
	c.b.Write(bus.IE, 0x01)
	c.b.Write(bus.IF, 0x01) // interrupt already pending when HALT executes

	c.Step() // HALT opcode observes IME false + pending interrupt: the bug
	if c.IsHalted() {
		t.Errorf("expected the HALT bug path to not actually halt")
	}
	if c.PC != 1 {
		t.Errorf("expected PC to advance past HALT normally, got %#04x", c.PC)
	}

	c.Step() // first execution of INC B; this fetch doesn't advance PC
	if c.B != 1 {
		t.Errorf("expected B incremented once, got %d", c.B)
	}
	if c.PC != 1 {
		t.Errorf("expected PC to stay on the doubled instruction, got %#04x", c.PC)
	}

	c.Step() // second execution of INC B, fetched and advanced normally now
	if c.B != 2 {
		t.Errorf("expected B incremented twice from the HALT bug doubling, got %d", c.B)
	}
	if c.PC != 2 {
		t.Errorf("expected PC to advance past INC B this time, got %#04x", c.PC)
	}
}

func TestStopNeverWakesOnPendingInterrupt(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0x10, 0x00, 0x00}) // STOP (padding byte) ; NOP
	c.Step()                            // STOP
	if !c.IsHalted() {
		t.Fatalf("expected CPU to be stopped")
	}

	c.b.Write(bus.IE, 0x01)
	c.b.Write(bus.IF, 0x01) // a pending interrupt must never wake STOP
	c.Step()
	if !c.stopped {
		t.Errorf("expected STOP to remain asleep despite a pending interrupt")
	}
	if c.PC != 2 {
		t.Errorf("expected PC to stay put while stopped, got %#04x", c.PC)
	}
}

func TestEIDelaysOneInstruction(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0xFB, 0x00, 0x00}) // EI; NOP; NOP
	c.b.Write(bus.IE, 0x01)
	c.b.Write(bus.IF, 0x01)

	c.Step() // EI: imePending set, IME still false
	if c.IME {
		t.Errorf("expected IME to still be false immediately after EI")
	}
	c.Step() // the instruction after EI: IME becomes true at the end of this step
	if !c.IME {
		t.Errorf("expected IME true after the instruction following EI")
	}
}

func TestRETIEnablesIMEImmediately(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0xD9}) // RETI
	c.push16(0x1234)
	c.Step()
	if !c.IME {
		t.Errorf("expected RETI to set IME with no delay")
	}
	if c.PC != 0x1234 {
		t.Errorf("expected RETI to pop return address, got %#04x", c.PC)
	}
}

func TestIllegalOpcodeHalts(t *testing.T) {
	c := newTestCPU()
	c.LoadROM([]byte{0xD3})
	c.Step()
	if !c.IsHalted() {
		t.Errorf("expected an illegal opcode to halt the CPU")
	}
}

func TestSerialStopRequestedSurfacesThroughBus(t *testing.T) {
	c := newTestCPU()
	code := []byte{
		0x3E, 'f', // LD A,'f'
		0xEA, 0x01, 0xFF, // LD (0xFF01),A
		0x3E, 0x81, // LD A,0x81
		0xEA, 0x02, 0xFF, // LD (0xFF02),A
		0x76, // HALT
	}
	c.LoadROM(code)
	for i := 0; i < 20 && !c.IsHalted(); i++ {
		c.Step()
	}
	if !c.b.SerialStopRequested {
		t.Errorf("expected SerialStopRequested once 'f' is published")
	}
}
