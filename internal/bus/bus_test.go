package bus

import "testing"

func newTestBus() *Bus {
	return New(nil)
}

func TestLoadROMTruncates(t *testing.T) {
	b := newTestBus()
	rom := make([]byte, 0x9000)
	for i := range rom {
		rom[i] = 0x42
	}
	b.LoadROM(rom)

	if b.Read(0x7FFF) != 0x42 {
		t.Errorf("expected last ROM byte to be loaded")
	}
	if b.Read(0x8000) != 0x00 {
		t.Errorf("expected VRAM to be untouched by an oversized ROM load, got %#02x", b.Read(0x8000))
	}
}

func TestROMIsWriteProtected(t *testing.T) {
	b := newTestBus()
	b.LoadROM([]byte{0xAA, 0xBB})
	b.Write(0x0100, 0xFF)
	if b.Read(0x0100) != 0x00 {
		t.Errorf("expected write to ROM to be dropped, got %#02x", b.Read(0x0100))
	}
}

func TestRAMEnableLatch(t *testing.T) {
	b := newTestBus()
	if b.Read(0xA000) != 0xFF {
		t.Errorf("expected disabled external RAM to read 0xFF, got %#02x", b.Read(0xA000))
	}

	b.Write(0xA000, 0x55)
	if b.Read(0xA000) != 0xFF {
		t.Errorf("expected write to disabled external RAM to be dropped")
	}

	b.Write(0x0000, 0x0A) // enable
	if !b.ramEnabled {
		t.Fatalf("expected ramEnabled to be set")
	}
	b.Write(0xA000, 0x55)
	if got := b.Read(0xA000); got != 0x55 {
		t.Errorf("expected external RAM write to stick once enabled, got %#02x", got)
	}

	b.Write(0x0000, 0x00) // disable
	if b.Read(0xA000) != 0xFF {
		t.Errorf("expected external RAM to read 0xFF once disabled again")
	}
}

func TestRAMEnableByteIsNotStored(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x0A)
	if b.Read(0x0000) != 0x00 {
		t.Errorf("expected the RAM-enable byte itself to never be stored, got %#02x", b.Read(0x0000))
	}
}

func TestWorkRAMEchoRange(t *testing.T) {
	b := newTestBus()
	b.Write(0xC010, 0x77)
	if got := b.Read(0xE010); got != 0x77 {
		t.Errorf("expected echo range to mirror work RAM, got %#02x", got)
	}

	b.Write(0xE020, 0x88)
	if got := b.Read(0xC020); got != 0x88 {
		t.Errorf("expected writes through the echo range to reach work RAM, got %#02x", got)
	}
}

func TestSerialObserverPublishesByte(t *testing.T) {
	b := newTestBus()
	b.Write(SB, 'H')
	b.Write(SC, 0x81)

	if got := b.SerialString(); got != "H" {
		t.Errorf("expected serial log %q, got %q", "H", got)
	}
	if b.Read(SC) != 0x00 {
		t.Errorf("expected SC to be cleared after publishing, got %#02x", b.Read(SC))
	}
}

func TestSerialObserverIgnoresControlWithoutBothBits(t *testing.T) {
	b := newTestBus()
	b.Write(SB, 'x')
	b.Write(SC, 0x01) // bit 7 (internal clock) missing

	if len(b.SerialLog) != 0 {
		t.Errorf("expected no publish without bit 7 set")
	}
}

func TestSerialStopRequestedOnFailureChar(t *testing.T) {
	b := newTestBus()
	b.Write(SB, 'f')
	b.Write(SC, 0x81)

	if !b.SerialStopRequested {
		t.Errorf("expected SerialStopRequested to be set after observing 'f'")
	}
}

func TestInterruptPending(t *testing.T) {
	b := newTestBus()
	if b.InterruptPending() {
		t.Errorf("expected no pending interrupt on a fresh Bus")
	}
	b.Write(IE, 0x01)
	b.Write(IF, 0x01)
	if !b.InterruptPending() {
		t.Errorf("expected a pending interrupt once IE and IF share a set bit")
	}
}

func TestHighRAMAndOAMAreIndependent(t *testing.T) {
	b := newTestBus()
	b.Write(0xFF80, 0x01)
	b.Write(0xFE00, 0x02)
	if b.Read(0xFF80) != 0x01 || b.Read(0xFE00) != 0x02 {
		t.Errorf("expected high RAM and OAM to be independently addressable")
	}
}
