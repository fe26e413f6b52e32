// Package bus implements the Game Boy's 64 KiB byte-addressable memory map:
// work RAM, a staging area for the cartridge ROM, external cartridge RAM
// gated by a RAM-enable latch, and the memory-mapped I/O region. It resolves
// every CPU-visible address and enforces ROM write-protection; the CPU is
// the only component that executes reads and writes against it (host tools
// only load the ROM and poll the serial and interrupt state), mirroring the
// ownership model of the teacher's internal/mmu package (trimmed to the
// ranges this core models — no PPU/APU/timer delegate, no cartridge bank
// switching).
package bus

import "github.com/bramwell/gbcore/internal/hostlog"

const (
	// romEnd is the last address backed by the flat ROM staging area.
	romEnd = 0x7FFF
	// ramEnableEnd is the last address of the RAM-enable gate range.
	ramEnableEnd = 0x1FFF

	vramStart, vramEnd   = 0x8000, 0x9FFF
	extRAMStart, extRAMEnd = 0xA000, 0xBFFF
	wramStart, wramEnd   = 0xC000, 0xDFFF
	echoStart, echoEnd   = 0xE000, 0xFDFF
	oamStart, oamEnd     = 0xFE00, 0xFE9F
	unusedStart, unusedEnd = 0xFEA0, 0xFEFF
	ioStart, ioEnd       = 0xFF00, 0xFF7F
	hramStart, hramEnd   = 0xFF80, 0xFFFE

	// SB and SC are the serial data and serial control I/O registers.
	SB = 0xFF01
	SC = 0xFF02
	// IF is the interrupt-flag register.
	IF = 0xFF0F
	// IE is the interrupt-enable register.
	IE = 0xFFFF
)

// Bus is the Game Boy's 64 KiB address space.
type Bus struct {
	rom    [0x8000]byte // 0x0000-0x7FFF, cartridge ROM staging area (read-only)
	vram   [0x2000]byte // 0x8000-0x9FFF
	extRAM [0x2000]byte // 0xA000-0xBFFF, gated by ramEnabled
	wram   [0x2000]byte // 0xC000-0xDFFF, mirrored at 0xE000-0xFDFF
	oam    [0x100]byte  // 0xFE00-0xFEFF (OAM + the unusable range, both plain RAM)
	io     [0x80]byte   // 0xFF00-0xFF7F
	hram   [0x80]byte   // 0xFF80-0xFFFE
	ie     byte         // 0xFFFF

	ramEnabled bool

	// SerialLog accumulates every byte the core has written to SB (0xFF01)
	// while requesting a transfer via SC (0xFF02), in the order they were
	// sent. It is the authoritative test oracle for Blargg-style test ROMs.
	SerialLog []byte

	// SerialStopRequested is set when the serial observer sees the
	// character 'f' — the first letter of the "Failed" a test ROM prints on
	// failure. It gives a host loop a termination signal distinct from
	// HALT, matching original_source/src/memory.cpp's Memory::write.
	SerialStopRequested bool

	Log hostlog.Logger
}

// New returns a zero-filled Bus.
func New(log hostlog.Logger) *Bus {
	if log == nil {
		log = hostlog.NewNull()
	}
	return &Bus{Log: log}
}

// LoadROM copies min(len(rom), 0x8000) bytes of rom into addresses
// 0x0000-0x7FFF. Any remaining ROM space keeps its previous contents (zero,
// for a freshly constructed Bus).
func (b *Bus) LoadROM(rom []byte) {
	n := len(rom)
	if n > len(b.rom) {
		n = len(b.rom)
	}
	copy(b.rom[:n], rom[:n])
}

// Read returns the byte at addr, applying the range semantics of the memory
// map. It never fails: the address type is 16-bit, so out-of-bounds access
// cannot occur.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= romEnd:
		return b.rom[addr]
	case addr >= vramStart && addr <= vramEnd:
		return b.vram[addr-vramStart]
	case addr >= extRAMStart && addr <= extRAMEnd:
		if !b.ramEnabled {
			return 0xFF
		}
		return b.extRAM[addr-extRAMStart]
	case addr >= wramStart && addr <= wramEnd:
		return b.wram[addr-wramStart]
	case addr >= echoStart && addr <= echoEnd:
		return b.wram[addr-echoStart]
	case addr >= oamStart && addr <= unusedEnd:
		return b.oam[addr-oamStart]
	case addr == IE:
		return b.ie
	case addr >= ioStart && addr <= ioEnd:
		return b.io[addr-ioStart]
	case addr >= hramStart && addr <= hramEnd:
		return b.hram[addr-hramStart]
	default:
		return 0xFF
	}
}

// Write stores value at addr, applying the range semantics of the memory
// map: writes to ROM are dropped, writes to disabled external RAM are
// dropped, and a write to 0x0000-0x1FFF instead sets the RAM-enable latch
// and is never stored as data.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr <= ramEnableEnd:
		b.ramEnabled = value&0x0F == 0x0A
	case addr <= romEnd:
		// ROM is read-only; the write is silently dropped.
	case addr >= vramStart && addr <= vramEnd:
		b.vram[addr-vramStart] = value
	case addr >= extRAMStart && addr <= extRAMEnd:
		if b.ramEnabled {
			b.extRAM[addr-extRAMStart] = value
		}
	case addr >= wramStart && addr <= wramEnd:
		b.wram[addr-wramStart] = value
	case addr >= echoStart && addr <= echoEnd:
		b.wram[addr-echoStart] = value
	case addr >= oamStart && addr <= unusedEnd:
		b.oam[addr-oamStart] = value
	case addr == IE:
		b.ie = value
	case addr == SC:
		b.io[addr-ioStart] = value
		b.observeSerial(value)
	case addr >= ioStart && addr <= ioEnd:
		b.io[addr-ioStart] = value
	case addr >= hramStart && addr <= hramEnd:
		b.hram[addr-hramStart] = value
	}
}

// observeSerial implements the serial side channel: a write to SC with bits
// 0 and 7 both set publishes the byte currently staged in SB and clears SC,
// matching the mechanism Blargg-style test ROMs use to externalize results.
func (b *Bus) observeSerial(scValue uint8) {
	if scValue&0x81 != 0x81 {
		return
	}
	c := b.io[SB-ioStart]
	b.SerialLog = append(b.SerialLog, c)
	b.io[SC-ioStart] = 0
	if c == 'f' {
		b.SerialStopRequested = true
	}
	b.Log.Debugf("serial: %q", c)
}

// SerialString returns the accumulated serial log as a string.
func (b *Bus) SerialString() string {
	return string(b.SerialLog)
}

// InterruptPending reports whether any enabled interrupt (IE) is currently
// requested (IF), independent of IME.
func (b *Bus) InterruptPending() bool {
	return b.Read(IE)&b.Read(IF) != 0
}
