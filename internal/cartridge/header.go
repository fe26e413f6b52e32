// Package cartridge parses the informational header embedded in a Game Boy
// ROM image. It is read-only and has no effect on CPU or Bus behavior: this
// core performs no bank switching, so nothing here ever changes how an
// address is resolved. It exists purely so the host tools have something
// meaningful to report about a loaded ROM.
package cartridge

import "fmt"

// Type identifies the declared cartridge hardware (MBC1, MBC3, ...). This
// core never acts on it beyond display; the only MBC-adjacent behavior it
// implements at all is the RAM-enable latch in internal/bus, which applies
// uniformly regardless of the declared Type.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	MBC3        Type = 0x11
	MBC3RAM     Type = 0x12
	MBC3RAMBATT Type = 0x13
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	MBC3:        "MBC3",
	MBC3RAM:     "MBC3+RAM",
	MBC3RAMBATT: "MBC3+RAM+BATTERY",
	MBC5:        "MBC5",
}

// String returns the conventional cartridge-type name, or a hex fallback for
// a type this core doesn't recognise by name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%#02x)", uint8(t))
}

// headerSize is the minimum ROM length that contains the whole cartridge
// header, which ends at 0x014F.
const headerSize = 0x150

// Header is the parsed content of a ROM's 0x0134-0x014D header block.
type Header struct {
	Title            string
	CartridgeType    Type
	ROMSizeCode      uint8
	RAMSizeCode      uint8
	HeaderChecksum   uint8
	ComputedChecksum uint8
	ChecksumValid    bool
}

// ParseHeader reads the cartridge header out of rom. It returns an error
// only if rom is too short to contain a full header; every other byte is
// accepted as-is, matching real hardware, which performs no validation of
// its own before attempting to execute a cartridge.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < headerSize {
		return Header{}, fmt.Errorf("cartridge: ROM is %d bytes, need at least %#x for a header", len(rom), headerSize)
	}

	h := Header{
		Title:          string(trimTitle(rom[0x134:0x144])),
		CartridgeType:  Type(rom[0x147]),
		ROMSizeCode:    rom[0x148],
		RAMSizeCode:    rom[0x149],
		HeaderChecksum: rom[0x14D],
	}
	h.ComputedChecksum = headerChecksum(rom)
	h.ChecksumValid = h.ComputedChecksum == h.HeaderChecksum
	return h, nil
}

// trimTitle drops the trailing NUL padding a title shorter than 16 bytes is
// padded with.
func trimTitle(title []byte) []byte {
	for i, b := range title {
		if b == 0x00 {
			return title[:i]
		}
	}
	return title
}

// headerChecksum reproduces the algorithm the boot ROM uses to validate a
// cartridge before handing control to it: x := 0; for each byte in
// 0x0134-0x014C, x = x - byte - 1.
func headerChecksum(rom []byte) uint8 {
	var x uint8
	for addr := 0x134; addr <= 0x14C; addr++ {
		x = x - rom[addr] - 1
	}
	return x
}

// String renders a one-line human-readable summary, used by cmd/gbcore's
// startup log line.
func (h Header) String() string {
	return fmt.Sprintf("%q type=%s romCode=%#02x ramCode=%#02x checksum=%#02x(valid=%t)",
		h.Title, h.CartridgeType, h.ROMSizeCode, h.RAMSizeCode, h.HeaderChecksum, h.ChecksumValid)
}
