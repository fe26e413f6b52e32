package cpu

import "testing"

// illegalOpcodes lists the eleven base-table opcodes the LR35902 never
// defines; every other entry must have a non-default handler.
var illegalOpcodes = map[uint8]bool{
	0xD3: true, 0xDB: true, 0xDD: true,
	0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
	0xF4: true, 0xFC: true, 0xFD: true,
}

func TestBaseTableIsFullyPopulatedExceptKnownIllegalOpcodes(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := uint8(i)
		if op == 0xCB {
			continue // intercepted by CPU.execute before the table is consulted
		}
		isIllegal := illegalOpcodes[op]
		isDefaultName := InstructionSet[op].name == "ILLEGAL"
		if isIllegal != isDefaultName {
			t.Errorf("opcode %#02x: illegal=%v but table entry name=%q", op, isIllegal, InstructionSet[op].name)
		}
	}
}

func TestCBTableIsFullyPopulated(t *testing.T) {
	for i := 0; i < 256; i++ {
		if InstructionSetCB[i].name == "ILLEGAL_CB" {
			t.Errorf("CB opcode %#02x has no registered handler", i)
		}
	}
}

func TestDefineInstructionPanicsOnDuplicateRegistration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic registering an already-claimed opcode")
		}
	}()
	DefineInstruction(0x00, "DUPLICATE", func(c *CPU) {})
}
