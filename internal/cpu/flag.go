package cpu

import "github.com/bramwell/gbcore/internal/types"

// Flag identifies one of the four bits of the F register that carry
// meaning; the low nibble of F is always masked to zero.
type Flag uint8

const (
	FlagZ Flag = types.Bit7
	FlagN Flag = types.Bit6
	FlagH Flag = types.Bit5
	FlagC Flag = types.Bit4
)

// setFlag sets flag in F if on is true, and clears it otherwise.
func (c *CPU) setFlag(flag Flag, on bool) {
	if on {
		c.F |= uint8(flag)
	} else {
		c.F &^= uint8(flag)
	}
	c.F &= 0xF0
}

// isFlagSet reports whether flag is currently set in F.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&uint8(flag) != 0
}

// shouldZeroFlag sets or clears FlagZ according to whether v == 0. It is the
// common case for every 8-bit ALU and INC/DEC result.
func (c *CPU) shouldZeroFlag(v uint8) {
	c.setFlag(FlagZ, v == 0)
}
