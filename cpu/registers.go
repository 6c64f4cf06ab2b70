package cpu

import "github.com/joswald/pocketcore/bit"

// Flag bit positions in the F register.
const (
	zeroFlag      uint8 = 0x80
	subFlag       uint8 = 0x40
	halfCarryFlag uint8 = 0x20
	carryFlag     uint8 = 0x10
)

func (c *CPU) setFlag(flag uint8) {
	c.f |= flag
}

func (c *CPU) resetFlag(flag uint8) {
	c.f &^= flag
}

func (c *CPU) setFlagToCondition(flag uint8, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

func (c *CPU) isSetFlag(flag uint8) bool {
	return c.f&flag != 0
}

func (c *CPU) flagBit(flag uint8) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

func (c *CPU) af() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) bc() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) de() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	c.f = bit.Low(value) & 0xF0 // the low nibble of F is always zero
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}
