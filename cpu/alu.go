package cpu

import "github.com/joswald/pocketcore/bit"

// inc and dec are shared by every 8-bit register form and the (HL) memory
// form; the half-carry test uses the POST-update low nibble, which is
// mathematically identical to testing the pre-update nibble for the
// opposite edge (0xF->0x0 on inc, 0x0->0xF on dec) and keeps both callers
// honest about which value they're looking at.
func (c *CPU) inc(value uint8) uint8 {
	result := value + 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, result&0x0F == 0)
	return result
}

func (c *CPU) dec(value uint8) uint8 {
	result := value - 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, result&0x0F == 0x0F)
	return result
}

func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF)+(value&0xF) > 0xF)
	c.setFlagToCondition(carryFlag, uint16(a)+uint16(value) > 0xFF)

	c.a = result
}

func (c *CPU) adcToA(value uint8) {
	a := c.a
	carry := c.flagBit(carryFlag)
	result := a + value + carry

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF)+(value&0xF)+carry > 0xF)
	c.setFlagToCondition(carryFlag, uint16(a)+uint16(value)+uint16(carry) > 0xFF)

	c.a = result
}

func (c *CPU) sub(value uint8) {
	a := c.a
	result := a - value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF) < (value&0xF))
	c.setFlagToCondition(carryFlag, a < value)

	c.a = result
}

func (c *CPU) sbc(value uint8) {
	a := c.a
	carry := c.flagBit(carryFlag)
	result := int(a) - int(value) - int(carry)

	c.setFlagToCondition(zeroFlag, uint8(result) == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (int(a)&0xF)-(int(value)&0xF)-int(carry) < 0)
	c.setFlagToCondition(carryFlag, result < 0)

	c.a = uint8(result)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) cp(value uint8) {
	a := c.a
	c.sub(value)
	c.a = a // CP leaves A untouched; only the flags matter
}

func (c *CPU) addToHL(value uint16) {
	hl := c.hl()
	result := hl + value

	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.setFlagToCondition(carryFlag, uint32(hl)+uint32(value) > 0xFFFF)

	c.setHL(result)
}

// spPlusE computes SP+e (e a signed byte) the way the hardware does: the
// Z/H/C-affecting half of the addition works on SP's ORIGINAL low byte,
// treating e as an unsigned addend to it. This must run before SP is
// updated, not after -- using the post-update SP here would corrupt H/C on
// almost every ADD SP,e and LD HL,SP+e.
func (c *CPU) spPlusE(e int8) uint16 {
	sp := c.sp
	offset := uint8(e)

	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (uint8(sp)&0xF)+(offset&0xF) > 0xF)
	c.setFlagToCondition(carryFlag, uint16(uint8(sp))+uint16(offset) > 0xFF)

	return uint16(int32(sp) + int32(e))
}

func (c *CPU) rlc(value uint8) uint8 {
	carry := value>>7 != 0
	result := (value << 1) | (value >> 7)

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

func (c *CPU) rl(value uint8) uint8 {
	carryIn := c.flagBit(carryFlag)
	carryOut := value>>7 != 0
	result := (value << 1) | carryIn

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)

	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carry := value&1 != 0
	result := (value >> 1) | ((value & 1) << 7)

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

func (c *CPU) rr(value uint8) uint8 {
	carryIn := c.flagBit(carryFlag) << 7
	carryOut := value&1 != 0
	result := (value >> 1) | carryIn

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)

	return result
}

func (c *CPU) sla(value uint8) uint8 {
	carry := value>>7 != 0
	result := value << 1

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

func (c *CPU) sra(value uint8) uint8 {
	carry := value&1 != 0
	result := (value >> 1) | (value & 0x80)

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

func (c *CPU) srl(value uint8) uint8 {
	carry := value&1 != 0
	result := value >> 1

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := (value << 4) | (value >> 4)

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)

	return result
}

func (c *CPU) bitTest(index uint8, value uint8) {
	c.setFlagToCondition(zeroFlag, !bit.IsSet(index, value))
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) res(index uint8, value uint8) uint8 {
	return bit.Reset(index, value)
}

func (c *CPU) setBit(index uint8, value uint8) uint8 {
	return bit.Set(index, value)
}

// daa adjusts A after a BCD addition or subtraction so it holds two packed
// decimal digits, per the standard Z80/SM83 correction table.
func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := false

	if c.isSetFlag(subFlag) {
		if c.isSetFlag(halfCarryFlag) {
			adjust |= 0x06
		}
		if c.isSetFlag(carryFlag) {
			adjust |= 0x60
			carry = true
		}
		a -= adjust
	} else {
		if c.isSetFlag(halfCarryFlag) || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if c.isSetFlag(carryFlag) || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}

	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)

	c.a = a
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) scf() {
	c.setFlag(carryFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) ccf() {
	c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
}
