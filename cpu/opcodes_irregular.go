package cpu

import "log/slog"

// This file hand-implements every opcode that doesn't fit the three regular,
// arithmetically-decomposable blocks built in mapping.go: control flow,
// 16-bit loads and arithmetic, stack operations, and the handful of single-
// instruction oddities (DAA, CPL, SCF, CCF, HALT, STOP, EI, DI, RST).

func opcodeIllegal(c *CPU) int {
	// Step has already advanced pc past this (1-byte) opcode by the time
	// the opcode function runs, so the fetch address is pc-1.
	fetchPC := c.pc - 1
	slog.Error("cpu: illegal opcode executed", "opcode", c.currentOpcode, "pc", fetchPC)
	c.stopped = true
	c.decodeErr = &DecodeError{PC: fetchPC, Opcode: c.currentOpcode}
	return 4
}

// -- 0x00 - 0x3F --------------------------------------------------------

func opcode0x00(c *CPU) int { return 4 } // NOP

func opcode0x01(c *CPU) int { c.setBC(c.fetch16()); return 12 }
func opcode0x02(c *CPU) int { c.bus.Write(c.bc(), c.a); return 8 }
func opcode0x03(c *CPU) int { c.setBC(c.bc() + 1); return 8 }
func opcode0x06(c *CPU) int { c.b = c.fetch8(); return 8 }
func opcode0x07(c *CPU) int { c.a = c.rlc(c.a); c.resetFlag(zeroFlag); return 4 }
func opcode0x08(c *CPU) int {
	address := c.fetch16()
	c.bus.Write(address, uint8(c.sp&0xFF))
	c.bus.Write(address+1, uint8(c.sp>>8))
	return 20
}
func opcode0x09(c *CPU) int { c.addToHL(c.bc()); return 8 }
func opcode0x0A(c *CPU) int { c.a = c.bus.Read(c.bc()); return 8 }
func opcode0x0B(c *CPU) int { c.setBC(c.bc() - 1); return 8 }
func opcode0x0E(c *CPU) int { c.c = c.fetch8(); return 8 }
func opcode0x0F(c *CPU) int { c.a = c.rrc(c.a); c.resetFlag(zeroFlag); return 4 }

func opcode0x10(c *CPU) int { c.fetch8(); c.stopped = true; return 4 } // STOP has a padding byte
func opcode0x11(c *CPU) int { c.setDE(c.fetch16()); return 12 }
func opcode0x12(c *CPU) int { c.bus.Write(c.de(), c.a); return 8 }
func opcode0x13(c *CPU) int { c.setDE(c.de() + 1); return 8 }
func opcode0x16(c *CPU) int { c.d = c.fetch8(); return 8 }
func opcode0x17(c *CPU) int { c.a = c.rl(c.a); c.resetFlag(zeroFlag); return 4 }
func opcode0x18(c *CPU) int { c.jumpRelative(); return 12 }
func opcode0x19(c *CPU) int { c.addToHL(c.de()); return 8 }
func opcode0x1A(c *CPU) int { c.a = c.bus.Read(c.de()); return 8 }
func opcode0x1B(c *CPU) int { c.setDE(c.de() - 1); return 8 }
func opcode0x1E(c *CPU) int { c.e = c.fetch8(); return 8 }
func opcode0x1F(c *CPU) int { c.a = c.rr(c.a); c.resetFlag(zeroFlag); return 4 }

func opcode0x20(c *CPU) int { return c.jumpRelativeIf(!c.isSetFlag(zeroFlag)) }
func opcode0x21(c *CPU) int { c.setHL(c.fetch16()); return 12 }
func opcode0x22(c *CPU) int { c.bus.Write(c.hl(), c.a); c.setHL(c.hl() + 1); return 8 }
func opcode0x23(c *CPU) int { c.setHL(c.hl() + 1); return 8 }
func opcode0x26(c *CPU) int { c.h = c.fetch8(); return 8 }
func opcode0x27(c *CPU) int { c.daa(); return 4 }
func opcode0x28(c *CPU) int { return c.jumpRelativeIf(c.isSetFlag(zeroFlag)) }
func opcode0x29(c *CPU) int { c.addToHL(c.hl()); return 8 }
func opcode0x2A(c *CPU) int { c.a = c.bus.Read(c.hl()); c.setHL(c.hl() + 1); return 8 }
func opcode0x2B(c *CPU) int { c.setHL(c.hl() - 1); return 8 }
func opcode0x2E(c *CPU) int { c.l = c.fetch8(); return 8 }
func opcode0x2F(c *CPU) int { c.cpl(); return 4 }

func opcode0x30(c *CPU) int { return c.jumpRelativeIf(!c.isSetFlag(carryFlag)) }
func opcode0x31(c *CPU) int { c.sp = c.fetch16(); return 12 }
func opcode0x32(c *CPU) int { c.bus.Write(c.hl(), c.a); c.setHL(c.hl() - 1); return 8 }
func opcode0x33(c *CPU) int { c.sp++; return 8 }
func opcode0x36(c *CPU) int { c.bus.Write(c.hl(), c.fetch8()); return 12 }
func opcode0x37(c *CPU) int { c.scf(); return 4 }
func opcode0x38(c *CPU) int { return c.jumpRelativeIf(c.isSetFlag(carryFlag)) }
func opcode0x39(c *CPU) int { c.addToHL(c.sp); return 8 }
func opcode0x3A(c *CPU) int { c.a = c.bus.Read(c.hl()); c.setHL(c.hl() - 1); return 8 }
func opcode0x3B(c *CPU) int { c.sp--; return 8 }
func opcode0x3E(c *CPU) int { c.a = c.fetch8(); return 8 }
func opcode0x3F(c *CPU) int { c.ccf(); return 4 }

// -- HALT -----------------------------------------------------------------

func opcode0x76(c *CPU) int { c.halted = true; return 4 }

// -- relative/absolute jump helpers ---------------------------------------

func (c *CPU) jumpRelative() {
	offset := int8(c.fetch8())
	c.pc = uint16(int32(c.pc) + int32(offset))
}

func (c *CPU) jumpRelativeIf(condition bool) int {
	offset := int8(c.fetch8())
	if !condition {
		return 8
	}
	c.pc = uint16(int32(c.pc) + int32(offset))
	return 12
}

func (c *CPU) jumpAbsoluteIf(condition bool) int {
	address := c.fetch16()
	if !condition {
		return 12
	}
	c.pc = address
	return 16
}

func (c *CPU) callIf(condition bool) int {
	address := c.fetch16()
	if !condition {
		return 12
	}
	c.pushStack(c.pc)
	c.pc = address
	return 24
}

func (c *CPU) retIf(condition bool) int {
	if !condition {
		return 8
	}
	c.pc = c.popStack()
	return 20
}

func (c *CPU) rst(target uint16) int {
	c.pushStack(c.pc)
	c.pc = target
	return 16
}

// -- 0xC0 - 0xFF ------------------------------------------------------------

func opcode0xC0(c *CPU) int { return c.retIf(!c.isSetFlag(zeroFlag)) }
func opcode0xC1(c *CPU) int { c.setBC(c.popStack()); return 12 }
func opcode0xC2(c *CPU) int { return c.jumpAbsoluteIf(!c.isSetFlag(zeroFlag)) }
func opcode0xC3(c *CPU) int { c.pc = c.fetch16(); return 16 }
func opcode0xC4(c *CPU) int { return c.callIf(!c.isSetFlag(zeroFlag)) }
func opcode0xC5(c *CPU) int { c.pushStack(c.bc()); return 16 }
func opcode0xC6(c *CPU) int { c.addToA(c.fetch8()); return 8 }
func opcode0xC7(c *CPU) int { return c.rst(0x00) }
func opcode0xC8(c *CPU) int { return c.retIf(c.isSetFlag(zeroFlag)) }
func opcode0xC9(c *CPU) int { c.pc = c.popStack(); return 16 }
func opcode0xCA(c *CPU) int { return c.jumpAbsoluteIf(c.isSetFlag(zeroFlag)) }
func opcode0xCC(c *CPU) int { return c.callIf(c.isSetFlag(zeroFlag)) }
func opcode0xCD(c *CPU) int { address := c.fetch16(); c.pushStack(c.pc); c.pc = address; return 24 }
func opcode0xCE(c *CPU) int { c.adcToA(c.fetch8()); return 8 }
func opcode0xCF(c *CPU) int { return c.rst(0x08) }

func opcode0xD0(c *CPU) int { return c.retIf(!c.isSetFlag(carryFlag)) }
func opcode0xD1(c *CPU) int { c.setDE(c.popStack()); return 12 }
func opcode0xD2(c *CPU) int { return c.jumpAbsoluteIf(!c.isSetFlag(carryFlag)) }
func opcode0xD4(c *CPU) int { return c.callIf(!c.isSetFlag(carryFlag)) }
func opcode0xD5(c *CPU) int { c.pushStack(c.de()); return 16 }
func opcode0xD6(c *CPU) int { c.sub(c.fetch8()); return 8 }
func opcode0xD7(c *CPU) int { return c.rst(0x10) }
func opcode0xD8(c *CPU) int { return c.retIf(c.isSetFlag(carryFlag)) }
func opcode0xD9(c *CPU) int {
	c.pc = c.popStack()
	c.interruptsEnabled = true
	return 16
}
func opcode0xDA(c *CPU) int { return c.jumpAbsoluteIf(c.isSetFlag(carryFlag)) }
func opcode0xDC(c *CPU) int { return c.callIf(c.isSetFlag(carryFlag)) }
func opcode0xDE(c *CPU) int { c.sbc(c.fetch8()); return 8 }
func opcode0xDF(c *CPU) int { return c.rst(0x18) }

func opcode0xE0(c *CPU) int { c.bus.Write(0xFF00+uint16(c.fetch8()), c.a); return 12 }
func opcode0xE1(c *CPU) int { c.setHL(c.popStack()); return 12 }
func opcode0xE2(c *CPU) int { c.bus.Write(0xFF00+uint16(c.c), c.a); return 8 }
func opcode0xE5(c *CPU) int { c.pushStack(c.hl()); return 16 }
func opcode0xE6(c *CPU) int { c.and(c.fetch8()); return 8 }
func opcode0xE7(c *CPU) int { return c.rst(0x20) }
func opcode0xE8(c *CPU) int { c.sp = c.spPlusE(int8(c.fetch8())); return 16 }
func opcode0xE9(c *CPU) int { c.pc = c.hl(); return 4 }
func opcode0xEA(c *CPU) int { c.bus.Write(c.fetch16(), c.a); return 16 }
func opcode0xEE(c *CPU) int { c.xor(c.fetch8()); return 8 }
func opcode0xEF(c *CPU) int { return c.rst(0x28) }

func opcode0xF0(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.fetch8())); return 12 }
func opcode0xF1(c *CPU) int { c.setAF(c.popStack()); return 12 }
func opcode0xF2(c *CPU) int { c.a = c.bus.Read(0xFF00 + uint16(c.c)); return 8 }
func opcode0xF3(c *CPU) int { c.interruptsEnabled = false; c.eiPending = false; return 4 }
func opcode0xF5(c *CPU) int { c.pushStack(c.af()); return 16 }
func opcode0xF6(c *CPU) int { c.or(c.fetch8()); return 8 }
func opcode0xF7(c *CPU) int { return c.rst(0x30) }
func opcode0xF8(c *CPU) int { c.setHL(c.spPlusE(int8(c.fetch8()))); return 12 }
func opcode0xF9(c *CPU) int { c.sp = c.hl(); return 8 }
func opcode0xFA(c *CPU) int { c.a = c.bus.Read(c.fetch16()); return 16 }
func opcode0xFB(c *CPU) int { c.eiPending = true; return 4 }
func opcode0xFE(c *CPU) int { c.cp(c.fetch8()); return 8 }
func opcode0xFF(c *CPU) int { return c.rst(0x38) }
