package cpu

// Opcode is a function that executes one instruction and returns the
// number of base clock cycles it took.
type Opcode func(*CPU) int

// Decode peeks the byte(s) at PC and returns the instruction they select,
// without advancing PC -- Step is responsible for that, since how far to
// advance (1 byte, or 2 for a CB-prefixed instruction) depends on what
// Decode found.
func Decode(c *CPU) Opcode {
	first := uint16(c.bus.Read(c.pc))

	if first == 0xCB {
		second := uint16(c.bus.Read(c.pc + 1))
		c.currentOpcode = 0xCB00 | second
		return opcodeCBMap[uint8(second)]
	}

	c.currentOpcode = first
	return opcodeMap[uint8(first)]
}
