package cpu

import "fmt"

// DecodeError reports the address and byte of an opcode that has no defined
// instruction. The CPU stops executing when it hits one rather than
// panicking, so a caller (the driver, or a test) can inspect and report it.
type DecodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at pc 0x%04X", e.Opcode, e.PC)
}
