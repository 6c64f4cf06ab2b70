// Package cpu implements the CPU: registers, flags, the fetch/decode/execute
// loop, the ALU, and interrupt servicing. The CPU holds a single reference
// to the system Bus; it never touches a peripheral directly.
package cpu

import "github.com/joswald/pocketcore/bit"

// CPU holds the full register file and execution state. Registers are
// stored as flat 8-bit fields, combined into pairs on demand (af/bc/de/hl),
// rather than as 16-bit pair types: every instruction in the original
// instruction set addresses either a single 8-bit register or a pair
// assembled from two of these fields, so this is the representation every
// ALU kernel and opcode function wants directly.
type CPU struct {
	a, f byte
	b, c byte
	d, e byte
	h, l byte

	sp uint16
	pc uint16

	bus Bus

	currentOpcode uint16
	cycles        uint64

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool
	stopped           bool

	decodeErr *DecodeError
}

// New returns a CPU wired to bus, with registers at their post-boot-ROM
// power-up values (as if the boot ROM had already run) and PC at the
// cartridge entry point, 0x0100.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.setAF(0x01B0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	return c
}

// NewAtBootROM returns a CPU with every register zeroed and PC at 0x0000,
// for a run that executes the boot ROM itself.
func NewAtBootROM(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// Cycles returns the running total of CPU cycles since New.
func (c *CPU) Cycles() uint64 { return c.cycles }

// IsStopped reports whether the CPU has stopped, either on a STOP
// instruction or on an illegal opcode. Nothing wakes a stopped CPU.
func (c *CPU) IsStopped() bool { return c.stopped }

// IsHalted reports whether the CPU is in the HALT low-power state.
func (c *CPU) IsHalted() bool { return c.halted }

// DecodeError returns the illegal-opcode error that stopped the CPU, or nil
// if it never hit one.
func (c *CPU) DecodeError() *DecodeError { return c.decodeErr }

func (c *CPU) fetch8() uint8 {
	value := c.bus.Read(c.pc)
	c.pc++
	return value
}

func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return bit.Combine(high, low)
}

func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

// Step executes exactly one unit of work: either servicing one pending
// interrupt, staying halted (or stopped) for one M-cycle's worth of time, or
// decoding and executing one instruction. It returns the number of base
// clock cycles consumed, which the caller must feed to the MMU's Tick.
func (c *CPU) Step() int {
	start := c.cycles

	if c.stopped {
		c.cycles += 4
		return int(c.cycles - start)
	}

	if c.handleInterrupts() && c.cycles > start {
		return int(c.cycles - start)
	}

	if c.halted {
		c.cycles += 4
		return int(c.cycles - start)
	}

	opcodeFn := Decode(c)
	opcodeLen := uint16(1)
	if c.currentOpcode > 0xFF {
		opcodeLen = 2
	}
	if c.haltBug {
		c.haltBug = false
	} else {
		c.pc += opcodeLen
	}

	c.cycles += uint64(opcodeFn(c))

	if c.eiPending {
		c.interruptsEnabled = true
		c.eiPending = false
	}

	return int(c.cycles - start)
}
