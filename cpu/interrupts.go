package cpu

import "github.com/joswald/pocketcore/interrupt"

// handleInterrupts checks the bus's pending mask once. It returns whether
// any interrupt was pending, regardless of whether IME was set to actually
// service it; a caller uses the return value together with c.cycles to
// tell "serviced" (cycles advanced by 20) from "merely observed" (e.g. a
// HALT wake with IME=0, which triggers the halt bug instead of a dispatch).
func (c *CPU) handleInterrupts() bool {
	pending := c.bus.PendingInterrupts()

	if c.halted && pending != 0 {
		c.halted = false
		if !c.interruptsEnabled {
			c.haltBug = true
		}
	}

	if !c.interruptsEnabled {
		return pending != 0
	}
	if pending == 0 {
		return false
	}

	kind, ok := interrupt.LowestPending(pending)
	if !ok {
		return false
	}

	c.interruptsEnabled = false
	c.bus.AcknowledgeInterrupt(kind)
	c.pushStack(c.pc)
	c.pc = kind.Vector()
	c.cycles += 20

	return true
}
