package cpu

import "github.com/joswald/pocketcore/addr"

// Bus is everything the CPU needs from the rest of the system. The MMU
// implements it; the CPU never touches VRAM, the timer, or the interrupt
// controller directly.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	PendingInterrupts() uint8
	AcknowledgeInterrupt(kind addr.Interrupt)
}
