package pocketcore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joswald/pocketcore/addr"
	"github.com/joswald/pocketcore/joypad"
)

func headerImage(entryPoint ...byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], entryPoint)
	copy(rom[0x0134:], []byte("TESTROM"))
	return rom
}

func TestNewMachineRejectsEmptyROM(t *testing.T) {
	_, err := NewMachine(nil)
	assert.Error(t, err)
}

func TestNewMachineStartsAtCartridgeEntryPoint(t *testing.T) {
	m, err := NewMachine(headerImage(0x00)) // NOP
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0100), m.PC())
}

func TestTickInstructionAdvancesAndCountsInstructions(t *testing.T) {
	m, err := NewMachine(headerImage(0x00, 0x00, 0x00))
	assert.NoError(t, err)

	cycles := m.TickInstruction()

	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint64(1), m.InstructionCount())
	assert.Equal(t, uint16(0x0101), m.PC())
}

func TestRunFrameConsumesAFullFramesWorthOfCycles(t *testing.T) {
	rom := headerImage()
	// an infinite loop: JR -2 (jump to itself) forever, so RunFrame has
	// something to chew through without ever hitting an illegal opcode.
	rom[0x0100] = 0x18
	rom[0x0101] = 0xFE

	m, err := NewMachine(rom)
	assert.NoError(t, err)

	executed := m.RunFrame()

	assert.Greater(t, executed, 0)
	assert.Equal(t, uint64(1), m.FrameCount())
}

func TestIllegalOpcodeStopsMachineAndRecordsDecodeError(t *testing.T) {
	m, err := NewMachine(headerImage(0xD3)) // illegal opcode
	assert.NoError(t, err)

	m.TickInstruction()

	assert.True(t, m.IsStopped())
	decodeErr := m.DecodeError()
	if assert.NotNil(t, decodeErr) {
		assert.Equal(t, uint16(0x0100), decodeErr.PC)
	}
}

func TestRequestInterruptLeavesFramebufferAvailable(t *testing.T) {
	m, err := NewMachine(headerImage(0x00))
	assert.NoError(t, err)

	// Should not panic even with nothing listening beyond the interrupt
	// controller itself; this exercises the collaborator surface the
	// driver exposes to external callers (e.g. a test harness poking the
	// VBlank interrupt directly).
	m.RequestInterrupt(addr.VBlankInterrupt)

	assert.NotNil(t, m.Framebuffer())
}

func TestSetButtonStatePropagatesToJoypad(t *testing.T) {
	m, err := NewMachine(headerImage(0x00))
	assert.NoError(t, err)

	m.SetButtonState(joypad.A, true)

	// no direct getter is exposed on Machine, so read the press back through
	// the P1 register with the button group selected (bit 5 clear).
	m.mmu.Write(addr.P1, 0x10)
	assert.Zero(t, m.mmu.Read(addr.P1)&0x01)
}

func TestNewMachineWithBootROMStartsAtZero(t *testing.T) {
	boot := make([]byte, 0x100)
	m, err := NewMachineWithBootROM(headerImage(0x00), boot)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0000), m.PC())
}
