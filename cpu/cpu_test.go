package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joswald/pocketcore/addr"
)

// fakeBus is a flat 64KiB memory plus a settable interrupt mask, enough to
// drive every CPU test without needing the real mmu package (which would
// make cpu depend on every peripheral just to unit test the decoder).
type fakeBus struct {
	mem     [0x10000]byte
	ie, ifr uint8
}

func newFakeBus() *fakeBus { return &fakeBus{} }

func (b *fakeBus) Read(address uint16) byte        { return b.mem[address] }
func (b *fakeBus) Write(address uint16, value byte) { b.mem[address] = value }
func (b *fakeBus) PendingInterrupts() uint8         { return b.ie & b.ifr & 0x1F }
func (b *fakeBus) AcknowledgeInterrupt(kind addr.Interrupt) {
	b.ifr &^= 1 << kind.Bit()
}

func newTestCPU() (*CPU, *fakeBus) {
	bus := newFakeBus()
	return New(bus), bus
}

func loadProgram(bus *fakeBus, at uint16, bytes ...byte) {
	for i, b := range bytes {
		bus.mem[int(at)+i] = b
	}
}

func TestScenario1FlagAccurateAdd(t *testing.T) {
	c, _ := newTestCPU()
	c.a = 0x3A
	c.b = 0xC6

	c.addToA(c.b)

	assert.Equal(t, uint8(0x00), c.a)
	assert.Equal(t, uint8(0xB0), c.f)
}

func TestScenario2DAAAfterAddition(t *testing.T) {
	c, bus := newTestCPU()
	c.a = 0x45
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xC6, 0x38, 0x27)

	c.Step() // ADD A,#38
	c.Step() // DAA

	assert.Equal(t, uint8(0x83), c.a)
	assert.False(t, c.isSetFlag(zeroFlag))
	assert.False(t, c.isSetFlag(subFlag))
	assert.False(t, c.isSetFlag(halfCarryFlag))
	assert.False(t, c.isSetFlag(carryFlag))
}

func TestScenario3SignedRelativeJump(t *testing.T) {
	c, bus := newTestCPU()
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0x18, 0xFE)

	cycles := c.Step()

	assert.Equal(t, uint16(0x0200), c.pc)
	assert.Equal(t, 12, cycles)
}

func TestScenario4StackRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.sp = 0xFFFE
	c.pc = 0x0200
	loadProgram(bus, 0x0200,
		0x01, 0xEF, 0xBE, // LD BC,0xBEEF
		0xC5,             // PUSH BC
		0xD1,             // POP DE
	)

	c.Step()
	c.Step()
	c.Step()

	assert.Equal(t, uint16(0xBEEF), c.de())
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestIncHLHalfCarryUsesPreIncrementNibble(t *testing.T) {
	c, bus := newTestCPU()
	c.setHL(0xC000)
	bus.mem[0xC000] = 0x0F
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0x34) // INC (HL)

	c.Step()

	assert.Equal(t, byte(0x10), bus.mem[0xC000])
	assert.True(t, c.isSetFlag(halfCarryFlag))
}

func TestSelfOperandALUOpcodesExist(t *testing.T) {
	cases := []struct {
		name    string
		opcode  byte
		a       byte
		wantA   byte
		wantZ   bool
		wantC   bool
	}{
		{"SUB A,A", 0x97, 0x42, 0x00, true, false},
		{"AND A,A", 0xA7, 0x42, 0x42, false, false},
		{"OR A,A", 0xB7, 0x00, 0x00, true, false},
		{"CP A,A", 0xBF, 0x42, 0x42, true, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU()
			c.a = tt.a
			c.pc = 0x0200
			loadProgram(bus, 0x0200, tt.opcode)

			c.Step()

			assert.Equal(t, tt.wantA, c.a)
			assert.Equal(t, tt.wantZ, c.isSetFlag(zeroFlag))
			assert.Equal(t, tt.wantC, c.isSetFlag(carryFlag))
		})
	}
}

func TestAddSPUsesPreUpdateSPForFlags(t *testing.T) {
	c, bus := newTestCPU()
	c.sp = 0x0005
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xE8, 0x03) // ADD SP,3

	c.Step()

	assert.Equal(t, uint16(0x0008), c.sp)
	assert.False(t, c.isSetFlag(halfCarryFlag))
	assert.False(t, c.isSetFlag(carryFlag))
}

func TestAddSPCarryComputedFromOriginalLowByte(t *testing.T) {
	c, bus := newTestCPU()
	c.sp = 0x00FF
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xE8, 0x01) // ADD SP,1: 0xFF+0x01 carries out of the low byte

	c.Step()

	assert.Equal(t, uint16(0x0100), c.sp)
	assert.True(t, c.isSetFlag(carryFlag))
	assert.True(t, c.isSetFlag(halfCarryFlag))
}

func TestLDHLSPPlusEUsesSameFormula(t *testing.T) {
	c, bus := newTestCPU()
	c.sp = 0x00FF
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xF8, 0x01) // LD HL,SP+1

	c.Step()

	assert.Equal(t, uint16(0x0100), c.hl())
	assert.Equal(t, uint16(0x00FF), c.sp) // SP itself is unchanged by this opcode
	assert.True(t, c.isSetFlag(carryFlag))
}

func TestCBDecodeDoesNotAdvancePC(t *testing.T) {
	c, bus := newTestCPU()
	c.pc = 0xC000
	loadProgram(bus, 0xC000, 0xCB, 0x40) // BIT 0,B

	Decode(c)

	assert.Equal(t, uint16(0xC000), c.pc)
	assert.Equal(t, uint16(0xCB40), c.currentOpcode)
}

func TestHaltWakesOnPendingInterruptWithIMEOn(t *testing.T) {
	c, bus := newTestCPU()
	c.interruptsEnabled = true
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0x76) // HALT

	c.Step()
	assert.True(t, c.halted)

	bus.ie = 0x01
	bus.ifr = 0x01
	c.Step()

	assert.False(t, c.halted)
	assert.Equal(t, uint16(0x40), c.pc)
}

func TestHaltWithIMEOffSetsHaltBugWithoutServicing(t *testing.T) {
	c, bus := newTestCPU()
	c.interruptsEnabled = false
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0x76)

	c.Step()
	assert.True(t, c.halted)

	bus.ie = 0x01
	bus.ifr = 0x01
	c.Step()

	assert.False(t, c.halted)
	assert.True(t, c.haltBug)
	assert.Equal(t, uint16(0x201), c.pc) // unchanged by any ISR dispatch
}

func TestInterruptPriorityServicesLowestBitFirst(t *testing.T) {
	c, bus := newTestCPU()
	c.interruptsEnabled = true
	c.sp = 0xFFFE
	c.pc = 0x0200
	bus.ie = 0x1F
	bus.ifr = 0x1F

	c.Step()

	assert.Equal(t, uint16(0x40), c.pc)
	assert.Equal(t, uint8(0x1E), bus.ifr)
}

func TestIllegalOpcodeStopsExecution(t *testing.T) {
	c, bus := newTestCPU()
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xD3)

	c.Step()

	assert.True(t, c.stopped)
}

func TestIllegalOpcodeRecordsDecodeError(t *testing.T) {
	c, bus := newTestCPU()
	c.pc = 0x0200
	loadProgram(bus, 0x0200, 0xDD)

	c.Step()

	err := c.DecodeError()
	if assert.NotNil(t, err) {
		assert.Equal(t, uint16(0x0200), err.PC)
		assert.Equal(t, uint16(0xDD), err.Opcode)
	}
}
