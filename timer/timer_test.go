package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joswald/pocketcore/addr"
)

func TestTIMAOverflowReloadsAndInterrupts(t *testing.T) {
	tm := New()
	requested := false
	tm.RequestInterrupt = func() { requested = true }

	tm.Write(addr.TAC, 0x05) // enabled, divider 16 (bit 3)
	tm.Write(addr.TMA, 0x42)
	tm.Write(addr.TIMA, 0xFF)

	tm.Tick(16)

	assert.Equal(t, uint8(0x42), tm.Read(addr.TIMA))
	assert.True(t, requested)
}

func TestDIVWriteClearsDivider(t *testing.T) {
	tm := New()
	tm.Tick(300)
	assert.NotZero(t, tm.Read(addr.DIV))

	tm.Write(addr.DIV, 0xFF) // value is ignored; any write clears the divider
	assert.Zero(t, tm.Read(addr.DIV))
}

func TestDIVWriteCanCauseSpuriousTick(t *testing.T) {
	tm := New()
	tm.Write(addr.TAC, 0x04) // enabled, divider 1024 (bit 9)
	tm.Tick(512)             // sets bit 9 of the internal counter high

	assert.True(t, bitHigh(tm))

	tm.Write(addr.TIMA, 0x10)
	tm.Write(addr.DIV, 0x00) // clears bit 9 from 1 to 0: falling edge

	assert.Equal(t, uint8(0x11), tm.Read(addr.TIMA))
}

func TestDisabledTimerNeverTicks(t *testing.T) {
	tm := New()
	tm.Write(addr.TAC, 0x01) // divider selected but not enabled (bit 2 clear)
	tm.Tick(1 << 16)

	assert.Zero(t, tm.Read(addr.TIMA))
}

func bitHigh(tm *Timer) bool {
	return tm.selectedBit()
}
