package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joswald/pocketcore/addr"
)

func TestImmediateTransferClearsStartBitAndFiresInterrupt(t *testing.T) {
	s := New()
	requested := false
	s.RequestInterrupt = func() { requested = true }

	s.Write(addr.SB, 'A')
	s.Write(addr.SC, 0x81) // start + internal clock

	assert.True(t, requested)
	assert.Zero(t, s.Read(addr.SC)&0x80)
	assert.Equal(t, byte(0xFF), s.Read(addr.SB))
}

func TestFixedTimingDelaysCompletion(t *testing.T) {
	s := New(WithFixedTiming())
	requested := false
	s.RequestInterrupt = func() { requested = true }

	s.Write(addr.SB, 'A')
	s.Write(addr.SC, 0x81)
	assert.False(t, requested)

	s.Tick(4095)
	assert.False(t, requested)

	s.Tick(1)
	assert.True(t, requested)
}

func TestTransferRequiresStartAndClockBits(t *testing.T) {
	s := New()
	requested := false
	s.RequestInterrupt = func() { requested = true }

	s.Write(addr.SC, 0x80) // start without internal clock
	assert.False(t, requested)
}
