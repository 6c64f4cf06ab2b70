package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDpadReadsDpadState(t *testing.T) {
	j := New()
	j.Write(0x20) // bit 4 clear -> d-pad selected
	j.SetButtonState(Down, true)

	assert.Zero(t, j.Read()&0x08)
	assert.NotZero(t, j.Read()&0x01) // Right still released
}

func TestSelectButtonsReadsButtonState(t *testing.T) {
	j := New()
	j.Write(0x10) // bit 5 clear -> buttons selected
	j.SetButtonState(A, true)

	assert.Zero(t, j.Read()&0x01)
}

func TestNoSelectionReadsAllReleased(t *testing.T) {
	j := New()
	j.Write(0x30)
	j.SetButtonState(A, true)
	j.SetButtonState(Down, true)

	assert.Equal(t, byte(0x0F), j.Read()&0x0F)
}

func TestPressTransitionRequestsInterrupt(t *testing.T) {
	j := New()
	requested := false
	j.RequestInterrupt = func() { requested = true }

	j.SetButtonState(Start, true)
	assert.True(t, requested)

	requested = false
	j.SetButtonState(Start, true) // already pressed: no new edge
	assert.False(t, requested)
}
