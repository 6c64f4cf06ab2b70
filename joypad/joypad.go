// Package joypad models the P1 register: a selector for which of the two
// 4-bit button groups (d-pad, face/start/select buttons) the low nibble
// reads as. 0 means pressed.
package joypad

import "github.com/joswald/pocketcore/bit"

// Button identifies one physical input.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad tracks button state and the P1 selection bits.
type Joypad struct {
	buttons uint8 // bits 0-3: A B Select Start group, 1 = released
	dpad    uint8 // bits 0-3: Right Left Up Down group, 1 = released
	select_ uint8 // bits 4-5 of P1, as last written

	RequestInterrupt func()
}

// New returns a joypad with no button selection and nothing pressed.
func New() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read returns the current P1 register value.
func (j *Joypad) Read() byte {
	result := uint8(0xC0) // bits 6-7 always read as 1
	result |= j.select_ & 0x30

	selectDpad := !bit.IsSet(4, j.select_)
	selectButtons := !bit.IsSet(5, j.select_)

	switch {
	case selectButtons && !selectDpad:
		result |= j.buttons & 0x0F
	case selectDpad && !selectButtons:
		result |= j.dpad & 0x0F
	case selectDpad && selectButtons:
		result |= j.buttons & j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write stores the P1 selection bits (4-5); the rest of the register is
// read-only from the CPU's side.
func (j *Joypad) Write(value byte) {
	j.select_ = value & 0x30
}

// SetButtonState updates one button's pressed/released state and requests
// the joypad interrupt on a high-to-low (press) transition of any button.
// The P1 selection bits are not consulted: a press in an unselected group
// requests the interrupt too.
func (j *Joypad) SetButtonState(b Button, pressed bool) {
	var group *uint8
	var bitIndex uint8

	switch b {
	case Right:
		group, bitIndex = &j.dpad, 0
	case Left:
		group, bitIndex = &j.dpad, 1
	case Up:
		group, bitIndex = &j.dpad, 2
	case Down:
		group, bitIndex = &j.dpad, 3
	case A:
		group, bitIndex = &j.buttons, 0
	case B:
		group, bitIndex = &j.buttons, 1
	case Select:
		group, bitIndex = &j.buttons, 2
	case Start:
		group, bitIndex = &j.buttons, 3
	default:
		return
	}

	before := bit.IsSet(bitIndex, *group)
	*group = bit.SetTo(bitIndex, *group, !pressed)
	after := bit.IsSet(bitIndex, *group)

	if before && !after && j.RequestInterrupt != nil {
		j.RequestInterrupt()
	}
}
