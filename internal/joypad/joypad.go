// Package joypad implements the Game Boy's P1 (0xFF00) joypad register:
// a bit-packed button-state sink with active-low reads and a select latch
// for choosing between the d-pad and the action buttons.
package joypad

import "github.com/rustyboy-go/rustyboy/internal/interrupts"

// Button indexes into the bit-packed state mask passed to SetButtons.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// P1 is the joypad register address.
const P1 = 0xFF00

// State is the joypad's P1 register. buttons/dpad hold one bit per button,
// active-low (0 = pressed), matching hardware's read-back polarity.
type State struct {
	buttons uint8 // bits 0-3: A, B, Select, Start
	dpad    uint8 // bits 0-3: Right, Left, Up, Down

	selectButtons bool // P1 bit 5 written low
	selectDpad    bool // P1 bit 4 written low

	irq *interrupts.Controller
}

// New returns a joypad with no buttons pressed, wired to raise the Joypad
// interrupt through irq.
func New(irq *interrupts.Controller) *State {
	return &State{buttons: 0x0F, dpad: 0x0F, irq: irq}
}

// Read returns the current P1 register value.
func (s *State) Read() uint8 {
	result := uint8(0xC0)
	if !s.selectDpad {
		result |= 1 << 4
	}
	if !s.selectButtons {
		result |= 1 << 5
	}

	bits := uint8(0x0F)
	if s.selectDpad {
		bits &= s.dpad
	}
	if s.selectButtons {
		bits &= s.buttons
	}
	return result | bits
}

// Write updates the select latch from the given P1 value.
func (s *State) Write(value uint8) {
	s.selectDpad = value&(1<<4) == 0
	s.selectButtons = value&(1<<5) == 0
}

// SetButtons replaces the entire button state from a bit-packed mask over
// {Right, Left, Up, Down, A, B, Select, Start} (bit order as Button's
// iota), raising the Joypad interrupt for any newly-pressed button.
func (s *State) SetButtons(mask uint8) {
	newButtons := packField(mask, ButtonA, ButtonB, ButtonSelect, ButtonStart)
	newDpad := packField(mask, ButtonRight, ButtonLeft, ButtonUp, ButtonDown)

	if s.fallingEdge(s.buttons, newButtons) || s.fallingEdge(s.dpad, newDpad) {
		s.irq.Request(interrupts.JoypadFlag)
	}

	s.buttons = newButtons
	s.dpad = newDpad
}

// Press sets a single button as pressed.
func (s *State) Press(b Button) {
	if group, bit := s.locate(b); *group&bit != 0 {
		*group &^= bit
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release sets a single button as released.
func (s *State) Release(b Button) {
	group, bit := s.locate(b)
	*group |= bit
}

func (s *State) locate(b Button) (*uint8, uint8) {
	switch b {
	case ButtonA:
		return &s.buttons, 1 << 0
	case ButtonB:
		return &s.buttons, 1 << 1
	case ButtonSelect:
		return &s.buttons, 1 << 2
	case ButtonStart:
		return &s.buttons, 1 << 3
	case ButtonRight:
		return &s.dpad, 1 << 0
	case ButtonLeft:
		return &s.dpad, 1 << 1
	case ButtonUp:
		return &s.dpad, 1 << 2
	default: // ButtonDown
		return &s.dpad, 1 << 3
	}
}

// fallingEdge reports whether any bit went from released (1) to pressed
// (0) between old and new active-low nibbles.
func (s *State) fallingEdge(old, new uint8) bool {
	return old&^new&0x0F != 0
}

// packField builds an active-low nibble from four bits of mask, ordered
// lsb-first as a, b, c, d.
func packField(mask uint8, a, b, c, d Button) uint8 {
	field := uint8(0x0F)
	if mask&(1<<a) != 0 {
		field &^= 1 << 0
	}
	if mask&(1<<b) != 0 {
		field &^= 1 << 1
	}
	if mask&(1<<c) != 0 {
		field &^= 1 << 2
	}
	if mask&(1<<d) != 0 {
		field &^= 1 << 3
	}
	return field
}
