// Package input implements the driver for the serial shift input
// peripheral. A strobe pulse snapshots the button state into the
// peripheral's shift register, single bits are then read serially.
package input

import "github.com/retroenv/nesgofirmware/internal/hal"

// Buttons is a bitmask of tracked buttons.
type Buttons byte

// Tracked buttons, the bit positions are fixed.
const (
	ButtonA Buttons = 1 << iota
	ButtonB
)

// trackedButtons is the number of bits read per poll, in the
// peripheral's fixed shift order: A first, then B.
const trackedButtons = 2

// State holds the current and previous button masks for edge
// detection.
type State struct {
	Current  Buttons
	Previous Buttons
}

// Held reports whether the button is down in the current state.
func (s State) Held(b Buttons) bool {
	return s.Current&b != 0
}

// JustPressed reports whether the button went down since the previous
// poll.
func (s State) JustPressed(b Buttons) bool {
	return s.Current&b != 0 && s.Previous&b == 0
}

// Driver polls the input peripheral and owns the button state, no
// other component mutates it.
type Driver struct {
	regs  *hal.Registers
	state State
}

// New creates a new input driver, starting with all buttons released.
func New(regs *hal.Registers) *Driver {
	return &Driver{regs: regs}
}

// Poll shifts the current state into the previous state and rebuilds
// the current state from fresh peripheral reads. The strobe pulse
// latches the peripheral's shift register, then one bit per tracked
// button is read in the peripheral's fixed shift order.
func (d *Driver) Poll() State {
	d.state.Previous = d.state.Current
	d.state.Current = 0

	d.regs.Write(hal.Controller, 1)
	d.regs.Write(hal.Controller, 0)

	for bit := 0; bit < trackedButtons; bit++ {
		if d.regs.Read(hal.Controller)&1 != 0 {
			d.state.Current |= 1 << bit
		}
	}
	return d.state
}

// State returns the state of the last poll.
func (d *Driver) State() State {
	return d.state
}
