// Package frame implements the periodic task that runs on every frame
// signal. It polls the input driver and selects the tone for the audio
// driver.
package frame

import (
	"fmt"

	"github.com/retroenv/nesgofirmware/internal/audio"
	"github.com/retroenv/nesgofirmware/internal/input"
)

// Note indexes selected per button state. Button A dominates button B
// when both are held.
const (
	NoteButtonA = 25
	NoteButtonB = 45
	NoteIdle    = 35
)

// Controller composes the input and audio drivers into the per frame
// update.
type Controller struct {
	input *input.Driver
	audio *audio.Driver
}

// New creates a new frame controller.
func New(in *input.Driver, au *audio.Driver) *Controller {
	return &Controller{
		input: in,
		audio: au,
	}
}

// Tick runs one frame update: poll the buttons, select the note for
// the held buttons and set the tone. The decision is computed fresh
// from the current state, only levels are used, not edges.
func (c *Controller) Tick() error {
	state := c.input.Poll()
	note := SelectNote(state.Current)
	if err := c.audio.SetTone(note); err != nil {
		return fmt.Errorf("setting tone for note %d: %w", note, err)
	}
	return nil
}

// SelectNote returns the note index for a button mask. First match
// wins: A beats B, no button selects the idle tone.
func SelectNote(buttons input.Buttons) uint8 {
	switch {
	case buttons&input.ButtonA != 0:
		return NoteButtonA
	case buttons&input.ButtonB != 0:
		return NoteButtonB
	default:
		return NoteIdle
	}
}
