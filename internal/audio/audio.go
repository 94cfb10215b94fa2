// Package audio implements the driver for the tone generator channel
// of the audio peripheral. A tone is selected by note index, the
// matching 16 bit timer period comes from a period table.
package audio

import (
	"fmt"

	"github.com/retroenv/nesgofirmware/internal/hal"
)

// Channel enable register bit of the driven pulse channel.
const channelEnableBit = 0x01

// Driver drives the tone generator channel through its register ports.
type Driver struct {
	regs  *hal.Registers
	table Table
}

// New creates a new audio driver using the given period table.
func New(regs *hal.Registers, table Table) (*Driver, error) {
	if len(table.periods) != NoteCount {
		return nil, fmt.Errorf("period table has %d entries instead of %d", len(table.periods), NoteCount)
	}
	return &Driver{
		regs:  regs,
		table: table,
	}, nil
}

// ConfigureChannel performs the one time channel setup, writing the
// channel enable flag and the envelope configuration byte.
func (d *Driver) ConfigureChannel(enable bool, envelope byte) {
	var channels byte
	if enable {
		channels = channelEnableBit
	}
	d.regs.Write(hal.ChannelEnable, channels)
	d.regs.Write(hal.ToneEnvelope, envelope)
}

// SetTone looks up the period for the note index and latches it into
// the channel timer. The call is idempotent, repeating it with the same
// index rewrites the same period and produces the same tone.
func (d *Driver) SetTone(note uint8) error {
	period, err := d.table.Period(note)
	if err != nil {
		return err
	}
	d.latchPeriod(period)
	return nil
}

// latchPeriod writes the low byte and then the high byte of the period
// to the timer ports. The order is the reverse of the video address
// latch, a hardware fact that has to be preserved.
func (d *Driver) latchPeriod(period uint16) {
	d.regs.Write(hal.ToneTimerLow, byte(period))
	d.regs.Write(hal.ToneTimerHigh, byte(period>>8))
}
