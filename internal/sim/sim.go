// Package sim runs the firmware against the simulated peripherals,
// frame stepped: every iteration applies the scripted button levels,
// asserts the frame signal and dispatches it to the firmware.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/firmware"
	"github.com/retroenv/nesgofirmware/internal/frame"
	"github.com/retroenv/nesgofirmware/internal/interrupt"
	"github.com/retroenv/nesgofirmware/internal/periph"
	"github.com/retroenv/nesgofirmware/internal/script"
	"github.com/retroenv/nesgofirmware/internal/wave"
)

// framePeriod is the real-time duration of one frame at the periodic
// signal rate of 60 Hz.
const framePeriod = time.Second / 60

// defaultWarmupReads is the number of status reads the simulated
// peripheral takes to complete its warm-up after reset.
const defaultWarmupReads = 2

// noNote marks that no tone was selected yet.
const noNote = 0xFF

// Options configure a simulation run.
type Options struct {
	Frames   int
	Realtime bool
}

// Result holds the outcome of a simulation run.
type Result struct {
	Frames   int
	Segments []wave.Segment
}

// Simulator wires the firmware to the simulated peripheral device.
type Simulator struct {
	logger   *log.Logger
	device   *periph.Device
	firmware *firmware.Firmware
	timeline script.Timeline
}

// New creates a simulator for the given firmware configuration and
// button press timeline. warmupReads overrides the simulated warm-up
// length, 0 keeps the default.
func New(logger *log.Logger, cfg firmware.Config, timeline script.Timeline, warmupReads int) (*Simulator, error) {
	warmup := warmupReads
	if warmup <= 0 {
		warmup = defaultWarmupReads
	}
	device := periph.New(warmup)

	fw, err := firmware.New(logger, device, cfg)
	if err != nil {
		return nil, fmt.Errorf("assembling firmware: %w", err)
	}

	return &Simulator{
		logger:   logger,
		device:   device,
		firmware: fw,
		timeline: timeline,
	}, nil
}

// Device returns the simulated peripheral device.
func (s *Simulator) Device() *periph.Device {
	return s.device
}

// Run boots the firmware and steps through the configured number of
// frames. It returns the tone timeline of the run.
func (s *Simulator) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := s.firmware.Boot(ctx); err != nil {
		return nil, err
	}
	if !s.device.FrameSignalEnabled() {
		return nil, fmt.Errorf("firmware did not enable the frame signal during boot")
	}

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(framePeriod)
		defer ticker.Stop()
	}

	result := &Result{}
	lastNote := uint8(noNote)

	for i := 0; i < opts.Frames; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return result, err
		}

		buttonA, buttonB := s.timeline.At(i)
		s.device.SetButtons(buttonA, buttonB)
		s.device.AssertFrameSignal()

		if err := s.firmware.Dispatch(ctx, interrupt.FrameReady); err != nil {
			return result, fmt.Errorf("frame %d: %w", i, err)
		}

		period := s.device.TonePeriod()
		note := frame.SelectNote(s.firmware.Input().State().Current)
		if note != lastNote {
			s.logger.Info("Tone change",
				log.Int("frame", i),
				log.Uint8("note", note),
				log.String("name", s.firmware.NoteName(note)),
				log.Uint16("period", period),
			)
			lastNote = note
		}

		result.Frames++
		s.recordPeriod(result, period)
	}
	return result, nil
}

// recordPeriod extends the last segment or starts a new one when the
// period changed.
func (s *Simulator) recordPeriod(result *Result, period uint16) {
	last := len(result.Segments) - 1
	if last >= 0 && result.Segments[last].Period == period {
		result.Segments[last].Frames++
		return
	}
	result.Segments = append(result.Segments, wave.Segment{
		Period: period,
		Frames: 1,
	})
}
