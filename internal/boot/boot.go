// Package boot implements the one shot power-on sequence. It runs
// before the periodic frame signal is unmasked and leaves the
// peripherals in their configured state.
package boot

import (
	"context"
	"fmt"

	"github.com/retroenv/nesgofirmware/internal/audio"
	"github.com/retroenv/nesgofirmware/internal/video"
)

// DefaultMaxStatusPolls bounds the warm-up status polling. On real
// hardware the readiness flag asserts after a fixed internal cycle
// count, the bound only triggers when the peripheral is absent or
// faulty.
const DefaultMaxStatusPolls = 60000

// TileFill describes an optional background fill written during boot.
type TileFill struct {
	Address uint16
	TileA   byte
	TileB   byte
	Pairs   int
}

// Config holds the one time peripheral configuration written by the
// sequencer.
type Config struct {
	Palette    [video.PaletteSize]byte
	Envelope   byte
	Background *TileFill
}

// Options control the warm-up polling behavior.
type Options struct {
	// MaxStatusPolls bounds the number of status reads while waiting
	// for peripheral readiness. 0 polls until the context is
	// cancelled, matching the fail-stop spin of the original firmware.
	MaxStatusPolls int

	// Wait runs between failed status polls. It can sleep, yield or
	// simulate time in tests. nil waits busily.
	Wait func()
}

// Sequencer runs the ordered power-on steps exactly once.
type Sequencer struct {
	video *video.Driver
	audio *audio.Driver

	maxStatusPolls int
	wait           func()
}

// New creates a new boot sequencer.
func New(vd *video.Driver, au *audio.Driver, opts Options) *Sequencer {
	wait := opts.Wait
	if wait == nil {
		wait = func() {}
	}
	return &Sequencer{
		video:          vd,
		audio:          au,
		maxStatusPolls: opts.MaxStatusPolls,
		wait:           wait,
	}
}

// Run executes the power-on sequence. The order of the steps is fixed:
// rendering off, warm-up wait, one time palette and tone
// configuration, frame signal enable. An unready peripheral is
// reported as an error instead of spinning forever.
func (s *Sequencer) Run(ctx context.Context, cfg Config) error {
	s.video.DisableRendering()

	if err := s.awaitReadiness(ctx); err != nil {
		return err
	}

	if err := s.video.WritePalette(cfg.Palette); err != nil {
		return fmt.Errorf("writing palette: %w", err)
	}
	if bg := cfg.Background; bg != nil {
		if err := s.video.FillTiles(bg.Address, bg.TileA, bg.TileB, bg.Pairs); err != nil {
			return fmt.Errorf("writing background tiles: %w", err)
		}
	}
	s.audio.ConfigureChannel(true, cfg.Envelope)

	s.video.EnableFrameSignal()
	return nil
}

// awaitReadiness polls the video status register until the peripheral
// reports that its post reset warm-up completed. The readiness flag is
// one shot, polling continues until it is observed.
func (s *Sequencer) awaitReadiness(ctx context.Context) error {
	for polls := 0; s.maxStatusPolls == 0 || polls < s.maxStatusPolls; polls++ {
		if s.video.Ready() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("waiting for video readiness: %w", err)
		}
		s.wait()
	}
	return fmt.Errorf("video hardware not ready after %d status polls", s.maxStatusPolls)
}
