// Package firmware composes the drivers into the control loop runtime:
// boot once, then idle until the next hardware event arrives and
// dispatch it. All work after boot happens inside the frame handler.
package firmware

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/audio"
	"github.com/retroenv/nesgofirmware/internal/boot"
	"github.com/retroenv/nesgofirmware/internal/frame"
	"github.com/retroenv/nesgofirmware/internal/hal"
	"github.com/retroenv/nesgofirmware/internal/input"
	"github.com/retroenv/nesgofirmware/internal/interrupt"
	"github.com/retroenv/nesgofirmware/internal/video"
)

// Config holds the firmware configuration written during boot.
type Config struct {
	Boot boot.Config

	// Table is the note period table, nil selects the standard table.
	Table *audio.Table

	// BootOptions control the warm-up polling of the boot sequencer.
	BootOptions boot.Options
}

// DefaultConfig returns the configuration of the sample firmware: a
// grayscale palette, a constant volume pulse envelope and a blank
// background fill.
func DefaultConfig() Config {
	return Config{
		Boot: boot.Config{
			Palette:  [video.PaletteSize]byte{0x0F, 0x00, 0x10, 0x30},
			Envelope: 0xBF,
			Background: &boot.TileFill{
				Address: 0x2000,
				TileA:   0x00,
				TileB:   0x00,
				Pairs:   480,
			},
		},
		BootOptions: boot.Options{
			MaxStatusPolls: boot.DefaultMaxStatusPolls,
		},
	}
}

// Firmware is the assembled control loop runtime.
type Firmware struct {
	logger *log.Logger
	config Config
	table  audio.Table

	regs       *hal.Registers
	video      *video.Driver
	audio      *audio.Driver
	input      *input.Driver
	frame      *frame.Controller
	boot       *boot.Sequencer
	dispatcher *interrupt.Dispatcher

	booted bool
}

// New assembles the firmware on top of a memory bus.
func New(logger *log.Logger, mem hal.Memory, cfg Config) (*Firmware, error) {
	regs := hal.NewRegisters(mem)

	table := audio.StandardTable()
	if cfg.Table != nil {
		table = *cfg.Table
	}

	videoDriver := video.New(regs)
	audioDriver, err := audio.New(regs, table)
	if err != nil {
		return nil, fmt.Errorf("creating audio driver: %w", err)
	}
	inputDriver := input.New(regs)
	frameController := frame.New(inputDriver, audioDriver)
	sequencer := boot.New(videoDriver, audioDriver, cfg.BootOptions)

	fw := &Firmware{
		logger: logger,
		config: cfg,
		table:  table,
		regs:   regs,
		video:  videoDriver,
		audio:  audioDriver,
		input:  inputDriver,
		frame:  frameController,
		boot:   sequencer,
	}
	fw.dispatcher = interrupt.New(logger, videoDriver, frameController.Tick, fw.Boot)
	return fw, nil
}

// Boot runs the power-on sequence. It is wired to the reset event, a
// reset reruns it.
func (f *Firmware) Boot(ctx context.Context) error {
	if err := f.boot.Run(ctx, f.config.Boot); err != nil {
		return fmt.Errorf("boot sequence: %w", err)
	}
	f.booted = true
	f.logger.Debug("Boot sequence completed")
	return nil
}

// Dispatch delivers one hardware event to the dispatcher.
func (f *Firmware) Dispatch(ctx context.Context, event interrupt.Event) error {
	return f.dispatcher.Dispatch(ctx, event)
}

// Input returns the input driver, callers may read its state.
func (f *Firmware) Input() *input.Driver {
	return f.input
}

// NoteName returns the name of a note index in the active table.
func (f *Firmware) NoteName(note uint8) string {
	return f.table.Name(note)
}

// Run boots the firmware if needed and then idles, dispatching each
// event received on the channel. It returns when the context is
// cancelled or the event channel is closed.
func (f *Firmware) Run(ctx context.Context, events <-chan interrupt.Event) error {
	if !f.booted {
		if err := f.Boot(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := f.Dispatch(ctx, event); err != nil {
				return fmt.Errorf("dispatching %s event: %w", event, err)
			}
		}
	}
}
