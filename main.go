// Package main implements a register level simulator for the console's
// control loop firmware: boot, frame-synchronized updates and the
// button controlled tone generator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/cli"
	"github.com/retroenv/nesgofirmware/internal/config"
	"github.com/retroenv/nesgofirmware/internal/firmware"
	"github.com/retroenv/nesgofirmware/internal/options"
	"github.com/retroenv/nesgofirmware/internal/rom"
	"github.com/retroenv/nesgofirmware/internal/script"
	"github.com/retroenv/nesgofirmware/internal/sim"
	"github.com/retroenv/nesgofirmware/internal/wave"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Simulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("nesgofirmware - NES firmware control loop simulator",
		log.String("version", buildinfo.Version(version, commit, date)),
	)
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	timeline, err := script.Parse(opts.Presses)
	if err != nil {
		return fmt.Errorf("parsing press schedule: %w", err)
	}
	if last := timeline.LastFrame(); last >= opts.Frames {
		logger.Warn("Press schedule extends past the simulated frames",
			log.Int("lastPressFrame", last),
			log.Int("frames", opts.Frames),
		)
	}

	simulator, err := sim.New(logger, firmware.DefaultConfig(), timeline, 0)
	if err != nil {
		return err
	}

	result, err := simulator.Run(ctx, sim.Options{
		Frames:   opts.Frames,
		Realtime: opts.Realtime,
	})
	if err != nil {
		return err
	}
	logger.Info("Simulation finished",
		log.Int("frames", result.Frames),
		log.Int("toneSegments", len(result.Segments)),
	)

	if opts.WAVOutput != "" {
		if err := writeWAV(logger, opts, result); err != nil {
			return err
		}
	}
	if opts.ROMOutput != "" {
		if err := writeROM(logger, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeWAV(logger *log.Logger, opts options.Program, result *sim.Result) error {
	file, err := os.Create(opts.WAVOutput)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", opts.WAVOutput, err)
	}

	renderer := wave.NewRenderer(opts.SampleRate)
	if err := renderer.WriteWAV(file, result.Segments); err != nil {
		_ = file.Close()
		return fmt.Errorf("rendering tone output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", opts.WAVOutput, err)
	}

	logger.Info("Tone output written", log.String("file", opts.WAVOutput))
	return nil
}

func writeROM(logger *log.Logger, opts options.Program) error {
	image := rom.Image{
		Vectors: rom.DefaultVectors(),
	}

	var err error
	if opts.Program != "" {
		image.Program, err = os.ReadFile(opts.Program)
		if err != nil {
			return fmt.Errorf("reading program blob: %w", err)
		}
	}
	if opts.Pattern != "" {
		image.Pattern, err = os.ReadFile(opts.Pattern)
		if err != nil {
			return fmt.Errorf("reading pattern blob: %w", err)
		}
	}

	file, err := os.Create(opts.ROMOutput)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", opts.ROMOutput, err)
	}
	if err := rom.Save(file, image); err != nil {
		_ = file.Close()
		return fmt.Errorf("packaging image: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", opts.ROMOutput, err)
	}

	logger.Info("Cartridge image written", log.String("file", opts.ROMOutput))
	return nil
}
