// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/nesgofirmware/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags}
	}
	if len(flags.Args()) > 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %q, all inputs are passed as flags", flags.Args()[0]),
		}
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nesgofirmware [options]\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateOptions checks option values that flag parsing can not.
func validateOptions(opts options.Program) error {
	if opts.Frames <= 0 {
		return fmt.Errorf("frame count %d has to be positive", opts.Frames)
	}
	if opts.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d has to be positive", opts.SampleRate)
	}
	if opts.Program != "" && opts.ROMOutput == "" {
		return fmt.Errorf("a program blob needs a ROM output file")
	}
	if opts.Pattern != "" && opts.ROMOutput == "" {
		return fmt.Errorf("a pattern blob needs a ROM output file")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Frames, "frames", 300, "number of frames to simulate")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace the simulation at the 60 Hz frame rate")
	flags.StringVar(&opts.Presses, "presses", "", "button press schedule, e.g. \"a:10-120,b:60-90\"")
	flags.StringVar(&opts.WAVOutput, "wav", "", "render the tone output of the run to this WAV file")
	flags.IntVar(&opts.SampleRate, "rate", 44100, "WAV sample rate")
	flags.StringVar(&opts.ROMOutput, "rom", "", "package the firmware image to this ROM file")
	flags.StringVar(&opts.Program, "prg", "", "machine code blob for the ROM program region")
	flags.StringVar(&opts.Pattern, "chr", "", "opaque graphics blob for the ROM pattern region")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
