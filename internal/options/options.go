// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	WAVOutput string // render the run's tone output to this WAV file
	ROMOutput string // package the firmware image to this ROM file
	Program   string // machine code blob for the ROM program region
	Pattern   string // opaque graphics blob for the ROM pattern region
}

// Flags contains behavior options.
type Flags struct {
	Frames     int    // number of frames to simulate
	Realtime   bool   // pace the simulation at the 60 Hz frame rate
	Presses    string // button press schedule, e.g. "a:10-120,b:60-90"
	SampleRate int    // WAV sample rate

	Debug bool
	Quiet bool
}

// Program options of the firmware simulator.
type Program struct {
	Parameters
	Flags
}
