// Package wave renders the tone channel output of a simulation run to
// a WAV file. The pulse wave follows the hardware formula: a channel
// timer period of p produces a frequency of cpuClock / (16 * (p + 1)),
// periods below 8 silence the channel.
package wave

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// cpuClock is the console CPU clock in Hz that the channel timer
// divides.
const cpuClock = 1789773

// frameRate is the periodic signal rate, one tone segment frame lasts
// 1/60 second.
const frameRate = 60

// minimumPeriod is the shortest period the channel still produces an
// audible pulse for, shorter periods mute the channel.
const minimumPeriod = 8

// Segment is a stretch of frames during which one period was latched.
type Segment struct {
	Period uint16
	Frames int
}

// Renderer renders tone segments to PCM samples.
type Renderer struct {
	sampleRate int
	dutyCycle  float64
	volume     float64
}

// NewRenderer creates a renderer with the given sample rate. A rate of
// 0 selects 44100 Hz.
func NewRenderer(sampleRate int) *Renderer {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Renderer{
		sampleRate: sampleRate,
		dutyCycle:  0.5,
		volume:     0.25,
	}
}

// Render synthesizes the segments into 16 bit mono samples.
func (r *Renderer) Render(segments []Segment) []int {
	var samples []int
	amplitude := int(r.volume * 32767)

	for _, segment := range segments {
		count := segment.Frames * r.sampleRate / frameRate
		if segment.Period < minimumPeriod {
			samples = append(samples, make([]int, count)...)
			continue
		}

		periodSeconds := float64(16*(int(segment.Period)+1)) / cpuClock
		for i := 0; i < count; i++ {
			seconds := float64(i) / float64(r.sampleRate)
			phase := seconds / periodSeconds
			phase -= float64(int(phase))
			if phase <= r.dutyCycle {
				samples = append(samples, amplitude)
			} else {
				samples = append(samples, -amplitude)
			}
		}
	}
	return samples
}

// WriteWAV renders the segments and encodes them as a 16 bit mono WAV
// stream.
func (r *Renderer) WriteWAV(w io.WriteSeeker, segments []Segment) error {
	samples := r.Render(segments)

	buffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  r.sampleRate,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	encoder := wav.NewEncoder(w, r.sampleRate, 16, 1, 1)
	if err := encoder.Write(buffer); err != nil {
		return fmt.Errorf("encoding samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalizing wav stream: %w", err)
	}
	return nil
}
