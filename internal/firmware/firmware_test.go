package firmware

import (
	"context"
	"testing"

	"github.com/retroenv/retrogolib/arch/system/nes/register"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/audio"
	"github.com/retroenv/nesgofirmware/internal/frame"
	"github.com/retroenv/nesgofirmware/internal/interrupt"
	"github.com/retroenv/nesgofirmware/internal/periph"
)

func newTestFirmware(t *testing.T) (*Firmware, *periph.Device) {
	t.Helper()
	device := periph.New(2)
	fw, err := New(log.NewTestLogger(t), device, DefaultConfig())
	assert.NoError(t, err)
	return fw, device
}

func notePeriod(t *testing.T, note uint8) uint16 {
	t.Helper()
	period, err := audio.StandardTable().Period(note)
	assert.NoError(t, err)
	return period
}

func TestBoot(t *testing.T) {
	fw, device := newTestFirmware(t)

	assert.NoError(t, fw.Boot(context.Background()))

	assert.Equal(t, 2, device.StatusReads())
	assert.True(t, device.FrameSignalEnabled())
	assert.Equal(t, byte(0xBF), device.Envelope())
	assert.Equal(t, byte(0x01), device.ChannelsEnabled())
}

func TestDispatchFrames(t *testing.T) {
	tests := []struct {
		name     string
		buttonA  bool
		buttonB  bool
		wantNote uint8
	}{
		{name: "button A selects its tone", buttonA: true, wantNote: frame.NoteButtonA},
		{name: "button B selects its tone", buttonB: true, wantNote: frame.NoteButtonB},
		{name: "no button selects the idle tone", wantNote: frame.NoteIdle},
		{name: "button A dominates both", buttonA: true, buttonB: true, wantNote: frame.NoteButtonA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw, device := newTestFirmware(t)
			ctx := context.Background()

			assert.NoError(t, fw.Boot(ctx))

			device.SetButtons(tt.buttonA, tt.buttonB)
			device.AssertFrameSignal()
			assert.NoError(t, fw.Dispatch(ctx, interrupt.FrameReady))

			assert.Equal(t, notePeriod(t, tt.wantNote), device.TonePeriod())
		})
	}
}

func TestDispatchSpuriousFrame(t *testing.T) {
	fw, device := newTestFirmware(t)
	ctx := context.Background()

	assert.NoError(t, fw.Boot(ctx))

	device.SetButtons(true, false)
	assert.NoError(t, fw.Dispatch(ctx, interrupt.FrameReady))

	assert.Equal(t, uint16(0), device.TonePeriod())
}

func TestDispatchReset(t *testing.T) {
	fw, device := newTestFirmware(t)
	ctx := context.Background()

	assert.NoError(t, fw.Boot(ctx))

	device.AssertFrameSignal()
	assert.NoError(t, fw.Dispatch(ctx, interrupt.Reset))

	assert.Equal(t, []byte{0xBF, 0xBF}, device.WritesTo(register.APU_PL1_VOL))
}

func TestNoteName(t *testing.T) {
	fw, _ := newTestFirmware(t)

	assert.Equal(t, "Bb3", fw.NoteName(frame.NoteButtonA))
	assert.Equal(t, "F#5", fw.NoteName(frame.NoteButtonB))
	assert.Equal(t, "Ab4", fw.NoteName(frame.NoteIdle))
}

func TestRun(t *testing.T) {
	t.Run("boots, handles events and stops on channel close", func(t *testing.T) {
		fw, device := newTestFirmware(t)
		assert.NoError(t, fw.Boot(context.Background()))

		events := make(chan interrupt.Event, 2)
		device.AssertFrameSignal()
		events <- interrupt.FrameReady
		events <- interrupt.Unused
		close(events)

		assert.NoError(t, fw.Run(context.Background(), events))
		assert.True(t, device.FrameSignalEnabled())
		assert.Equal(t, notePeriod(t, frame.NoteIdle), device.TonePeriod())
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		fw, _ := newTestFirmware(t)

		ctx, cancel := context.WithCancel(context.Background())
		assert.NoError(t, fw.Boot(ctx))
		cancel()

		err := fw.Run(ctx, make(chan interrupt.Event))
		assert.Error(t, err)
	})
}
