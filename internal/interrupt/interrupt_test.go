package interrupt

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/hal"
	"github.com/retroenv/nesgofirmware/internal/periph"
	"github.com/retroenv/nesgofirmware/internal/video"
)

func TestDispatch(t *testing.T) {
	t.Run("frame-ready runs the frame handler", func(t *testing.T) {
		device := periph.New(1)
		frames := 0
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)),
			func() error {
				frames++
				return nil
			}, nil)

		device.AssertFrameSignal()
		assert.NoError(t, dispatcher.Dispatch(context.Background(), FrameReady))
		assert.Equal(t, 1, frames)
	})

	t.Run("spurious frame-ready is ignored", func(t *testing.T) {
		device := periph.New(100)
		frames := 0
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)),
			func() error {
				frames++
				return nil
			}, nil)

		assert.NoError(t, dispatcher.Dispatch(context.Background(), FrameReady))
		assert.Equal(t, 0, frames)
	})

	t.Run("status read acknowledges the frame signal", func(t *testing.T) {
		device := periph.New(1)
		frames := 0
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)),
			func() error {
				frames++
				return nil
			}, nil)

		device.AssertFrameSignal()
		assert.NoError(t, dispatcher.Dispatch(context.Background(), FrameReady))
		assert.NoError(t, dispatcher.Dispatch(context.Background(), FrameReady))
		assert.Equal(t, 1, frames)
	})

	t.Run("frame handler errors are reported", func(t *testing.T) {
		device := periph.New(1)
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)),
			func() error {
				return errors.New("tone rejected")
			}, nil)

		device.AssertFrameSignal()
		err := dispatcher.Dispatch(context.Background(), FrameReady)
		assert.ErrorContains(t, err, "handling frame signal")
	})

	t.Run("reset runs the reset handler", func(t *testing.T) {
		device := periph.New(1)
		resets := 0
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)),
			nil, func(context.Context) error {
				resets++
				return nil
			})

		assert.NoError(t, dispatcher.Dispatch(context.Background(), Reset))
		assert.Equal(t, 1, resets)
	})

	t.Run("unused is acknowledged without action", func(t *testing.T) {
		device := periph.New(1)
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)), nil, nil)

		assert.NoError(t, dispatcher.Dispatch(context.Background(), Unused))
		assert.Equal(t, 0, device.StatusReads())
	})

	t.Run("unknown event is rejected", func(t *testing.T) {
		device := periph.New(1)
		dispatcher := New(log.NewTestLogger(t), video.New(hal.NewRegisters(device)), nil, nil)

		err := dispatcher.Dispatch(context.Background(), Event(200))
		assert.ErrorContains(t, err, "unknown event")
	})
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "frame-ready", FrameReady.String())
	assert.Equal(t, "reset", Reset.String())
	assert.Equal(t, "unused", Unused.String())
	assert.Equal(t, "event(200)", Event(200).String())
}
