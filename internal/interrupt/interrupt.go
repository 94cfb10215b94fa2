// Package interrupt routes the asynchronous hardware signals to their
// handler routines. The three signals of the console map to a fixed
// event set, mirroring the static vector table of the program image.
package interrupt

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/nesgofirmware/internal/video"
)

// Event identifies a hardware signal.
type Event uint8

// Events delivered by the hardware, in vector table order.
const (
	FrameReady Event = iota // periodic frame signal
	Reset                   // power-on or reset line
	Unused                  // general interrupt line, acknowledged only
)

var eventNames = map[Event]string{
	FrameReady: "frame-ready",
	Reset:      "reset",
	Unused:     "unused",
}

func (e Event) String() string {
	name, ok := eventNames[e]
	if !ok {
		return fmt.Sprintf("event(%d)", uint8(e))
	}
	return name
}

// Dispatcher routes events to the statically wired handlers. The
// wiring is fixed at construction, mirroring a link time vector table.
type Dispatcher struct {
	logger *log.Logger
	video  *video.Driver

	frameHandler func() error
	resetHandler func(context.Context) error
}

// New creates a new dispatcher. The frame handler runs on genuine
// frame-ready events, the reset handler on reset events.
func New(logger *log.Logger, vd *video.Driver,
	frameHandler func() error, resetHandler func(context.Context) error) *Dispatcher {
	return &Dispatcher{
		logger:       logger,
		video:        vd,
		frameHandler: frameHandler,
		resetHandler: resetHandler,
	}
}

// Dispatch routes one event to its handler.
//
// A frame-ready event is checked against the video status register
// first: if the readiness flag is not set the call was spurious and
// returns without action. The status read clears the flag, which
// acknowledges the signal and prevents re-entry for this frame.
// An unused event is acknowledged without action.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	switch event {
	case FrameReady:
		if !d.video.Ready() {
			d.logger.Debug("Ignoring spurious frame signal")
			return nil
		}
		if err := d.frameHandler(); err != nil {
			return fmt.Errorf("handling frame signal: %w", err)
		}
		return nil

	case Reset:
		if err := d.resetHandler(ctx); err != nil {
			return fmt.Errorf("handling reset signal: %w", err)
		}
		return nil

	case Unused:
		return nil

	default:
		return fmt.Errorf("unknown event %s", event)
	}
}
