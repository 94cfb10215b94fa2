// Package script parses button press schedules for the simulator. A
// schedule lists button and frame ranges, for example "a:10-120,b:60"
// holds button A during frames 10 to 120 and taps button B in frame 60.
package script

import (
	"fmt"
	"strconv"
	"strings"
)

// press is one scheduled button hold over an inclusive frame range.
type press struct {
	button string
	first  int
	last   int
}

// Timeline answers which buttons are held in a given frame.
type Timeline struct {
	presses []press
}

// Parse parses a press schedule. An empty schedule is valid and holds
// no buttons.
func Parse(schedule string) (Timeline, error) {
	var t Timeline
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return t, nil
	}

	for _, entry := range strings.Split(schedule, ",") {
		p, err := parseEntry(entry)
		if err != nil {
			return Timeline{}, fmt.Errorf("parsing schedule entry %q: %w", entry, err)
		}
		t.presses = append(t.presses, p)
	}
	return t, nil
}

// At returns the button levels for a frame.
func (t Timeline) At(frame int) (buttonA, buttonB bool) {
	for _, p := range t.presses {
		if frame < p.first || frame > p.last {
			continue
		}
		switch p.button {
		case "a":
			buttonA = true
		case "b":
			buttonB = true
		}
	}
	return buttonA, buttonB
}

// LastFrame returns the last frame any press is scheduled for, -1 for
// an empty timeline.
func (t Timeline) LastFrame() int {
	last := -1
	for _, p := range t.presses {
		if p.last > last {
			last = p.last
		}
	}
	return last
}

func parseEntry(entry string) (press, error) {
	button, frames, ok := strings.Cut(strings.TrimSpace(entry), ":")
	if !ok {
		return press{}, fmt.Errorf("missing ':' separator")
	}

	button = strings.ToLower(strings.TrimSpace(button))
	if button != "a" && button != "b" {
		return press{}, fmt.Errorf("unknown button %q", button)
	}

	firstText, lastText, ranged := strings.Cut(frames, "-")
	first, err := strconv.Atoi(strings.TrimSpace(firstText))
	if err != nil {
		return press{}, fmt.Errorf("invalid frame number %q", firstText)
	}
	last := first
	if ranged {
		last, err = strconv.Atoi(strings.TrimSpace(lastText))
		if err != nil {
			return press{}, fmt.Errorf("invalid frame number %q", lastText)
		}
	}

	if first < 0 || last < first {
		return press{}, fmt.Errorf("invalid frame range %d-%d", first, last)
	}

	return press{
		button: button,
		first:  first,
		last:   last,
	}, nil
}
