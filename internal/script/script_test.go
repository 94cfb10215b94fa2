package script

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	t.Run("parses holds and taps", func(t *testing.T) {
		timeline, err := Parse("a:10-120,b:60")
		assert.NoError(t, err)

		buttonA, buttonB := timeline.At(10)
		assert.True(t, buttonA)
		assert.False(t, buttonB)

		buttonA, buttonB = timeline.At(60)
		assert.True(t, buttonA)
		assert.True(t, buttonB)

		buttonA, buttonB = timeline.At(121)
		assert.False(t, buttonA)
		assert.False(t, buttonB)
	})

	t.Run("empty schedule holds nothing", func(t *testing.T) {
		timeline, err := Parse("")
		assert.NoError(t, err)

		buttonA, buttonB := timeline.At(0)
		assert.False(t, buttonA)
		assert.False(t, buttonB)
		assert.Equal(t, -1, timeline.LastFrame())
	})

	t.Run("accepts whitespace and upper case buttons", func(t *testing.T) {
		timeline, err := Parse(" A:5 , b : 7-9 ")
		assert.NoError(t, err)

		buttonA, _ := timeline.At(5)
		assert.True(t, buttonA)
		_, buttonB := timeline.At(9)
		assert.True(t, buttonB)
	})

	t.Run("rejects malformed schedules", func(t *testing.T) {
		tests := []struct {
			name     string
			schedule string
		}{
			{name: "missing separator", schedule: "a10"},
			{name: "unknown button", schedule: "x:10"},
			{name: "invalid frame number", schedule: "a:ten"},
			{name: "invalid range end", schedule: "a:10-x"},
			{name: "reversed range", schedule: "a:20-10"},
			{name: "negative frame", schedule: "a:-5"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Parse(tt.schedule)
				assert.Error(t, err)
			})
		}
	})
}

func TestLastFrame(t *testing.T) {
	timeline, err := Parse("a:10-120,b:200")
	assert.NoError(t, err)
	assert.Equal(t, 200, timeline.LastFrame())
}
