package audio

import "fmt"

// NoteCount is the number of notes in a period table, valid note
// indexes are 0 to NoteCount-1.
const NoteCount = 76

// MaxNote is the highest valid note index.
const MaxNote = NoteCount - 1

// Table maps note indexes to 16 bit channel timer periods. The periods
// are calibration data, higher indexes map to shorter periods and
// higher pitch.
type Table struct {
	periods []uint16
	names   []string
}

// NewTable creates a period table from the given periods. The table
// has to contain exactly NoteCount entries.
func NewTable(periods []uint16) (Table, error) {
	if len(periods) != NoteCount {
		return Table{}, fmt.Errorf("period table has %d entries instead of %d", len(periods), NoteCount)
	}
	return Table{periods: periods}, nil
}

// Period returns the timer period for a note index. Indexes outside of
// the table are rejected instead of wrapping.
func (t Table) Period(note uint8) (uint16, error) {
	if int(note) >= len(t.periods) {
		return 0, fmt.Errorf("note index %d exceeds the table maximum of %d", note, len(t.periods)-1)
	}
	return t.periods[note], nil
}

// Name returns the note name for a note index, or an empty string if
// the table carries no names.
func (t Table) Name(note uint8) string {
	if t.names == nil || int(note) >= len(t.names) {
		return ""
	}
	return t.names[note]
}

// StandardTable returns the default period table tuned for the
// console's CPU clock, covering the notes A-1 to C-8 in semitone steps.
func StandardTable() Table {
	periods := make([]uint16, NoteCount)
	names := make([]string, NoteCount)
	for i, note := range standardNotes {
		periods[i] = note.period
		names[i] = note.name
	}
	return Table{
		periods: periods,
		names:   names,
	}
}

// standardNotes holds the period and name per semitone. The periods
// follow period = cpuClock / (16 * frequency) - 1 with a CPU clock of
// 1789773 Hz.
var standardNotes = [NoteCount]struct {
	period uint16
	name   string
}{
	{0x07F0, "A-1"}, {0x077C, "Bb1"}, {0x0710, "B-1"}, {0x06AC, "C-2"},
	{0x064C, "C#2"}, {0x05F2, "D-2"}, {0x059E, "Eb2"}, {0x054C, "E-2"},
	{0x0501, "F-2"}, {0x04B8, "F#2"}, {0x0474, "G-2"}, {0x0434, "Ab2"},
	{0x03F8, "A-2"}, {0x03BE, "Bb2"}, {0x0388, "B-2"}, {0x0356, "C-3"},
	{0x0326, "C#3"}, {0x02F9, "D-3"}, {0x02CF, "Eb3"}, {0x02A6, "E-3"},
	{0x0280, "F-3"}, {0x025C, "F#3"}, {0x023A, "G-3"}, {0x021A, "Ab3"},
	{0x01FC, "A-3"}, {0x01DF, "Bb3"}, {0x01C4, "B-3"}, {0x01AB, "C-4"},
	{0x0193, "C#4"}, {0x017C, "D-4"}, {0x0167, "Eb4"}, {0x0153, "E-4"},
	{0x0140, "F-4"}, {0x012E, "F#4"}, {0x011D, "G-4"}, {0x010D, "Ab4"},
	{0x00FE, "A-4"}, {0x00EF, "Bb4"}, {0x00E2, "B-4"}, {0x00D5, "C-5"},
	{0x00C9, "C#5"}, {0x00BE, "D-5"}, {0x00B3, "Eb5"}, {0x00A9, "E-5"},
	{0x00A0, "F-5"}, {0x0097, "F#5"}, {0x008E, "G-5"}, {0x0086, "Ab5"},
	{0x007E, "A-5"}, {0x0077, "Bb5"}, {0x0071, "B-5"}, {0x006A, "C-6"},
	{0x0064, "C#6"}, {0x005F, "D-6"}, {0x0059, "Eb6"}, {0x0054, "E-6"},
	{0x0050, "F-6"}, {0x004B, "F#6"}, {0x0047, "G-6"}, {0x0043, "Ab6"},
	{0x003F, "A-6"}, {0x003B, "Bb6"}, {0x0038, "B-6"}, {0x0035, "C-7"},
	{0x0032, "C#7"}, {0x002F, "D-7"}, {0x002C, "Eb7"}, {0x002A, "E-7"},
	{0x0028, "F-7"}, {0x0026, "F#7"}, {0x0024, "G-7"}, {0x0022, "Ab7"},
	{0x0020, "A-7"}, {0x001E, "Bb7"}, {0x001C, "B-7"}, {0x001A, "C-8"},
}
