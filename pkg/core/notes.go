package core

import (
	"fmt"
	"time"
)

// Notes are free-text annotations anchored to frame ranges. The three slices
// are parallel: note i covers StartFrames[i] for FrameLengths[i] frames and
// its text is Data[DataIdx[i]:DataIdx[i+1]] (or to the end for the last).
type Notes struct {
	Data         string
	StartFrames  []int32
	FrameLengths []int32
	DataIdx      []int32
}

// Len returns the number of notes.
func (n *Notes) Len() int { return len(n.StartFrames) }

// Text returns the text of note i.
func (n *Notes) Text(i int) string {
	start := int(n.DataIdx[i])
	end := len(n.Data)
	if i+1 < len(n.DataIdx) {
		end = int(n.DataIdx[i+1])
	}
	return n.Data[start:end]
}

// Add appends a note.
func (n *Notes) Add(startFrame, length int32, text string) {
	n.StartFrames = append(n.StartFrames, startFrame)
	n.FrameLengths = append(n.FrameLengths, length)
	n.DataIdx = append(n.DataIdx, int32(len(n.Data)))
	n.Data += text
}

// Timestamp is a calendar time packed into one integer:
// year<<26 | month<<22 | day<<17 | hour<<12 | minute<<6 | second.
type Timestamp uint64

// NullTimestamp marks a missing or unparseable timestamp.
const NullTimestamp Timestamp = 0

// PackTimestamp packs calendar fields. Fields are not range checked beyond
// their bit widths.
func PackTimestamp(year, month, day, hour, minute, second int) Timestamp {
	return Timestamp(uint64(year)<<26 |
		uint64(month&0xF)<<22 |
		uint64(day&0x1F)<<17 |
		uint64(hour&0x1F)<<12 |
		uint64(minute&0x3F)<<6 |
		uint64(second&0x3F))
}

func (t Timestamp) Year() int   { return int(t >> 26) }
func (t Timestamp) Month() int  { return int(t>>22) & 0xF }
func (t Timestamp) Day() int    { return int(t>>17) & 0x1F }
func (t Timestamp) Hour() int   { return int(t>>12) & 0x1F }
func (t Timestamp) Minute() int { return int(t>>6) & 0x3F }
func (t Timestamp) Second() int { return int(t) & 0x3F }

// IsNull reports whether the timestamp is missing.
func (t Timestamp) IsNull() bool { return t == NullTimestamp }

// Time converts to a UTC time.Time; the zero time for a null timestamp.
func (t Timestamp) Time() time.Time {
	if t.IsNull() {
		return time.Time{}
	}
	return time.Date(t.Year(), time.Month(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func (t Timestamp) String() string {
	if t.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}
