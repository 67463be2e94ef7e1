// Package sidecar reads the metadata footer that follows the raw event
// region and reads and writes the notes block stored there.
//
// The footer is a small self-describing key/length/value container. Only
// three keys matter here, so fields are located by substring search instead
// of a generic parse.
package sidecar

import (
	"bytes"
	"encoding/binary"

	"github.com/framelog/slp/pkg/core"
)

// Keys as they appear on the wire: a 'U' length byte then the key.
const (
	keyMetadata  = "U\x08metadata"
	keyStartAt   = "U\x07startAt"
	keyLastFrame = "U\x09lastFrame"
	keyNotes     = "U\x05notes"
)

// DurationBias converts the last frame counter to a frame count.
const DurationBias = core.FrameBias + 1

// ReadInfo extracts the start time, declared duration and notes from a
// footer. Missing start time or duration are not errors.
func ReadInfo(footer []byte) (core.GameInfo, error) {
	info := core.GameInfo{StartAt: ReadStartAt(footer)}
	if d, ok := ReadDuration(footer); ok {
		info.Duration = d
	}
	notes, err := ReadNotes(footer)
	if err != nil {
		return core.GameInfo{}, err
	}
	info.Notes = notes
	return info, nil
}

// ReadStartAt parses the startAt string field. Anything other than a
// well-formed YYYY-MM-DDTHH:MM:SS prefix yields core.NullTimestamp.
func ReadStartAt(footer []byte) core.Timestamp {
	i := bytes.Index(footer, []byte(keyStartAt+"SU"))
	if i < 0 {
		return core.NullTimestamp
	}
	p := i + len(keyStartAt) + 2
	if p >= len(footer) {
		return core.NullTimestamp
	}
	n := int(footer[p])
	p++
	if p+n > len(footer) {
		return core.NullTimestamp
	}
	return ParseTimestamp(footer[p : p+n])
}

// ParseTimestamp packs an ISO-8601 style date-time. Only the digits are
// validated; separators are skipped positionally.
func ParseTimestamp(s []byte) core.Timestamp {
	if len(s) < 19 {
		return core.NullTimestamp
	}
	fields := [6]struct{ off, n int }{
		{0, 4}, {5, 2}, {8, 2}, {11, 2}, {14, 2}, {17, 2},
	}
	var v [6]int
	for i, f := range fields {
		for _, c := range s[f.off : f.off+f.n] {
			if c < '0' || c > '9' {
				return core.NullTimestamp
			}
			v[i] = v[i]*10 + int(c-'0')
		}
	}
	return core.PackTimestamp(v[0], v[1], v[2], v[3], v[4], v[5])
}

// ReadDuration returns the declared game length in frames.
func ReadDuration(footer []byte) (int, bool) {
	i := bytes.Index(footer, []byte(keyLastFrame+"l"))
	if i < 0 {
		return 0, false
	}
	p := i + len(keyLastFrame) + 1
	if p+4 > len(footer) {
		return 0, false
	}
	last := int32(binary.BigEndian.Uint32(footer[p:]))
	return int(last) + DurationBias, true
}

// Metadata is the subset of footer fields this package understands.
type Metadata struct {
	StartAt   string
	LastFrame int32
	// HasLastFrame controls whether lastFrame is written at all.
	HasLastFrame bool
	Notes        *core.Notes
}

// EncodeFooter renders m as a complete footer: the metadata object followed
// by the closing brace of the outer container.
func EncodeFooter(m Metadata) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(keyMetadata + "{")
	if m.StartAt != "" {
		b.WriteString(keyStartAt + "SU")
		b.WriteByte(byte(len(m.StartAt)))
		b.WriteString(m.StartAt)
	}
	if m.HasLastFrame {
		b.WriteString(keyLastFrame + "l")
		_ = binary.Write(&b, binary.BigEndian, m.LastFrame)
	}
	if m.Notes != nil {
		if err := WriteNotes(&b, *m.Notes); err != nil {
			return nil, err
		}
	}
	b.WriteString("}}")
	return b.Bytes(), nil
}
