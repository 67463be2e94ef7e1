package parser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/framelog/slp/pkg/core"
)

// Magic is the fixed prefix of every raw replay: the opening of the outer
// container object and the typed, counted "raw" array.
const Magic = "{U\x03raw[$U#l"

// HeaderSize is the magic plus the u32 declared length of the raw region.
const HeaderSize = len(Magic) + 4

// Event codes.
const (
	EventMessageSplitter   byte = 0x10
	EventPayloadSizes      byte = 0x35
	EventGameStart         byte = 0x36
	EventPreUpdate         byte = 0x37
	EventPostUpdate        byte = 0x38
	EventGameEnd           byte = 0x39
	EventFrameStart        byte = 0x3A
	EventItemUpdate        byte = 0x3B
	EventFrameBookend      byte = 0x3C
	EventGeckoList         byte = 0x3D
	EventFountainPlatform  byte = 0x3F
	EventWhispy            byte = 0x40
	EventStadiumTransition byte = 0x41
)

// SizeTable maps an event code to its declared payload length, excluding
// the code byte itself. Zero means the code was not declared.
type SizeTable [256]uint16

// Size returns the declared payload size of code.
func (t *SizeTable) Size(code byte) (int, bool) {
	n := t[code]
	return int(n), n != 0
}

// Header holds the validated offsets of a raw replay.
type Header struct {
	// EventsOffset is the first byte after the event-size table.
	EventsOffset int
	// FooterOffset is the first byte after the raw region.
	FooterOffset int
	Sizes        SizeTable
}

// IsReplay reports whether b starts with the replay magic.
func IsReplay(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Magic))
}

// ParseHeader validates the magic, computes the footer offset and reads the
// event-size table.
func ParseHeader(data []byte) (*Header, error) {
	if !IsReplay(data) {
		return nil, core.ErrFormatMismatch
	}
	if len(data) < HeaderSize {
		return nil, core.Invalid(core.LocHeader, len(Magic), "length field truncated")
	}
	rawLen := binary.BigEndian.Uint32(data[len(Magic):HeaderSize])
	footer := HeaderSize + int(rawLen)
	if footer > len(data) || footer < HeaderSize {
		return nil, core.Invalid(core.LocHeader, len(Magic),
			"declared length %d runs past buffer of %d bytes", rawLen, len(data))
	}

	h := &Header{FooterOffset: footer}
	n, err := readSizeTable(data[HeaderSize:footer], &h.Sizes)
	if err != nil {
		return nil, err
	}
	h.EventsOffset = HeaderSize + n
	return h, nil
}

// readSizeTable fills t from the payload-sizes event at the start of raw and
// returns the number of bytes it occupies.
func readSizeTable(raw []byte, t *SizeTable) (int, error) {
	if len(raw) < 2 {
		return 0, core.Invalid(core.LocEventSizes, HeaderSize, "table truncated")
	}
	if raw[0] != EventPayloadSizes {
		return 0, core.Invalid(core.LocEventSizes, HeaderSize,
			"leading byte %#x, want %#x", raw[0], EventPayloadSizes)
	}
	n := int(raw[1])
	end := 1 + n
	if n < 1 || end > len(raw) {
		return 0, core.Invalid(core.LocEventSizes, HeaderSize+1,
			"declared table size %d runs past raw region", n)
	}
	for i := 2; i+3 <= end; i += 3 {
		t[raw[i]] = binary.BigEndian.Uint16(raw[i+1 : i+3])
	}
	t[EventPayloadSizes] = uint16(n)
	return end, nil
}

// ReadHeader reads only the header, the event-size table and the game-start
// record from a seekable stream, leaving the event stream unread.
func ReadHeader(r io.ReadSeeker) (*Header, *core.GameStart, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seeking to start: %w", err)
	}
	head := make([]byte, HeaderSize+2)
	if _, err := io.ReadFull(r, head[:len(Magic)]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil, core.ErrFormatMismatch
		}
		return nil, nil, fmt.Errorf("reading magic: %w", err)
	}
	if !IsReplay(head[:len(Magic)]) {
		return nil, nil, core.ErrFormatMismatch
	}
	if _, err := io.ReadFull(r, head[len(Magic):]); err != nil {
		return nil, nil, core.Invalid(core.LocHeader, len(Magic), "header truncated").Wrap(err)
	}
	rawLen := int(binary.BigEndian.Uint32(head[len(Magic):HeaderSize]))
	tableLen := int(head[HeaderSize+1])
	if tableLen < 1 || HeaderSize+1+tableLen > HeaderSize+rawLen {
		return nil, nil, core.Invalid(core.LocEventSizes, HeaderSize+1,
			"declared table size %d runs past raw region", tableLen)
	}

	rest := make([]byte, tableLen-1)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, nil, core.Invalid(core.LocEventSizes, HeaderSize, "table truncated").Wrap(err)
	}
	buf := append(head[HeaderSize:], rest...)

	h := &Header{FooterOffset: HeaderSize + rawLen}
	n, err := readSizeTable(buf, &h.Sizes)
	if err != nil {
		return nil, nil, err
	}
	h.EventsOffset = HeaderSize + n

	size, ok := h.Sizes.Size(EventGameStart)
	if !ok {
		return nil, nil, core.Invalid(core.LocEventSizes, HeaderSize, "no size for game start")
	}
	if h.EventsOffset+1+size > h.FooterOffset {
		return nil, nil, core.Invalid(core.LocGameStart, h.EventsOffset, "record runs past raw region")
	}
	if _, err := r.Seek(int64(h.EventsOffset), io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seeking to game start: %w", err)
	}
	rec := make([]byte, 1+size)
	if _, err := io.ReadFull(r, rec); err != nil {
		return nil, nil, core.Invalid(core.LocGameStart, h.EventsOffset, "record truncated").Wrap(err)
	}
	start, err := ParseGameStart(rec, h.EventsOffset)
	if err != nil {
		return nil, nil, err
	}
	return h, start, nil
}
