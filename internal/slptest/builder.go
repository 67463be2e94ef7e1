// Package slptest builds synthetic replays for tests.
package slptest

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"

	"github.com/framelog/slp/internal/textenc"
	"github.com/framelog/slp/pkg/core"
)

// Payload sizes used by the builder, code byte excluded.
var DefaultSizes = map[byte]uint16{
	0x10: 0x204,
	0x36: 0x260,
	0x37: 0x3F,
	0x38: 0x54,
	0x39: 0x2,
	0x3A: 0xC,
	0x3B: 0x2C,
	0x3C: 0x8,
	0x3F: 0x9,
	0x41: 0x8,
}

// Player describes one occupied port.
type Player struct {
	Character   core.Character
	Costume     uint8
	Stocks      uint8
	DisplayName string
	ConnectCode string
}

// Post holds the post-update fields the builder writes.
type Post struct {
	Character       core.Character
	State           uint16
	Position        core.Vector
	Facing          float32
	Percent         float32
	Stocks          uint8
	Airborne        bool
	Velocity        core.Vector
	GroundVelocityX float32
}

// Builder assembles a raw replay event by event.
type Builder struct {
	Sizes  map[byte]uint16
	events bytes.Buffer
	footer []byte
}

// New returns a builder using DefaultSizes and an empty metadata footer.
func New() *Builder {
	sizes := make(map[byte]uint16, len(DefaultSizes))
	for k, v := range DefaultSizes {
		sizes[k] = v
	}
	return &Builder{Sizes: sizes, footer: []byte("U\x08metadata{}}")}
}

// Footer replaces the bytes following the raw region.
func (b *Builder) Footer(f []byte) *Builder {
	b.footer = f
	return b
}

// Raw appends an event with an explicit payload, which must match the
// declared size of code.
func (b *Builder) Raw(code byte, payload []byte) *Builder {
	b.events.WriteByte(code)
	b.events.Write(payload)
	return b
}

func (b *Builder) record(code byte) []byte {
	rec := make([]byte, 1+int(b.Sizes[code]))
	rec[0] = code
	return rec
}

func (b *Builder) emit(rec []byte) *Builder {
	b.events.Write(rec)
	return b
}

func putF32(b []byte, off int, v float32) {
	binary.BigEndian.PutUint32(b[off:], math.Float32bits(v))
}

func putI32(b []byte, off int, v int32) {
	binary.BigEndian.PutUint32(b[off:], uint32(v))
}

func counter(frame int) int32 { return int32(frame - core.FrameBias) }

// ExternalID returns the character-select id of c.
func ExternalID(c core.Character) uint8 {
	for id := 0; id < 256; id++ {
		got, err := core.CharacterFromExternal(uint8(id))
		if err != nil {
			break
		}
		if got == c {
			return uint8(id)
		}
	}
	return 0
}

// GameStart appends a game-start record. Nil players are absent.
func (b *Builder) GameStart(v core.Version, stage core.Stage, players [core.NumPorts]*Player) *Builder {
	rec := b.record(0x36)
	rec[1], rec[2], rec[3] = v.Major, v.Minor, v.Build
	binary.BigEndian.PutUint16(rec[0x13:], uint16(stage))
	for port, p := range players {
		blk := rec[0x65+port*0x24:]
		if p == nil {
			blk[1] = 3
			continue
		}
		blk[0] = ExternalID(p.Character)
		blk[2] = p.Stocks
		blk[3] = p.Costume
		if name, err := textenc.EncodeName(p.DisplayName, 0x1F); err == nil {
			copy(rec[0x1A5+port*0x1F:], name)
		}
		if code, err := textenc.EncodeName(p.ConnectCode, 0xA); err == nil {
			copy(rec[0x221+port*0xA:], code)
		}
	}
	return b.emit(rec)
}

// Pre appends a pre-update.
func (b *Builder) Pre(frame int, port core.Port, follower bool, in core.Inputs) *Builder {
	rec := b.record(0x37)
	putI32(rec, 1, counter(frame))
	rec[5] = uint8(port)
	if follower {
		rec[6] = 1
	}
	putF32(rec, 0x19, in.StickX)
	putF32(rec, 0x1D, in.StickY)
	putF32(rec, 0x21, in.CStickX)
	putF32(rec, 0x25, in.CStickY)
	putF32(rec, 0x29, in.Trigger)
	binary.BigEndian.PutUint16(rec[0x31:], in.Buttons)
	return b.emit(rec)
}

// Post appends a post-update.
func (b *Builder) Post(frame int, port core.Port, follower bool, p Post) *Builder {
	rec := b.record(0x38)
	putI32(rec, 1, counter(frame))
	rec[5] = uint8(port)
	if follower {
		rec[6] = 1
	}
	rec[7] = uint8(p.Character)
	binary.BigEndian.PutUint16(rec[8:], p.State)
	putF32(rec, 0xA, p.Position.X)
	putF32(rec, 0xE, p.Position.Y)
	putF32(rec, 0x12, p.Facing)
	putF32(rec, 0x16, p.Percent)
	rec[0x21] = p.Stocks
	if p.Airborne {
		rec[0x2F] = 1
	}
	putF32(rec, 0x35, p.Velocity.X)
	putF32(rec, 0x39, p.Velocity.Y)
	putF32(rec, 0x45, p.GroundVelocityX)
	return b.emit(rec)
}

// Bookend appends a frame boundary for frame index frame.
func (b *Builder) Bookend(frame int) *Builder {
	rec := b.record(0x3C)
	putI32(rec, 1, counter(frame))
	putI32(rec, 5, counter(frame))
	return b.emit(rec)
}

// Item appends an item update.
func (b *Builder) Item(frame int, spawnID uint32) *Builder {
	rec := b.record(0x3B)
	putI32(rec, 1, counter(frame))
	binary.BigEndian.PutUint32(rec[0x22:], spawnID)
	return b.emit(rec)
}

// Platform appends a Fountain of Dreams platform sample.
func (b *Builder) Platform(frame int, p core.Platform, height float32) *Builder {
	rec := b.record(0x3F)
	putI32(rec, 1, counter(frame))
	rec[5] = uint8(p)
	putF32(rec, 6, height)
	return b.emit(rec)
}

// Transformation appends a Pokémon Stadium transformation event.
func (b *Builder) Transformation(frame int, phase uint16, id uint16) *Builder {
	rec := b.record(0x41)
	putI32(rec, 1, counter(frame))
	binary.BigEndian.PutUint16(rec[5:], phase)
	binary.BigEndian.PutUint16(rec[7:], id)
	return b.emit(rec)
}

// GameEnd appends a game-end event.
func (b *Builder) GameEnd() *Builder {
	return b.emit(b.record(0x39))
}

// Frame appends a full pre, post and bookend for a single port.
func (b *Builder) Frame(frame int, port core.Port, p Post) *Builder {
	return b.Pre(frame, port, false, core.Inputs{}).Post(frame, port, false, p).Bookend(frame)
}

// Raw region bytes: the event-size table followed by the events.
func (b *Builder) rawRegion() []byte {
	codes := make([]byte, 0, len(b.Sizes))
	for c := range b.Sizes {
		codes = append(codes, c)
	}
	slices.Sort(codes)

	var out bytes.Buffer
	out.WriteByte(0x35)
	out.WriteByte(byte(1 + 3*len(codes)))
	for _, c := range codes {
		out.WriteByte(c)
		_ = binary.Write(&out, binary.BigEndian, b.Sizes[c])
	}
	out.Write(b.events.Bytes())
	return out.Bytes()
}

// Bytes returns the complete replay.
func (b *Builder) Bytes() []byte {
	raw := b.rawRegion()
	var out bytes.Buffer
	out.WriteString("{U\x03raw[$U#l")
	_ = binary.Write(&out, binary.BigEndian, uint32(len(raw)))
	out.Write(raw)
	out.Write(b.footer)
	return out.Bytes()
}

// Players is a convenience for a two-player game.
func Players(p1, p2 core.Character) [core.NumPorts]*Player {
	return [core.NumPorts]*Player{
		{Character: p1, Stocks: 4},
		{Character: p2, Stocks: 4},
	}
}

// Version is a supported recorder version.
var Version = core.Version{Major: 3, Minor: 16}
