package parser

import (
	"encoding/binary"
	"math"

	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/pkg/core"
)

// Minimum record lengths, code byte included.
const (
	preMinLen     = 0x33
	postMinLen    = 0x4D
	bookendMinLen = 0x5
	itemMinLen    = 0x2B
	fodMinLen     = 0xA
	stadiumMinLen = 0x9
)

func u16(b []byte, off int) uint16 { return binary.BigEndian.Uint16(b[off:]) }
func u32(b []byte, off int) uint32 { return binary.BigEndian.Uint32(b[off:]) }
func i32(b []byte, off int) int32  { return int32(binary.BigEndian.Uint32(b[off:])) }
func f32(b []byte, off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b[off:]))
}

func vec(b []byte, off int) core.Vector {
	return core.Vector{X: f32(b, off), Y: f32(b, off+4)}
}

func direction(facing float32) core.Direction {
	if facing < 0 {
		return core.Left
	}
	return core.Right
}

// slotOf reads the port and follower bytes shared by pre- and post-updates.
func slotOf(ev []byte, loc core.Location, offset int) (core.Slot, error) {
	port := ev[5]
	if port >= core.NumPorts {
		return 0, core.Invalid(loc, offset+5, "port %d out of range", port)
	}
	return core.SlotOf(core.Port(port), ev[6] != 0), nil
}

func parsePre(ev []byte, offset int) (core.Slot, core.Inputs, error) {
	if len(ev) < preMinLen {
		return 0, core.Inputs{}, core.Invalid(core.LocPreUpdate, offset,
			"record of %d bytes shorter than %d", len(ev), preMinLen)
	}
	slot, err := slotOf(ev, core.LocPreUpdate, offset)
	if err != nil {
		return 0, core.Inputs{}, err
	}
	return slot, core.Inputs{
		StickX:  f32(ev, 0x19),
		StickY:  f32(ev, 0x1D),
		CStickX: f32(ev, 0x21),
		CStickY: f32(ev, 0x25),
		Trigger: f32(ev, 0x29),
		Buttons: u16(ev, 0x31),
	}, nil
}

// parsePost decodes everything a post-update carries into a frame without
// inputs.
func parsePost(ev []byte, offset int) (core.Slot, core.Frame, error) {
	if len(ev) < postMinLen {
		return 0, core.Frame{}, core.Invalid(core.LocPostUpdate, offset,
			"record of %d bytes shorter than %d", len(ev), postMinLen)
	}
	slot, err := slotOf(ev, core.LocPostUpdate, offset)
	if err != nil {
		return 0, core.Frame{}, err
	}
	c, err := core.CharacterFromInternal(ev[7])
	if err != nil {
		return 0, core.Frame{}, core.Invalid(core.LocPostUpdate, offset+7, "character").Wrap(err)
	}
	code := u16(ev, 8)
	st, err := state.Classify(code, c)
	if err != nil {
		return 0, core.Frame{}, core.Invalid(core.LocPostUpdate, offset+8, "action state").Wrap(err)
	}

	f := core.Frame{
		Character:        c,
		ActionStateCode:  code,
		State:            st,
		Position:         vec(ev, 0xA),
		Direction:        direction(f32(ev, 0x12)),
		Percent:          f32(ev, 0x16),
		ShieldSize:       f32(ev, 0x1A),
		LastAttackLanded: ev[0x1E],
		LastHitBy:        ev[0x20],
		Stocks:           ev[0x21],
		AnimationFrame:   f32(ev, 0x22),
		HitstunMisc:      f32(ev, 0x2B),
		Airborne:         ev[0x2F] != 0,
		LastGroundID:     u16(ev, 0x30),
		Velocity:         vec(ev, 0x35),
		HitVelocity:      vec(ev, 0x3D),
		GroundVelocityX:  f32(ev, 0x45),
		Hitlag:           f32(ev, 0x49),
	}
	copy(f.Flags[:], ev[0x26:0x2B])
	return slot, f, nil
}

func parseBookend(ev []byte, offset int) (int, error) {
	if len(ev) < bookendMinLen {
		return 0, core.Invalid(core.LocFrameBoundary, offset,
			"record of %d bytes shorter than %d", len(ev), bookendMinLen)
	}
	idx := core.FrameIndex(i32(ev, 1))
	if idx < 0 {
		return 0, core.Invalid(core.LocFrameBoundary, offset+1, "frame counter %d before start", i32(ev, 1))
	}
	return idx, nil
}

func parseItem(ev []byte, offset int) (core.ItemUpdate, error) {
	if len(ev) < itemMinLen {
		return core.ItemUpdate{}, core.Invalid(core.LocItemUpdate, offset,
			"record of %d bytes shorter than %d", len(ev), itemMinLen)
	}
	it := core.ItemUpdate{
		Frame:      core.FrameIndex(i32(ev, 1)),
		Type:       u16(ev, 5),
		State:      ev[7],
		Direction:  f32(ev, 8),
		Velocity:   vec(ev, 0xC),
		Position:   vec(ev, 0x14),
		Damage:     u16(ev, 0x1C),
		Expiration: f32(ev, 0x1E),
		SpawnID:    u32(ev, 0x22),
		Owner:      int8(ev[0x2A]),
	}
	copy(it.Misc[:], ev[0x26:0x2A])
	return it, nil
}

func parsePlatform(ev []byte, offset int) (core.PlatformHeight, error) {
	if len(ev) < fodMinLen {
		return core.PlatformHeight{}, core.Invalid(core.LocStageAux, offset,
			"platform record of %d bytes shorter than %d", len(ev), fodMinLen)
	}
	p := core.Platform(ev[5])
	if p != core.PlatformRight && p != core.PlatformLeft {
		return core.PlatformHeight{}, core.Invalid(core.LocStageAux, offset+5, "platform %d", ev[5])
	}
	return core.PlatformHeight{
		Frame:    core.FrameIndex(i32(ev, 1)),
		Platform: p,
		Height:   f32(ev, 6),
	}, nil
}

func parseTransformation(ev []byte, offset int) (core.StadiumTransformation, error) {
	if len(ev) < stadiumMinLen {
		return core.StadiumTransformation{}, core.Invalid(core.LocStageAux, offset,
			"transformation record of %d bytes shorter than %d", len(ev), stadiumMinLen)
	}
	id := u16(ev, 7)
	if !core.ValidTransformation(id) {
		return core.StadiumTransformation{}, core.Invalid(core.LocStageAux, offset+7, "transformation %d", id).
			Wrap(core.ErrUnknownCode)
	}
	return core.StadiumTransformation{
		Frame:          core.FrameIndex(i32(ev, 1)),
		Phase:          u16(ev, 5),
		Transformation: core.Transformation(id),
	}, nil
}
