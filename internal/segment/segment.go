// Package segment splits a slot's frame timeline into high-level actions.
package segment

import (
	"fmt"

	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/pkg/core"
)

// Courtesy windows, in frames.
const (
	AirTimeout     = 10
	GroundTimeout  = 10
	WalkTimeout    = 10
	CrouchTimeout  = 10
	LedgeTimeout   = 10
	ShieldTimeout  = 5
	DashRunTimeout = 5
	HitstunTimeout = 5
	AirJumpTimeout = 10
)

// WavelandEpsilon is the ground x-velocity below which a waveland counts as
// straight down.
const WavelandEpsilon = 0.01

type window struct {
	timeout int
	wait    core.ActionKind
}

var windows = map[core.Broad]window{
	core.BroadAir:     {AirTimeout, core.ActionAirWait},
	core.BroadGround:  {GroundTimeout, core.ActionGroundWait},
	core.BroadWalk:    {WalkTimeout, core.ActionWalkLeft},
	core.BroadCrouch:  {CrouchTimeout, core.ActionCrouch},
	core.BroadLedge:   {LedgeTimeout, core.ActionLedgeWait},
	core.BroadShield:  {ShieldTimeout, core.ActionShield},
	core.BroadDashRun: {DashRunTimeout, core.ActionDashLeft},
	core.BroadHitstun: {HitstunTimeout, core.ActionHitstun},
}

// hopCutoff is the vertical velocity on the last jump-squat frame above
// which a jump counts as a full hop.
// TODO: measure per-character cutoffs from reference replays; every entry
// is currently zero.
var hopCutoff [core.Sandbag + 1]float32

func fullHop(f *core.Frame) bool {
	cutoff := float32(0)
	if int(f.Character) < len(hopCutoff) {
		cutoff = hopCutoff[f.Character]
	}
	return f.Velocity.Y > cutoff
}

type outcome uint8

const (
	// none means no action was decided; the caller re-dispatches.
	none outcome = iota
	emitted
	// truncated means the timeline ended mid-action.
	truncated
)

type segmenter struct {
	cursor
}

// Segment splits frames, one slot's gap-free timeline, into actions. The
// tail of a timeline that ends mid-action produces nothing.
func Segment(frames []core.Frame) ([]core.Action, error) {
	s := &segmenter{cursor{frames: frames, broad: make([]core.BroadState, len(frames))}}
	for i := range frames {
		s.broad[i] = state.Broad(frames[i].State)
	}

	var out []core.Action
	for s.pos < len(frames) {
		start := s.pos
		a, res, err := s.dispatch()
		if err != nil {
			return out, fmt.Errorf("frame %d: %w", start, err)
		}
		if res == emitted {
			out = append(out, a)
		}
		if s.pos == start {
			s.advance()
		}
	}
	return out, nil
}

func (s *segmenter) action(kind core.ActionKind, start int) core.Action {
	return core.Action{
		Kind:    kind,
		Start:   start,
		End:     s.pos,
		Initial: s.frames[start].Kinematics(),
	}
}

func (s *segmenter) dispatch() (core.Action, outcome, error) {
	b, _ := s.peek()
	switch b.Broad {
	case core.BroadAttack, core.BroadRoll, core.BroadSpotdodge, core.BroadGrab, core.BroadLedgeAction:
		a, res := s.move(s.pos)
		return a, res, nil
	case core.BroadAir, core.BroadGround, core.BroadWalk, core.BroadCrouch, core.BroadShield, core.BroadDashRun:
		a, res := s.wait(b.Broad)
		return a, res, nil
	case core.BroadHitstun:
		a, res := s.hitstun()
		return a, res, nil
	case core.BroadJumpSquat:
		return s.jumpSquat()
	case core.BroadAirJump:
		a, res := s.airJump()
		return a, res, nil
	case core.BroadAirdodge:
		a, res := s.airdodge()
		return a, res, nil
	case core.BroadLedge:
		a, res := s.ledge()
		return a, res, nil
	case core.BroadSpecial:
		return s.special()
	}
	s.skipAll(same(b))
	return core.Action{}, none, nil
}

// hold applies the courtesy window of b.
func (s *segmenter) hold(b core.Broad) (held, eof bool) {
	w := windows[b]
	n, eof := s.skipWhile(is(b), w.timeout)
	return n == w.timeout, eof
}

// wait emits the wait action of b when the category holds for its whole
// window.
func (s *segmenter) wait(b core.Broad) (core.Action, outcome) {
	start := s.pos
	held, eof := s.hold(b)
	switch {
	case eof:
		return core.Action{}, truncated
	case !held:
		return core.Action{}, none
	}
	kind := windows[b].wait
	// right-facing variants follow their left counterparts
	if (b == core.BroadWalk || b == core.BroadDashRun) && s.frames[start].Direction == core.Right {
		kind++
	}
	return s.action(kind, start), emitted
}

// move consumes a self-terminating category starting at the cursor and
// labels it by the state of its first frame. The action starts at start.
func (s *segmenter) move(start int) (core.Action, outcome) {
	first := s.pos
	b := s.broad[first]
	code := s.frames[first].ActionStateCode
	if s.skipAll(same(b)) {
		return core.Action{}, truncated
	}
	a := s.action(moveKind(b.Broad, code), start)
	if b.Broad == core.BroadAttack {
		a.Attack = attackOf(code)
	}
	return a, emitted
}

// aerial consumes an attack as the follow-up of a jump labeled kind.
func (s *segmenter) aerial(kind core.ActionKind, start int) (core.Action, outcome) {
	a, res := s.move(start)
	a.Kind = kind
	return a, res
}

func moveKind(b core.Broad, code uint16) core.ActionKind {
	st := core.StandardState(code)
	switch b {
	case core.BroadRoll:
		if st == core.StateEscapeB {
			return core.ActionRollBackward
		}
		return core.ActionRollForward
	case core.BroadSpotdodge:
		return core.ActionSpotdodge
	case core.BroadGrab:
		if st == core.StateCatchDash || st == core.StateCatchDashPull {
			return core.ActionDashGrab
		}
		return core.ActionGrab
	case core.BroadLedgeAction:
		switch st {
		case core.StateCliffClimbSlow, core.StateCliffClimbQuick:
			return core.ActionLedgeGetUp
		case core.StateCliffAttackSlow, core.StateCliffAttackQuick:
			return core.ActionLedgeAttack
		case core.StateCliffEscapeSlow, core.StateCliffEscapeQuick:
			return core.ActionLedgeRoll
		}
		return core.ActionLedgeJump
	}
	return core.ActionAttack
}

func attackOf(code uint16) core.Attack {
	switch st := core.StandardState(code); {
	case st == core.StateAttack11:
		return core.AttackJab1
	case st == core.StateAttack12:
		return core.AttackJab2
	case st == core.StateAttack13:
		return core.AttackJab3
	case st >= core.StateAttack100Start && st <= core.StateAttack100End:
		return core.AttackRapidJab
	case st == core.StateAttackDash:
		return core.AttackDash
	case st >= core.StateAttackS3Hi && st <= core.StateAttackS3Lw:
		return core.AttackFTilt
	case st == core.StateAttackHi3:
		return core.AttackUTilt
	case st == core.StateAttackLw3:
		return core.AttackDTilt
	case st >= core.StateAttackS4Hi && st <= core.StateAttackS4Lw:
		return core.AttackFSmash
	case st == core.StateAttackHi4:
		return core.AttackUSmash
	case st == core.StateAttackLw4:
		return core.AttackDSmash
	case st == core.StateAttackAirN:
		return core.AttackNair
	case st == core.StateAttackAirF:
		return core.AttackFair
	case st == core.StateAttackAirB:
		return core.AttackBair
	case st == core.StateAttackAirHi:
		return core.AttackUair
	case st == core.StateAttackAirLw:
		return core.AttackDair
	}
	return core.AttackNone
}

// hitstun repeats the courtesy window while hitstun keeps holding. At least
// one full window makes a hitstun action.
func (s *segmenter) hitstun() (core.Action, outcome) {
	start := s.pos
	held := false
	for {
		ok, eof := s.hold(core.BroadHitstun)
		if eof {
			return core.Action{}, truncated
		}
		if !ok {
			break
		}
		held = true
	}
	if !held {
		return core.Action{}, none
	}
	return s.action(core.ActionHitstun, start), emitted
}

func (s *segmenter) jumpSquat() (core.Action, outcome, error) {
	start := s.pos
	if s.skipAll(is(core.BroadJumpSquat)) {
		return core.Action{}, truncated, nil
	}
	full := fullHop(&s.frames[s.pos-1])
	hop, hopAerial, hopJump := core.ActionShortHop, core.ActionShortHopAerial, core.ActionShortHopAirJump
	if full {
		hop, hopAerial, hopJump = core.ActionFullHop, core.ActionFullHopAerial, core.ActionFullHopAirJump
	}

	b, _ := s.peek()
	if b.Broad == core.BroadAirdodge {
		a, res := s.airdodge()
		if res != emitted {
			return a, res, nil
		}
		return s.relabel(a, start, core.ActionWavedashLeft, core.ActionWavedashRight), emitted, nil
	}

	// The Air window may be empty when the hop goes straight into its
	// follow-up.
	n, eof := s.skipWhile(is(core.BroadAir), AirTimeout)
	if eof {
		return core.Action{}, truncated, nil
	}
	if n == AirTimeout {
		return s.action(hop, start), emitted, nil
	}
	b, _ = s.peek()
	switch b.Broad {
	case core.BroadAttack:
		a, res := s.aerial(hopAerial, start)
		return a, res, nil
	case core.BroadSpecial:
		return s.jumpCanceled(start, hop, full)
	case core.BroadAirJump:
		a, res := s.airJumpFrom(start, hopJump)
		return a, res, nil
	}
	return s.action(hop, start), emitted, nil
}

// relabel turns a lateral waveland into the given context-specific kinds and
// stretches it back to start. Other airdodge results keep their own span.
func (s *segmenter) relabel(a core.Action, start int, left, right core.ActionKind) core.Action {
	switch a.Kind {
	case core.ActionWavelandLeft:
		a.Kind = left
	case core.ActionWavelandRight:
		a.Kind = right
	default:
		return a
	}
	a.Start = start
	a.Initial = s.frames[start].Kinematics()
	return a
}

// jumpCanceled consumes a special category performed out of a jump. Special
// categories without a jump-canceled variant end the hop without an action.
func (s *segmenter) jumpCanceled(start int, hop core.ActionKind, full bool) (core.Action, outcome, error) {
	b := s.broad[s.pos]
	d, err := dispatchOf(b)
	if err != nil {
		return core.Action{}, none, err
	}
	id, ok := d.JumpCancel.Action(full)
	if !ok {
		return s.action(hop, start), emitted, nil
	}
	if s.skipAll(same(b)) {
		return core.Action{}, truncated, nil
	}
	a := s.action(core.ActionSpecial, start)
	a.Special = core.SpecialAction{Character: b.Character, ID: id}
	return a, emitted, nil
}

func (s *segmenter) airJump() (core.Action, outcome) {
	return s.airJumpFrom(s.pos, core.ActionAirJump)
}

// airJumpFrom consumes a mid-air jump and its AirJump window. An attack
// kept inside the window makes a jump aerial; otherwise the action is kind.
// Both span from start.
func (s *segmenter) airJumpFrom(start int, kind core.ActionKind) (core.Action, outcome) {
	s.advance()
	n, eof := s.skipWhile(is(core.BroadAirJump), AirJumpTimeout)
	if eof {
		return core.Action{}, truncated
	}
	if n < AirJumpTimeout {
		if next, _ := s.peek(); next.Broad == core.BroadAttack {
			return s.aerial(core.ActionJumpAerial, start)
		}
		return s.action(kind, start), emitted
	}
	if s.skipAll(is(core.BroadAirJump)) {
		return core.Action{}, truncated
	}
	return s.action(kind, start), emitted
}

func (s *segmenter) airdodge() (core.Action, outcome) {
	start := s.pos
	if s.skipAll(is(core.BroadAirdodge)) {
		return core.Action{}, truncated
	}
	if next, _ := s.peek(); next.Broad != core.BroadSpecialLanding {
		return s.action(core.ActionAirdodge, start), emitted
	}
	kind := waveland(s.frames[s.pos].GroundVelocityX)
	if s.skipAll(is(core.BroadSpecialLanding)) {
		return core.Action{}, truncated
	}
	return s.action(kind, start), emitted
}

func waveland(vx float32) core.ActionKind {
	switch {
	case vx < -WavelandEpsilon:
		return core.ActionWavelandLeft
	case vx > WavelandEpsilon:
		return core.ActionWavelandRight
	}
	return core.ActionWavelandDown
}

func (s *segmenter) ledge() (core.Action, outcome) {
	start := s.pos
	held, eof := s.hold(core.BroadLedge)
	switch {
	case eof:
		return core.Action{}, truncated
	case held:
		return s.action(core.ActionLedgeWait, start), emitted
	}

	b, _ := s.peek()
	switch b.Broad {
	case core.BroadLedgeAction:
		return s.move(start)
	case core.BroadHitstun:
		return s.hitstun()
	case core.BroadAir:
		return s.ledgeRelease(start)
	}
	return core.Action{}, none
}

// ledgeRelease follows a ledge that let go into the air.
func (s *segmenter) ledgeRelease(start int) (core.Action, outcome) {
	held, eof := s.hold(core.BroadAir)
	switch {
	case eof:
		return core.Action{}, truncated
	case held:
		return s.action(core.ActionLedgeDrop, start), emitted
	}

	b, _ := s.peek()
	if b.Broad == core.BroadAirJump {
		s.advance()
		n, eof := s.skipWhile(is(core.BroadAirJump), AirJumpTimeout)
		if eof {
			return core.Action{}, truncated
		}
		if n == AirJumpTimeout {
			return s.action(core.ActionLedgeHop, start), emitted
		}
		b, _ = s.peek()
	}

	switch b.Broad {
	case core.BroadAirdodge:
		a, res := s.airdodge()
		if res != emitted {
			return a, res
		}
		return s.relabel(a, start, core.ActionLedgeDash, core.ActionLedgeDash), emitted
	case core.BroadAttack:
		return s.aerial(core.ActionLedgeAerial, start)
	case core.BroadSpecialLanding:
		if s.skipAll(is(core.BroadSpecialLanding)) {
			return core.Action{}, truncated
		}
		return s.action(core.ActionLedgeDash, start), emitted
	case core.BroadHitstun:
		return s.hitstun()
	}
	return s.action(core.ActionLedgeHop, start), emitted
}

func dispatchOf(b core.BroadState) (state.Dispatch, error) {
	ext, ok := state.Lookup(b.Character)
	if !ok {
		return state.Dispatch{}, fmt.Errorf("%s: %w", b.Character, core.ErrUnimplementedCharacter)
	}
	return ext.Dispatch(b.Category)
}

// special consumes a character-private category and labels it by the
// character's dispatch table.
func (s *segmenter) special() (core.Action, outcome, error) {
	start := s.pos
	b := s.broad[start]
	d, err := dispatchOf(b)
	if err != nil {
		return core.Action{}, none, err
	}
	id := d.Ground
	if s.frames[start].Airborne {
		id = d.Air
	}
	if s.skipAll(same(b)) {
		return core.Action{}, truncated, nil
	}
	a := s.action(core.ActionSpecial, start)
	a.Special = core.SpecialAction{Character: b.Character, ID: id}
	return a, emitted, nil
}
