// Package state classifies raw action state codes and maps them onto the
// broad categories that drive action segmentation.
package state

import (
	"fmt"

	"github.com/framelog/slp/pkg/core"
)

// Classify resolves a raw action state code for character c. Codes below
// core.NumStandardStates are standard; the rest need c's extension.
func Classify(code uint16, c core.Character) (core.ActionState, error) {
	if code < core.NumStandardStates {
		return core.Standard(core.StandardState(code)), nil
	}
	ext, ok := Lookup(c)
	if !ok {
		return core.ActionState{}, fmt.Errorf("%s state %d: %w", c, code, core.ErrUnimplementedCharacter)
	}
	id := int(code) - core.NumStandardStates
	if id >= ext.NumStates() {
		return core.ActionState{}, fmt.Errorf("%s state %d: %w", c, code, core.ErrUnknownCode)
	}
	return core.Special(core.SpecialState{Character: c, ID: uint8(id)}), nil
}

// Code is the inverse of Classify.
func Code(s core.ActionState) (uint16, error) {
	if sp, err := s.AsSpecial(); err == nil {
		ext, ok := Lookup(sp.Character)
		if !ok {
			return 0, fmt.Errorf("%s: %w", sp.Character, core.ErrUnimplementedCharacter)
		}
		if int(sp.ID) >= ext.NumStates() {
			return 0, fmt.Errorf("%s special state %d: %w", sp.Character, sp.ID, core.ErrUnknownCode)
		}
		return sp.Code(), nil
	}
	st, err := s.AsStandard()
	if err != nil {
		return 0, err
	}
	return uint16(st), nil
}

// Broad maps a state onto its segmentation category. It never fails: codes
// outside the known tables map to BroadGenericInactionable.
func Broad(s core.ActionState) core.BroadState {
	if sp, err := s.AsSpecial(); err == nil {
		ext, ok := Lookup(sp.Character)
		if !ok {
			return core.BroadOf(core.BroadGenericInactionable)
		}
		cat, err := ext.Category(sp.ID)
		if err != nil {
			return core.BroadOf(core.BroadGenericInactionable)
		}
		return core.SpecialBroad(sp.Character, cat)
	}
	st, _ := s.AsStandard()
	return core.BroadOf(StandardBroad(st))
}

// StandardBroad returns the category of a standard state.
func StandardBroad(s core.StandardState) core.Broad {
	if int(s) >= len(standardBroad) {
		return core.BroadGenericInactionable
	}
	return standardBroad[s]
}

// Name returns a display name for s, using the owning extension for special
// states.
func Name(s core.ActionState) string {
	if sp, err := s.AsSpecial(); err == nil {
		if ext, ok := Lookup(sp.Character); ok {
			return ext.StateName(sp.ID)
		}
		return s.String()
	}
	st, _ := s.AsStandard()
	return st.String()
}

// Label returns the sub-kind label of an action: the attack name for
// attacking kinds, the extension's action name for specials, "" otherwise.
func Label(a core.Action) string {
	switch {
	case a.Kind.HasAttack():
		return a.Attack.String()
	case a.Kind == core.ActionSpecial:
		if ext, ok := Lookup(a.Special.Character); ok {
			return ext.ActionName(a.Special.ID)
		}
		return fmt.Sprintf("%s special %d", a.Special.Character, a.Special.ID)
	}
	return ""
}

var standardBroad = buildStandardBroad()

func buildStandardBroad() [core.NumStandardStates]core.Broad {
	var t [core.NumStandardStates]core.Broad
	set := func(b core.Broad, from, to core.StandardState) {
		for s := from; s <= to; s++ {
			t[s] = b
		}
	}

	set(core.BroadGround, core.StateWait, core.StateWait)
	set(core.BroadWalk, core.StateWalkSlow, core.StateWalkFast)
	set(core.BroadGround, core.StateTurn, core.StateTurn)
	set(core.BroadDashRun, core.StateTurnRun, core.StateRunBrake)
	set(core.BroadJumpSquat, core.StateKneeBend, core.StateKneeBend)
	set(core.BroadAir, core.StateJumpF, core.StateJumpB)
	set(core.BroadAirJump, core.StateJumpAerialF, core.StateJumpAerialB)
	set(core.BroadAir, core.StateFall, core.StateFallAerialB)
	set(core.BroadHitstun, core.StateDamageFall, core.StateDamageFall)
	set(core.BroadCrouch, core.StateSquat, core.StateSquatRv)
	set(core.BroadGround, core.StateLanding, core.StateLanding)
	set(core.BroadSpecialLanding, core.StateLandingFallSpecial, core.StateLandingFallSpecial)
	set(core.BroadAttack, core.StateAttack11, core.StateAttackAirLw)
	set(core.BroadHitstun, core.StateDamageHi1, core.StateDamageFlyRoll)
	set(core.BroadShield, core.StateGuardOn, core.StateGuardReflect)
	set(core.BroadGrab, core.StateCatch, core.StateCatchDashPull)
	set(core.BroadRoll, core.StateEscapeF, core.StateEscapeB)
	set(core.BroadSpotdodge, core.StateEscape, core.StateEscape)
	set(core.BroadAirdodge, core.StateEscapeAir, core.StateEscapeAir)
	set(core.BroadLedge, core.StateCliffCatch, core.StateCliffWait)
	set(core.BroadLedgeAction, core.StateCliffClimbSlow, core.StateCliffJumpQuick2)
	return t
}
