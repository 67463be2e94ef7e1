package core

import "fmt"

// SpecialState is a character-private action state. ID indexes the owning
// character's extended table, so the raw code is NumStandardStates+ID.
type SpecialState struct {
	Character Character
	ID        uint8
}

// Code returns the raw numeric code of the special state.
func (s SpecialState) Code() uint16 {
	return NumStandardStates + uint16(s.ID)
}

// ActionState is either a standard state or a special state. The zero value
// is the standard state DeadDown.
type ActionState struct {
	special  bool
	standard StandardState
	private  SpecialState
}

// Standard wraps a standard state.
func Standard(s StandardState) ActionState {
	return ActionState{standard: s}
}

// Special wraps a special state.
func Special(s SpecialState) ActionState {
	return ActionState{special: true, private: s}
}

// IsSpecial reports whether the state is character-private.
func (a ActionState) IsSpecial() bool { return a.special }

// AsStandard returns the standard state, or ErrNotStandard.
func (a ActionState) AsStandard() (StandardState, error) {
	if a.special {
		return 0, fmt.Errorf("%s: %w", a, ErrNotStandard)
	}
	return a.standard, nil
}

// AsSpecial returns the special state, or ErrNotSpecial.
func (a ActionState) AsSpecial() (SpecialState, error) {
	if !a.special {
		return SpecialState{}, fmt.Errorf("%s: %w", a, ErrNotSpecial)
	}
	return a.private, nil
}

// Is reports whether a is the given standard state.
func (a ActionState) Is(s StandardState) bool {
	return !a.special && a.standard == s
}

func (a ActionState) String() string {
	if a.special {
		return fmt.Sprintf("%s special %d", a.private.Character, a.private.Code())
	}
	return a.standard.String()
}

// Broad is a coarse category of action state used only to drive segmentation.
type Broad uint8

const (
	BroadGenericInactionable Broad = iota
	BroadAttack
	BroadAir
	BroadAirdodge
	BroadGround
	BroadWalk
	BroadDashRun
	BroadShield
	BroadLedge
	BroadLedgeAction
	BroadHitstun
	BroadJumpSquat
	BroadAirJump
	BroadCrouch
	BroadGrab
	BroadRoll
	BroadSpotdodge
	BroadSpecialLanding
	// BroadSpecial marks a character-private category; see BroadState.
	BroadSpecial
)

var broadNames = [...]string{
	"GenericInactionable", "Attack", "Air", "Airdodge", "Ground", "Walk",
	"DashRun", "Shield", "Ledge", "LedgeAction", "Hitstun", "JumpSquat",
	"AirJump", "Crouch", "Grab", "Roll", "Spotdodge", "SpecialLanding",
	"Special",
}

func (b Broad) String() string {
	if int(b) < len(broadNames) {
		return broadNames[b]
	}
	return fmt.Sprintf("Broad(%d)", uint8(b))
}

// BroadState is a standard Broad category or, when Broad is BroadSpecial,
// category Category of the Character's extension.
type BroadState struct {
	Broad     Broad
	Character Character
	Category  uint8
}

// BroadOf wraps a standard category.
func BroadOf(b Broad) BroadState {
	return BroadState{Broad: b}
}

// SpecialBroad wraps a character-private category.
func SpecialBroad(c Character, category uint8) BroadState {
	return BroadState{Broad: BroadSpecial, Character: c, Category: category}
}

func (b BroadState) String() string {
	if b.Broad == BroadSpecial {
		return fmt.Sprintf("%s category %d", b.Character, b.Category)
	}
	return b.Broad.String()
}
