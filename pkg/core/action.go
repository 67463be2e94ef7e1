package core

import "fmt"

// ActionKind is the high-level tag of a segmented action.
type ActionKind uint8

const (
	ActionAttack ActionKind = iota
	ActionRollForward
	ActionRollBackward
	ActionSpotdodge
	ActionGrab
	ActionDashGrab
	ActionLedgeGetUp
	ActionLedgeAttack
	ActionLedgeRoll
	ActionLedgeJump

	ActionAirWait
	ActionGroundWait
	ActionWalkLeft
	ActionWalkRight
	ActionDashLeft
	ActionDashRight
	ActionCrouch
	ActionShield
	ActionLedgeWait
	ActionHitstun

	ActionFullHop
	ActionShortHop
	ActionFullHopAerial
	ActionShortHopAerial
	ActionFullHopAirJump
	ActionShortHopAirJump
	ActionAirJump
	ActionJumpAerial

	ActionAirdodge
	ActionWavelandLeft
	ActionWavelandRight
	ActionWavelandDown
	ActionWavedashLeft
	ActionWavedashRight

	ActionLedgeDrop
	ActionLedgeHop
	ActionLedgeAerial
	ActionLedgeDash

	// ActionSpecial is a character-private action; see Action.Special.
	ActionSpecial
)

var actionKindNames = [...]string{
	"Attack", "RollForward", "RollBackward", "Spotdodge", "Grab", "DashGrab",
	"LedgeGetUp", "LedgeAttack", "LedgeRoll", "LedgeJump",
	"AirWait", "GroundWait", "WalkLeft", "WalkRight", "DashLeft", "DashRight",
	"Crouch", "Shield", "LedgeWait", "Hitstun",
	"FullHop", "ShortHop", "FullHopAerial", "ShortHopAerial",
	"FullHopAirJump", "ShortHopAirJump", "AirJump", "JumpAerial",
	"Airdodge", "WavelandLeft", "WavelandRight", "WavelandDown",
	"WavedashLeft", "WavedashRight",
	"LedgeDrop", "LedgeHop", "LedgeAerial", "LedgeDash",
	"Special",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// ParseActionKind is the inverse of ActionKind.String.
func ParseActionKind(name string) (ActionKind, error) {
	for i, n := range actionKindNames {
		if n == name {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("action kind %q: %w", name, ErrUnknownCode)
}

// HasAttack reports whether actions of this kind carry an attack sub-kind.
func (k ActionKind) HasAttack() bool {
	switch k {
	case ActionAttack, ActionFullHopAerial, ActionShortHopAerial, ActionJumpAerial, ActionLedgeAerial:
		return true
	}
	return false
}

// Attack identifies which ground or aerial attack an action performed.
type Attack uint8

const (
	AttackNone Attack = iota
	AttackJab1
	AttackJab2
	AttackJab3
	AttackRapidJab
	AttackDash
	AttackFTilt
	AttackUTilt
	AttackDTilt
	AttackFSmash
	AttackUSmash
	AttackDSmash
	AttackNair
	AttackFair
	AttackBair
	AttackUair
	AttackDair
)

var attackNames = [...]string{
	"None", "Jab1", "Jab2", "Jab3", "RapidJab", "DashAttack", "FTilt", "UTilt",
	"DTilt", "FSmash", "USmash", "DSmash", "Nair", "Fair", "Bair", "Uair",
	"Dair",
}

func (a Attack) String() string {
	if int(a) < len(attackNames) {
		return attackNames[a]
	}
	return fmt.Sprintf("Attack(%d)", uint8(a))
}

// ParseAttack is the inverse of Attack.String.
func ParseAttack(name string) (Attack, error) {
	for i, n := range attackNames {
		if n == name {
			return Attack(i), nil
		}
	}
	return 0, fmt.Errorf("attack %q: %w", name, ErrUnknownCode)
}

// SpecialAction is a character-private action id, named by the character's
// extension.
type SpecialAction struct {
	Character Character
	ID        uint8
}

// Action is one segmented unit of player behaviour. Frames are frame indices
// into the slot timeline; End is exclusive.
type Action struct {
	Kind    ActionKind
	Attack  Attack
	Special SpecialAction
	Start   int
	End     int
	Initial Kinematics
}

// Len returns the number of frames spanned by the action.
func (a Action) Len() int { return a.End - a.Start }

func (a Action) String() string {
	switch {
	case a.Kind.HasAttack():
		return fmt.Sprintf("%s(%s) [%d,%d)", a.Kind, a.Attack, a.Start, a.End)
	case a.Kind == ActionSpecial:
		return fmt.Sprintf("%s special %d [%d,%d)", a.Special.Character, a.Special.ID, a.Start, a.End)
	}
	return fmt.Sprintf("%s [%d,%d)", a.Kind, a.Start, a.End)
}
