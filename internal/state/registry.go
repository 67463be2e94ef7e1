package state

import (
	"fmt"
	"slices"

	"github.com/framelog/slp/pkg/core"
)

// JumpCancelKind says whether a special category can be performed straight
// out of a jump and how the resulting action is named.
type JumpCancelKind uint8

const (
	JumpCancelNone JumpCancelKind = iota
	// JumpCancelShared uses one action regardless of hop height.
	JumpCancelShared
	// JumpCancelByHop distinguishes short hop and full hop variants.
	JumpCancelByHop
)

// JumpCancel describes the jump-canceled variants of a special category.
type JumpCancel struct {
	Kind   JumpCancelKind
	Shared uint8
	Short  uint8
	Full   uint8
}

// Shared builds a JumpCancel with a single action for both hop heights.
func Shared(action uint8) JumpCancel {
	return JumpCancel{Kind: JumpCancelShared, Shared: action}
}

// ByHop builds a JumpCancel with distinct short and full hop actions.
func ByHop(short, full uint8) JumpCancel {
	return JumpCancel{Kind: JumpCancelByHop, Short: short, Full: full}
}

// Action resolves the jump-canceled action for the given hop height.
func (j JumpCancel) Action(fullHop bool) (uint8, bool) {
	switch j.Kind {
	case JumpCancelShared:
		return j.Shared, true
	case JumpCancelByHop:
		if fullHop {
			return j.Full, true
		}
		return j.Short, true
	}
	return 0, false
}

// Dispatch is the action table entry for one special category.
type Dispatch struct {
	Ground     uint8
	Air        uint8
	JumpCancel JumpCancel
}

// Extension supplies the character-private action states, categories and
// actions of one character.
type Extension interface {
	Character() core.Character
	// NumStates is the number of special states, codes 341 through
	// 341+NumStates-1.
	NumStates() int
	StateName(id uint8) string
	// Category maps a special state id to its category.
	Category(id uint8) (uint8, error)
	CategoryName(category uint8) string
	// Dispatch maps a category to the actions it produces.
	Dispatch(category uint8) (Dispatch, error)
	ActionName(action uint8) string
}

type specialState struct {
	name     string
	category uint8
}

type category struct {
	name     string
	dispatch Dispatch
}

// table is a declarative Extension.
type table struct {
	character  core.Character
	states     []specialState
	categories []category
	actions    []string
}

func (t *table) Character() core.Character { return t.character }

func (t *table) NumStates() int { return len(t.states) }

func (t *table) StateName(id uint8) string {
	if int(id) < len(t.states) {
		return t.states[id].name
	}
	return fmt.Sprintf("Special(%d)", id)
}

func (t *table) Category(id uint8) (uint8, error) {
	if int(id) >= len(t.states) {
		return 0, fmt.Errorf("%s special state %d: %w", t.character, id, core.ErrUnknownCode)
	}
	return t.states[id].category, nil
}

func (t *table) CategoryName(c uint8) string {
	if int(c) < len(t.categories) {
		return t.categories[c].name
	}
	return fmt.Sprintf("Category(%d)", c)
}

func (t *table) Dispatch(c uint8) (Dispatch, error) {
	if int(c) >= len(t.categories) {
		return Dispatch{}, fmt.Errorf("%s category %d: %w", t.character, c, core.ErrUnknownCode)
	}
	return t.categories[c].dispatch, nil
}

func (t *table) ActionName(a uint8) string {
	if int(a) < len(t.actions) {
		return t.actions[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// withCharacter copies the table for a character sharing the same layout.
func (t *table) withCharacter(c core.Character) *table {
	cp := *t
	cp.character = c
	return &cp
}

var registry = map[core.Character]Extension{}

func register(e Extension) {
	registry[e.Character()] = e
}

func init() {
	register(foxTable)
	register(foxTable.withCharacter(core.Falco))
	register(marthTable)
	register(sheikTable)
	register(peachTable)
}

// Lookup returns the extension registered for c.
func Lookup(c core.Character) (Extension, bool) {
	e, ok := registry[c]
	return e, ok
}

// Characters lists every character with a registered extension.
func Characters() []core.Character {
	out := make([]core.Character, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
