// Package convert provides functions to convert GORM models to core models
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/framelog/slp/internal/model"
	"github.com/framelog/slp/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// pointToVector converts a geom.Point to a core.Vector
func pointToVector(p geom.Point) core.Vector {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Vector{}
	}
	return core.Vector{X: float32(coord.XY.X), Y: float32(coord.XY.Y)}
}

// PlayerToCore converts a GORM Player to a roster entry.
func PlayerToCore(p model.Player) core.PlayerSummary {
	return core.PlayerSummary{
		Slot:        core.Slot(p.Slot),
		Character:   core.Character(p.CharacterID),
		Costume:     p.Costume,
		Stocks:      p.Stocks,
		DisplayName: p.DisplayName,
		ConnectCode: p.ConnectCode,
	}
}

// GameToCore converts a GORM Game, with its Players preloaded, to a
// core.GameSummary.
func GameToCore(g *model.Game) (*core.GameSummary, error) {
	s := &core.GameSummary{
		ID:     g.ID,
		Source: g.Source,
		Stage:  core.Stage(g.StageID),
		Frames: g.Frames,
	}
	if _, err := fmt.Sscanf(g.Version, "%d.%d.%d", &s.Version.Major, &s.Version.Minor, &s.Version.Build); err != nil {
		return nil, fmt.Errorf("game %d version %q: %w", g.ID, g.Version, err)
	}
	if g.StartAt.Valid {
		t := g.StartAt.Time.UTC()
		s.StartAt = core.PackTimestamp(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	if len(g.Notes) > 0 {
		if err := json.Unmarshal(g.Notes, &s.Notes); err != nil {
			return nil, fmt.Errorf("game %d notes: %w", g.ID, err)
		}
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, PlayerToCore(p))
	}
	return s, nil
}

// ActionToCore converts a GORM Action back to a core.Action.
func ActionToCore(m model.Action) (core.Action, error) {
	kind, err := core.ParseActionKind(m.Kind)
	if err != nil {
		return core.Action{}, err
	}
	a := core.Action{
		Kind:  kind,
		Start: m.StartFrame,
		End:   m.EndFrame,
		Initial: core.Kinematics{
			Position:        pointToVector(m.StartPosition),
			Velocity:        core.Vector{X: m.StartVelocityX, Y: m.StartVelocityY},
			GroundVelocityX: m.GroundVelocity,
			Airborne:        m.Airborne,
		},
	}
	if m.Facing == core.Right.String() {
		a.Initial.Direction = core.Right
	}
	switch {
	case kind.HasAttack():
		if a.Attack, err = core.ParseAttack(m.Attack); err != nil {
			return core.Action{}, err
		}
	case kind == core.ActionSpecial:
		a.Special = core.SpecialAction{Character: core.Character(m.SpecialOwner), ID: m.SpecialID}
	}
	return a, nil
}
