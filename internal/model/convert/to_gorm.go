// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"
	"encoding/json"

	"github.com/framelog/slp/internal/model"
	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// vectorToPoint converts a core.Vector to a geom.Point
func vectorToPoint(v core.Vector) geom.Point {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: float64(v.X), Y: float64(v.Y)}})
}

// toJSON marshals v for a JSON column, falling back to fallback on error
// or for an empty value.
func toJSON(v any, fallback string) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON(fallback)
	}
	return datatypes.JSON(data)
}

// CoreToPlayer converts one roster entry.
func CoreToPlayer(gameID uint, p core.PlayerSummary) model.Player {
	return model.Player{
		GameID:      gameID,
		Slot:        uint8(p.Slot),
		Port:        uint8(p.Slot.Port()),
		Follower:    p.Slot.Follower(),
		CharacterID: uint8(p.Character),
		Character:   p.Character.String(),
		Costume:     p.Costume,
		Stocks:      p.Stocks,
		DisplayName: p.DisplayName,
		ConnectCode: p.ConnectCode,
	}
}

// CoreToGame converts a core.GameSummary to a GORM model.Game, players
// included. The ID is left for the database to assign.
func CoreToGame(s *core.GameSummary) model.Game {
	g := model.Game{
		Source:    s.Source,
		Version:   s.Version.String(),
		StageID:   uint16(s.Stage),
		StageName: s.Stage.String(),
		Frames:    s.Frames,
		Roster:    toJSON(s.Players, "[]"),
		Notes:     toJSON(s.Notes, "{}"),
	}
	if !s.StartAt.IsNull() {
		g.StartAt = sql.NullTime{Time: s.StartAt.Time(), Valid: true}
	}
	for _, p := range s.Players {
		g.Players = append(g.Players, CoreToPlayer(0, p))
	}
	return g
}

// CoreToAction converts a core.Action of one slot to a GORM model.Action.
func CoreToAction(gameID uint, slot core.Slot, a core.Action) model.Action {
	m := model.Action{
		GameID:         gameID,
		Slot:           uint8(slot),
		Kind:           a.Kind.String(),
		StartFrame:     a.Start,
		EndFrame:       a.End,
		StartPosition:  vectorToPoint(a.Initial.Position),
		StartVelocityX: a.Initial.Velocity.X,
		StartVelocityY: a.Initial.Velocity.Y,
		GroundVelocity: a.Initial.GroundVelocityX,
		Facing:         a.Initial.Direction.String(),
		Airborne:       a.Initial.Airborne,
	}
	switch {
	case a.Kind.HasAttack():
		m.Attack = a.Attack.String()
	case a.Kind == core.ActionSpecial:
		m.Special = state.Label(a)
		m.SpecialID = a.Special.ID
		m.SpecialOwner = uint8(a.Special.Character)
	}
	return m
}

// CoreToActions converts a slot's action list.
func CoreToActions(gameID uint, slot core.Slot, actions []core.Action) []model.Action {
	out := make([]model.Action, 0, len(actions))
	for _, a := range actions {
		out = append(out, CoreToAction(gameID, slot, a))
	}
	return out
}
