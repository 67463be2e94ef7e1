package v1

import (
	"slices"

	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/pkg/core"
)

// GameData contains all the data needed to build an export
type GameData struct {
	Game    *core.GameSummary
	Actions map[core.Slot][]core.Action
}

// Build creates an Export from the game data
func Build(data *GameData) Export {
	g := data.Game
	export := Export{
		FormatVersion: FormatVersion,
		ID:            g.ID,
		Source:        g.Source,
		Version:       g.Version.String(),
		Stage:         Stage{ID: uint16(g.Stage), Name: g.Stage.String()},
		Frames:        g.Frames,
		Players:       make([]Player, 0, len(g.Players)),
		Notes:         make([]Note, 0, g.Notes.Len()),
	}
	if !g.StartAt.IsNull() {
		export.StartAt = g.StartAt.String()
	}

	for _, p := range g.Players {
		player := Player{
			Slot:        uint8(p.Slot),
			Port:        uint8(p.Slot.Port()),
			Follower:    p.Slot.Follower(),
			Character:   p.Character.String(),
			Costume:     p.Costume,
			Stocks:      p.Stocks,
			DisplayName: p.DisplayName,
			ConnectCode: p.ConnectCode,
		}
		actions := data.Actions[p.Slot]
		player.Actions = make([][]any, 0, len(actions))
		for _, a := range actions {
			player.Actions = append(player.Actions, actionRow(a))
		}
		export.Players = append(export.Players, player)
	}
	slices.SortFunc(export.Players, func(a, b Player) int { return int(a.Slot) - int(b.Slot) })

	for i := range g.Notes.Len() {
		export.Notes = append(export.Notes, Note{
			StartFrame: g.Notes.StartFrames[i],
			Length:     g.Notes.FrameLengths[i],
			Text:       g.Notes.Text(i),
		})
	}
	return export
}

// actionRow flattens an action to
// [kind, label, startFrame, endFrame, x, y, facing].
func actionRow(a core.Action) []any {
	return []any{
		a.Kind.String(),
		state.Label(a),
		a.Start,
		a.End,
		a.Initial.Position.X,
		a.Initial.Position.Y,
		a.Initial.Direction.String(),
	}
}
