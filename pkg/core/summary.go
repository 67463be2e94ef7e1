package core

// PlayerSummary is the per-port roster entry persisted with a game.
type PlayerSummary struct {
	Slot        Slot      `json:"slot"`
	Character   Character `json:"character"`
	Costume     uint8     `json:"costume"`
	Stocks      uint8     `json:"stocks"`
	DisplayName string    `json:"displayName,omitempty"`
	ConnectCode string    `json:"connectCode,omitempty"`
}

// GameSummary is the storage-facing view of a decoded game. ID is assigned
// by the backend in StartGame.
type GameSummary struct {
	ID      uint            `json:"id"`
	Source  string          `json:"source"`
	Version Version         `json:"version"`
	Stage   Stage           `json:"stage"`
	StartAt Timestamp       `json:"startAt"`
	Frames  int             `json:"frames"`
	Players []PlayerSummary `json:"players"`
	Notes   Notes           `json:"notes"`
}

// Summarize builds the summary of g, read from source. Players are listed
// for every active slot, followers included.
func Summarize(source string, g *Game) *GameSummary {
	s := &GameSummary{
		Source:  source,
		Version: g.Start.Version,
		Stage:   g.Start.Stage,
		StartAt: g.Info.StartAt,
		Frames:  g.FrameCount(),
		Notes:   g.Info.Notes,
	}
	for _, slot := range g.Start.ActiveSlots() {
		p := g.Start.Players[slot.Port()]
		c := p.Character
		if slot.Follower() {
			c = Nana
		}
		s.Players = append(s.Players, PlayerSummary{
			Slot:        slot,
			Character:   c,
			Costume:     p.Costume,
			Stocks:      p.Stocks,
			DisplayName: p.DisplayName,
			ConnectCode: p.ConnectCode,
		})
	}
	return s
}
