// Package v1 contains the v1 JSON export format for segmented games.
package v1

// FormatVersion is written to every v1 export.
const FormatVersion = 1

// Export is the root JSON structure for v1 format
type Export struct {
	FormatVersion int      `json:"formatVersion"`
	ID            uint     `json:"id"`
	Source        string   `json:"source"`
	Version       string   `json:"version"`
	StartAt       string   `json:"startAt,omitempty"`
	Stage         Stage    `json:"stage"`
	Frames        int      `json:"frames"`
	Players       []Player `json:"players"`
	Notes         []Note   `json:"notes"`
}

// Stage names the stage a game was played on.
type Stage struct {
	ID   uint16 `json:"id"`
	Name string `json:"name"`
}

// Player is one tracked slot and its action rows.
// Each action row is [kind, label, startFrame, endFrame, x, y, facing].
type Player struct {
	Slot        uint8   `json:"slot"`
	Port        uint8   `json:"port"`
	Follower    bool    `json:"follower,omitempty"`
	Character   string  `json:"character"`
	Costume     uint8   `json:"costume"`
	Stocks      uint8   `json:"stocks"`
	DisplayName string  `json:"displayName,omitempty"`
	ConnectCode string  `json:"connectCode,omitempty"`
	Actions     [][]any `json:"actions"`
}

// Note is one frame-anchored annotation.
type Note struct {
	StartFrame int32  `json:"startFrame"`
	Length     int32  `json:"length"`
	Text       string `json:"text"`
}
