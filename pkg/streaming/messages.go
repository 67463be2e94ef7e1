// Package streaming defines the JSON envelopes exchanged with an ingest
// server by the websocket storage backend.
package streaming

import (
	"encoding/json"

	"github.com/framelog/slp/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartGame = "start_game"
	TypeActions   = "actions"
	TypeEndGame   = "end_game"
	TypeAck       = "ack"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
	// GameID is the server-side ID of the game, sent with the start_game ack.
	GameID uint `json:"gameId,omitempty"`
}

// StartGamePayload carries the game summary.
type StartGamePayload struct {
	Game *core.GameSummary `json:"game"`
}

// ActionRecord is the wire form of one segmented action.
type ActionRecord struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label,omitempty"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Facing string  `json:"facing"`
}

// ActionsPayload carries a batch of actions of one slot.
type ActionsPayload struct {
	GameID  uint           `json:"gameId"`
	Slot    core.Slot      `json:"slot"`
	Actions []ActionRecord `json:"actions"`
}

// EndGamePayload closes a game.
type EndGamePayload struct {
	GameID  uint `json:"gameId"`
	Actions int  `json:"actions"`
}
