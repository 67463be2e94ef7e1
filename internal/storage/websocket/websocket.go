// Package websocket streams segmented games to an ingest server.
package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/framelog/slp/internal/state"
	"github.com/framelog/slp/pkg/core"
	"github.com/framelog/slp/pkg/streaming"
)

// DefaultAckTimeout bounds the wait for start_game and end_game acks.
const DefaultAckTimeout = 10 * time.Second

// ErrNoGame is returned when actions arrive outside StartGame/EndGame.
var ErrNoGame = errors.New("no game started")

// Config holds WebSocket backend configuration.
type Config struct {
	URL        string
	Secret     string
	AckTimeout time.Duration
}

// Backend streams games over WebSocket. start_game and end_game wait for
// a server ack; action batches are fire-and-forget.
type Backend struct {
	conn *connection
	cfg  Config

	gameID  uint
	sent    int
	localID uint
}

// New creates a new WebSocket storage backend.
func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = DefaultAckTimeout
	}
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.open(b.cfg.URL, b.cfg.Secret)
}

// Close disconnects from the WebSocket server.
func (b *Backend) Close() error {
	return b.conn.close()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	data, err := json.Marshal(streaming.Envelope{Type: msgType, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// StartGame sends the game summary and waits for the server ack. The
// server's game ID is used when the ack carries one, a local counter
// otherwise.
func (b *Backend) StartGame(s *core.GameSummary) error {
	data, err := marshalEnvelope(streaming.TypeStartGame, streaming.StartGamePayload{Game: s})
	if err != nil {
		return err
	}
	b.conn.setReplay(data)

	ack, err := b.conn.sendAndWait(data, streaming.TypeStartGame, b.cfg.AckTimeout)
	if err != nil {
		b.conn.setReplay(nil)
		return err
	}
	b.localID++
	s.ID = b.localID
	if ack.GameID != 0 {
		s.ID = ack.GameID
	}
	b.gameID = s.ID
	b.sent = 0
	return nil
}

// RecordActions sends one batch for slot.
func (b *Backend) RecordActions(slot core.Slot, actions []core.Action) error {
	if b.gameID == 0 {
		return ErrNoGame
	}
	data, err := marshalEnvelope(streaming.TypeActions, streaming.ActionsPayload{
		GameID:  b.gameID,
		Slot:    slot,
		Actions: Records(actions),
	})
	if err != nil {
		return err
	}
	b.conn.send(data)
	b.sent += len(actions)
	return nil
}

// EndGame sends end_game and waits for the server ack.
func (b *Backend) EndGame() error {
	if b.gameID == 0 {
		return ErrNoGame
	}
	data, err := marshalEnvelope(streaming.TypeEndGame, streaming.EndGamePayload{GameID: b.gameID, Actions: b.sent})
	if err != nil {
		return err
	}
	_, err = b.conn.sendAndWait(data, streaming.TypeEndGame, b.cfg.AckTimeout)

	// Clear game state regardless of error.
	b.conn.setReplay(nil)
	b.gameID = 0
	b.sent = 0
	return err
}

// Records converts actions to their wire form.
func Records(actions []core.Action) []streaming.ActionRecord {
	out := make([]streaming.ActionRecord, 0, len(actions))
	for _, a := range actions {
		out = append(out, streaming.ActionRecord{
			Kind:   a.Kind.String(),
			Label:  state.Label(a),
			Start:  a.Start,
			End:    a.End,
			X:      a.Initial.Position.X,
			Y:      a.Initial.Position.Y,
			Facing: a.Initial.Direction.String(),
		})
	}
	return out
}
