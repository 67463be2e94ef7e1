package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/framelog/slp/internal/dispatcher"
	"github.com/framelog/slp/pkg/core"
)

// CommandGame carries a *Result to storage.
const CommandGame = ":GAME:"

// gameQueueSize bounds the analyzed games waiting for the backend.
const gameQueueSize = 64

// RegisterHandlers registers the storage handler with the dispatcher.
// Backends hold one open game at a time, so games are stored by the single
// queue goroutine; the queue blocks so no analyzed game is dropped.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CommandGame, m.handleGame, dispatcher.Buffered(gameQueueSize), dispatcher.Blocking(), dispatcher.Logged())
}

func (m *Manager) handleGame(e dispatcher.Event) (any, error) {
	res, ok := e.Payload.(*Result)
	if !ok {
		return nil, fmt.Errorf("unexpected payload %T", e.Payload)
	}
	if err := m.store(res); err != nil {
		m.fail(context.Background(), "Failed to store game", e.Source, err)
		return nil, err
	}
	m.numStored.Add(1)
	m.stored.Add(context.Background(), 1)

	if m.deps.Influx != nil {
		if err := m.deps.Influx.RecordGame(context.Background(), res.Summary, res.Actions); err != nil {
			m.deps.Logger.Warn("Failed to export action stats", "source", e.Source, "error", err)
		}
	}
	return res.Summary.ID, nil
}

// store writes one game. EndGame runs even after a failed batch so the
// backend is ready for the next game.
func (m *Manager) store(res *Result) error {
	b := m.deps.Backend
	if err := b.StartGame(res.Summary); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	var errs []error
	for _, slot := range slotsOf(res.Actions) {
		if err := b.RecordActions(slot, res.Actions[slot]); err != nil {
			errs = append(errs, fmt.Errorf("slot %s: %w", slot, err))
		}
	}
	if err := b.EndGame(); err != nil {
		errs = append(errs, fmt.Errorf("end game: %w", err))
	}
	return errors.Join(errs...)
}

func slotsOf(actions map[core.Slot][]core.Action) []core.Slot {
	slots := make([]core.Slot, 0, len(actions))
	for s := range actions {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}
