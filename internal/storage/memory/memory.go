// internal/storage/memory/memory.go
package memory

import (
	"errors"
	"slices"
	"sync"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/pkg/core"
)

// ErrNoGame is returned when actions arrive outside StartGame/EndGame.
var ErrNoGame = errors.New("no game started")

// Backend stores one game at a time in memory and exports it to JSON on
// EndGame.
type Backend struct {
	cfg     config.MemoryConfig
	game    *core.GameSummary
	actions map[core.Slot][]core.Action

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		actions: make(map[core.Slot][]core.Action),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartGame begins collecting a new game and assigns its ID.
func (b *Backend) StartGame(s *core.GameSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	s.ID = b.idCounter

	game := *s
	game.Players = slices.Clone(s.Players)
	b.game = &game
	b.actions = make(map[core.Slot][]core.Action)
	return nil
}

// RecordActions appends the actions of one slot.
func (b *Backend) RecordActions(slot core.Slot, actions []core.Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.game == nil {
		return ErrNoGame
	}
	b.actions[slot] = append(b.actions[slot], actions...)
	return nil
}

// EndGame exports the collected game and resets the backend.
func (b *Backend) EndGame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.game == nil {
		return ErrNoGame
	}
	err := b.exportJSON()
	b.game = nil
	return err
}

// Actions returns a copy of the actions recorded for slot in the current
// game.
func (b *Backend) Actions(slot core.Slot) []core.Action {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.actions[slot])
}

// ExportedFilePath returns the path of the last exported file.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
