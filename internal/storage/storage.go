// internal/storage/storage.go
package storage

import "github.com/framelog/slp/pkg/core"

// Backend is the interface all storage implementations must satisfy.
// Calls for one game are made in order: StartGame, any number of
// RecordActions, EndGame.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Game management. StartGame assigns s.ID.
	StartGame(s *core.GameSummary) error
	EndGame() error

	// Segmented actions of one slot timeline of the current game.
	RecordActions(slot core.Slot, actions []core.Action) error
}

// Exportable is an optional interface for backends that write one file per
// game.
type Exportable interface {
	ExportedFilePath() string
}
