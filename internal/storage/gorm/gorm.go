// Package gormstorage implements the storage.Backend interface on top of GORM,
// with an internal action queue drained by a background writer goroutine.
// The sqlite and postgres backends wrap it and only differ in how the
// database is opened and persisted.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/internal/model"
	"github.com/framelog/slp/internal/model/convert"
	"github.com/framelog/slp/internal/queue"
	"github.com/framelog/slp/pkg/core"

	"gorm.io/gorm"
)

// DefaultFlushInterval is how often the writer drains the action queue.
const DefaultFlushInterval = 2 * time.Second

// ErrNoGame is returned when actions arrive outside StartGame/EndGame.
var ErrNoGame = errors.New("no game started")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	// DB is used when set; otherwise Open is called by Init.
	DB      *gorm.DB
	Open    func() (*gorm.DB, error)
	Manager *database.Manager
	Logger  *slog.Logger

	FlushInterval time.Duration
}

// Backend implements storage.Backend with queue-based batch writes.
type Backend struct {
	deps     Dependencies
	actions  *queue.Queue[model.Action]
	gameID   atomic.Uint64
	stopChan chan struct{}
	done     chan struct{}

	flushMu       sync.Mutex
	lastWriteTime atomic.Int64
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = DefaultFlushInterval
	}
	return &Backend{
		deps:    deps,
		actions: queue.New[model.Action](),
	}
}

// DB returns the connection in use, nil before Init.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init opens the database if needed, runs schema migration, and starts the
// DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		if b.deps.Open == nil {
			return errors.New("no database configured")
		}
		db, err := b.deps.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		b.deps.DB = db
	}
	if b.deps.Manager != nil {
		if err := b.deps.Manager.Setup(b.deps.DB); err != nil {
			return fmt.Errorf("failed to setup DB: %w", err)
		}
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.writeLoop()
	return nil
}

// Close stops the DB writer goroutine and writes anything still queued.
func (b *Backend) Close() error {
	if b.stopChan == nil {
		return nil
	}
	close(b.stopChan)
	<-b.done
	b.stopChan = nil
	return b.Flush()
}

// StartGame inserts the game and its players synchronously so the
// DB-assigned ID can be handed back and stamped on queued actions.
func (b *Backend) StartGame(s *core.GameSummary) error {
	if b.deps.DB == nil {
		return errors.New("backend not initialized")
	}
	g := convert.CoreToGame(s)
	if err := b.deps.DB.Create(&g).Error; err != nil {
		return fmt.Errorf("failed to insert game %s: %w", s.Source, err)
	}
	s.ID = g.ID
	b.gameID.Store(uint64(g.ID))
	return nil
}

// RecordActions converts and queues the actions of one slot.
func (b *Backend) RecordActions(slot core.Slot, actions []core.Action) error {
	id := uint(b.gameID.Load())
	if id == 0 {
		return ErrNoGame
	}
	b.actions.Push(convert.CoreToActions(id, slot, actions)...)
	return nil
}

// EndGame flushes the game's actions and records the write timing.
func (b *Backend) EndGame() error {
	id := uint(b.gameID.Swap(0))
	if id == 0 {
		return ErrNoGame
	}
	queued := b.actions.Len()
	if err := b.Flush(); err != nil {
		return err
	}
	perf := model.ScanPerformance{
		Time:                time.Now(),
		GameID:              id,
		QueuedActions:       uint32(queued),
		LastWriteDurationMs: float32(b.LastWriteDuration().Microseconds()) / 1000,
	}
	if err := b.deps.DB.Create(&perf).Error; err != nil {
		b.deps.Logger.Warn("Failed to record scan performance", "gameId", id, "error", err)
	}
	return nil
}

// Flush writes all queued actions now.
func (b *Backend) Flush() error {
	if b.deps.DB == nil {
		return nil
	}
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	start := time.Now()
	err := writeQueue(b.deps.DB, b.actions, "actions", b.deps.Logger)
	b.lastWriteTime.Store(int64(time.Since(start)))
	return err
}

// LastWriteDuration reports how long the last flush took.
func (b *Backend) LastWriteDuration() time.Duration {
	return time.Duration(b.lastWriteTime.Load())
}

// LoadGame reads back a stored game and its actions grouped by slot.
func (b *Backend) LoadGame(id uint) (*core.GameSummary, map[core.Slot][]core.Action, error) {
	var g model.Game
	if err := b.deps.DB.Preload("Players").First(&g, id).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load game %d: %w", id, err)
	}
	s, err := convert.GameToCore(&g)
	if err != nil {
		return nil, nil, err
	}

	var rows []model.Action
	if err := b.deps.DB.Where("game_id = ?", id).Order("slot, start_frame").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load actions of game %d: %w", id, err)
	}
	actions := make(map[core.Slot][]core.Action)
	for _, r := range rows {
		a, err := convert.ActionToCore(r)
		if err != nil {
			return nil, nil, fmt.Errorf("game %d action %d: %w", id, r.ID, err)
		}
		actions[core.Slot(r.Slot)] = append(actions[core.Slot(r.Slot)], a)
	}
	return s, actions, nil
}

// writeQueue writes all items from a queue to the database in a transaction.
// On failure the items go back to the front of the queue.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log *slog.Logger) error {
	if q.Empty() {
		return nil
	}

	items := q.GetAndEmpty()
	tx := db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		log.Error("Error creating "+name, "count", len(items), "error", err)
		tx.Rollback()
		q.Requeue(items)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tx.Commit().Error; err != nil {
		q.Requeue(items)
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	log.Debug("Wrote "+name, "count", len(items))
	return nil
}

// writeLoop periodically drains the action queue into the DB.
func (b *Backend) writeLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.deps.Logger.Warn("Background flush failed, will retry", "queued", b.actions.Len(), "error", err)
			}
		}
	}
}
