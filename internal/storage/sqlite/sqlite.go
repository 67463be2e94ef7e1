// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend; the only SQLite-specific concerns are creating
// the in-memory DB and the periodic and final disk dumps.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/database"
	gormstorage "github.com/framelog/slp/internal/storage/gorm"

	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the SQLite storage backend.
type Dependencies struct {
	Manager *database.Manager
	Logger  *slog.Logger
	// MemoryName isolates the in-memory database; defaults to "slp".
	MemoryName string
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg      config.SQLiteConfig
	manager  *database.Manager
	log      *slog.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new SQLite storage backend.
func New(cfg config.SQLiteConfig, deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			Open: func() (*gorm.DB, error) {
				return deps.Manager.OpenSqlite(":memory:" + deps.MemoryName)
			},
			Manager: deps.Manager,
			Logger:  deps.Logger,
		}),
		cfg:     cfg,
		manager: deps.Manager,
		log:     deps.Logger,
	}
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	if b.cfg.OutputPath != "" && b.cfg.DumpInterval > 0 {
		go b.dumpLoop()
	} else {
		close(b.done)
	}
	return nil
}

// EndGame flushes the game and dumps the database so every finished game
// is on disk.
func (b *Backend) EndGame() error {
	if err := b.Backend.EndGame(); err != nil {
		return err
	}
	return b.dump()
}

// Close stops the dump goroutine, closes the embedded GORM backend and
// writes a final dump.
func (b *Backend) Close() error {
	if b.stopChan == nil {
		return nil
	}
	close(b.stopChan)
	<-b.done
	b.stopChan = nil

	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.dump()
}

func (b *Backend) dump() error {
	if b.cfg.OutputPath == "" {
		return nil
	}
	return b.manager.DumpMemoryToDisk(b.DB(), b.cfg.OutputPath)
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
// VACUUM INTO creates a point-in-time snapshot, so no pause mechanism is needed.
func (b *Backend) dumpLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			if err := b.dump(); err != nil {
				b.log.Error("Error dumping to disk", "error", err)
			} else {
				b.log.Debug("Dumped to disk", "duration", time.Since(start))
			}
		}
	}
}
