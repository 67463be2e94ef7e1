// Package postgres implements the storage.Backend interface on PostgreSQL
// with PostGIS, using the shared GORM backend for queued action writes.
package postgres

import (
	"fmt"
	"log/slog"

	"github.com/framelog/slp/internal/database"
	gormstorage "github.com/framelog/slp/internal/storage/gorm"
)

// Dependencies holds all dependencies for the postgres storage backend.
type Dependencies struct {
	Manager *database.Manager
	Logger  *slog.Logger
}

// Backend wraps the GORM backend with a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	logger *slog.Logger
}

// New creates a new postgres storage backend. The connection is opened by
// Init from the db.* config keys.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			Open:    deps.Manager.OpenPostgres,
			Manager: deps.Manager,
			Logger:  deps.Logger,
		}),
		logger: deps.Logger,
	}
}

// Init connects, migrates the schema and reports the PostGIS version.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	var version string
	if err := b.DB().Raw("SELECT PostGIS_Version()").Scan(&version).Error; err != nil {
		b.logger.Warn("PostGIS version unavailable", "error", err)
		return nil
	}
	b.logger.Info("Postgres storage ready", "postgis", version)
	return nil
}
