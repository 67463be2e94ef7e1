// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/internal/storage/memory"
	"github.com/framelog/slp/internal/storage/postgres"
	sqlitestorage "github.com/framelog/slp/internal/storage/sqlite"
	"github.com/framelog/slp/internal/storage/websocket"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, db *database.Manager, logger *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(postgres.Dependencies{Manager: db, Logger: logger}), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, sqlitestorage.Dependencies{Manager: db, Logger: logger}), nil
	case "websocket":
		return websocket.New(websocket.Config{
			URL:        cfg.WebSocket.URL,
			Secret:     cfg.WebSocket.Secret,
			AckTimeout: cfg.WebSocket.AckTimeout,
		}, logger), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
