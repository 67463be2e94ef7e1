// internal/storage/storage_test.go
package storage_test

import (
	"testing"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/internal/storage"
	gormstorage "github.com/framelog/slp/internal/storage/gorm"
	"github.com/framelog/slp/internal/storage/memory"
	"github.com/framelog/slp/internal/storage/postgres"
	sqlitestorage "github.com/framelog/slp/internal/storage/sqlite"
	"github.com/framelog/slp/internal/storage/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Exportable = (*memory.Backend)(nil)
	_ storage.Backend    = (*gormstorage.Backend)(nil)
	_ storage.Backend    = (*postgres.Backend)(nil)
	_ storage.Backend    = (*sqlitestorage.Backend)(nil)
	_ storage.Backend    = (*websocket.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	db := database.NewManager(zerolog.Nop())

	tests := []struct {
		typ  string
		want any
	}{
		{"memory", &memory.Backend{}},
		{"postgres", &postgres.Backend{}},
		{"sqlite", &sqlitestorage.Backend{}},
		{"websocket", &websocket.Backend{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			b, err := storage.NewBackend(config.StorageConfig{Type: tt.typ}, db, nil)
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "s3"}, nil, nil)
	assert.EqualError(t, err, "unknown storage type: s3")
}
