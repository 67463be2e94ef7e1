package sqlitestorage

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/internal/model"
	"github.com/framelog/slp/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, cfg config.SQLiteConfig) (*Backend, *database.Manager) {
	t.Helper()
	m := database.NewManager(zerolog.Nop())
	b := New(cfg, Dependencies{
		Manager:    m,
		Logger:     slog.New(slog.DiscardHandler),
		MemoryName: t.Name(),
	})
	require.NoError(t, b.Init())
	return b, m
}

func countGames(t *testing.T, m *database.Manager, path string) int64 {
	t.Helper()
	db, err := m.OpenSqlite(path)
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&model.Game{}).Count(&n).Error)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	return n
}

func TestEndGame_Dumps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slp.db")
	b, m := newTestBackend(t, config.SQLiteConfig{OutputPath: path})
	defer b.Close()

	s := &core.GameSummary{Source: "a.slp", Players: []core.PlayerSummary{{Slot: 0, Character: core.Sheik}}}
	require.NoError(t, b.StartGame(s))
	require.NoError(t, b.RecordActions(0, []core.Action{{Kind: core.ActionDashLeft, Start: 0, End: 9}}))
	require.NoError(t, b.EndGame())

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countGames(t, m, path))
}

func TestClose_FinalDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slp.db")
	b, m := newTestBackend(t, config.SQLiteConfig{OutputPath: path, DumpInterval: time.Hour})

	require.NoError(t, b.StartGame(&core.GameSummary{Source: "a.slp"}))
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	assert.Equal(t, int64(1), countGames(t, m, path))
}

func TestDumpLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slp.db")
	b, _ := newTestBackend(t, config.SQLiteConfig{OutputPath: path, DumpInterval: 10 * time.Millisecond})
	defer b.Close()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNoOutputPath(t *testing.T) {
	b, _ := newTestBackend(t, config.SQLiteConfig{})
	require.NoError(t, b.StartGame(&core.GameSummary{Source: "a.slp"}))
	require.NoError(t, b.EndGame())
	require.NoError(t, b.Close())
}
