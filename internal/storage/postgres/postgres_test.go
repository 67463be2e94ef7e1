package postgres

import (
	"log/slog"
	"testing"

	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/pkg/core"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New(Dependencies{Manager: database.NewManager(zerolog.Nop())})
	require.NotNil(t, b)
	assert.Nil(t, b.DB())
}

func TestInit_Unreachable(t *testing.T) {
	viper.Set("db.host", "127.0.0.1")
	viper.Set("db.port", "1")
	t.Cleanup(viper.Reset)

	b := New(Dependencies{
		Manager: database.NewManager(zerolog.Nop()),
		Logger:  slog.New(slog.DiscardHandler),
	})
	err := b.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")

	// nothing was started, so Close is a no-op
	assert.NoError(t, b.Close())
	assert.Error(t, b.StartGame(&core.GameSummary{}))
}
