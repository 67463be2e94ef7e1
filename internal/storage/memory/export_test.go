// internal/storage/memory/export_test.go
package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/framelog/slp/internal/config"
	v1 "github.com/framelog/slp/internal/storage/memory/export/v1"
	"github.com/framelog/slp/pkg/core"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *core.GameSummary {
	return &core.GameSummary{
		Source:  "/replays/Game 20230604T182211.slp",
		Version: core.Version{Major: 3, Minor: 16},
		Stage:   core.Battlefield,
		Frames:  600,
		Players: []core.PlayerSummary{
			{Slot: 0, Character: core.Fox},
			{Slot: 1, Character: core.Peach},
		},
	}
}

func readExport(t *testing.T, path string, compressed bool) v1.Export {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var export v1.Export
	if compressed {
		gz, err := gzip.NewReader(f)
		require.NoError(t, err)
		defer gz.Close()
		require.NoError(t, json.NewDecoder(gz).Decode(&export))
	} else {
		require.NoError(t, json.NewDecoder(f).Decode(&export))
	}
	return export
}

func TestExportName(t *testing.T) {
	tests := []struct {
		source     string
		compressed bool
		expected   string
	}{
		{"/replays/Game 20230604T182211.slp", false, "Game_20230604T182211_3.json"},
		{"a:b.slp", true, "a_b_3.json.gz"},
		{"", false, "game_3.json"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			b := New(config.MemoryConfig{CompressOutput: tt.compressed})
			b.game = &core.GameSummary{ID: 3, Source: tt.source}
			assert.Equal(t, tt.expected, b.exportName())
		})
	}
}

func TestEndGame_ExportsJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})

	s := testGame()
	require.NoError(t, b.StartGame(s))
	require.NoError(t, b.RecordActions(0, []core.Action{
		{Kind: core.ActionShortHopAerial, Attack: core.AttackDair, Start: 0, End: 34},
	}))
	require.NoError(t, b.RecordActions(1, []core.Action{
		{Kind: core.ActionSpecial, Special: core.SpecialAction{Character: core.Peach, ID: 0}, Start: 0, End: 20},
	}))
	require.NoError(t, b.EndGame())

	path := b.ExportedFilePath()
	assert.Equal(t, filepath.Join(dir, "Game_20230604T182211_1.json"), path)

	export := readExport(t, path, false)
	assert.Equal(t, "Battlefield", export.Stage.Name)
	require.Len(t, export.Players, 2)
	require.Len(t, export.Players[0].Actions, 1)
	assert.Equal(t, "ShortHopAerial", export.Players[0].Actions[0][0])
	assert.Equal(t, "Dair", export.Players[0].Actions[0][1])
	assert.Equal(t, float64(34), export.Players[0].Actions[0][3])
	assert.Equal(t, "Special", export.Players[1].Actions[0][0])
}

func TestEndGame_ExportsGzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: filepath.Join(dir, "nested"), CompressOutput: true})

	require.NoError(t, b.StartGame(testGame()))
	require.NoError(t, b.RecordActions(0, []core.Action{{Kind: core.ActionLedgeWait, Start: 0, End: 60}}))
	require.NoError(t, b.EndGame())

	path := b.ExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))
	export := readExport(t, path, true)
	assert.Equal(t, v1.FormatVersion, export.FormatVersion)
	assert.Equal(t, "LedgeWait", export.Players[0].Actions[0][0])
}

func TestEndGame_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	b := New(config.MemoryConfig{OutputDir: file})
	require.NoError(t, b.StartGame(testGame()))
	assert.Error(t, b.EndGame())
	assert.Empty(t, b.ExportedFilePath())
}
