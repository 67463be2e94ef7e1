// internal/storage/memory/export.go
package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/framelog/slp/internal/storage/memory/export/v1"
	"github.com/klauspost/compress/gzip"
)

// exportName derives the output file name from the source file name and
// the game ID.
func (b *Backend) exportName() string {
	base := filepath.Base(b.game.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer(" ", "_", ":", "_").Replace(base)
	if base == "" || base == "." {
		base = "game"
	}
	name := fmt.Sprintf("%s_%d.json", base, b.game.ID)
	if b.cfg.CompressOutput {
		name += ".gz"
	}
	return name
}

// exportJSON writes the game data to a JSON file, gzipped when configured
func (b *Backend) exportJSON() error {
	export := v1.Build(&v1.GameData{Game: b.game, Actions: b.actions})

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, b.exportName())
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if b.cfg.CompressOutput {
		err = writeGzipJSON(f, export)
	} else {
		err = writeJSON(f, export)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	b.lastExportPath = outputPath
	return nil
}

func writeJSON(w io.Writer, data v1.Export) error {
	return json.NewEncoder(w).Encode(data)
}

func writeGzipJSON(w io.Writer, data v1.Export) error {
	gzWriter := gzip.NewWriter(w)
	if err := json.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}
