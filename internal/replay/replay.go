// Package replay loads complete games from replay files, compressed or raw.
package replay

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/framelog/slp/internal/container"
	"github.com/framelog/slp/internal/parser"
	"github.com/framelog/slp/internal/sidecar"
	"github.com/framelog/slp/pkg/core"
)

// Loader turns replay bytes into decoded games.
type Loader struct {
	parser *parser.Parser
	logger *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := parser.NewParser(logger)
	if err != nil {
		return nil, err
	}
	return &Loader{parser: p, logger: logger}, nil
}

// Parse decodes a whole replay held in memory. Compressed containers are
// unpacked first. The footer's declared duration presizes the timelines.
func (l *Loader) Parse(data []byte) (*core.Game, error) {
	if container.IsCompressed(data) {
		raw, err := container.Decompress(data)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("unpacked container", "compressed", len(data), "raw", len(raw))
		data = raw
	}

	h, err := parser.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	info, err := sidecar.ReadInfo(data[h.FooterOffset:])
	if err != nil {
		return nil, err
	}

	game, err := l.parser.Decode(data, h, parser.Options{ExpectedFrames: info.Duration})
	if err != nil {
		return nil, err
	}
	game.Info = info
	return game, nil
}

// Open reads and decodes the replay at path.
func (l *Loader) Open(path string) (*core.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay: %w", err)
	}
	game, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

// ReadStart probes a raw replay for its game-start record without reading
// the event stream. Compressed containers are not seekable this way and
// report core.ErrFormatMismatch.
func ReadStart(r io.ReadSeeker) (*core.GameStart, error) {
	_, gs, err := parser.ReadHeader(r)
	return gs, err
}
