// Package container reads and writes the compressed replay container: a
// four byte magic, a big-endian version and a zstd stream of the raw replay.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/framelog/slp/pkg/core"
)

// Magic prefixes every compressed container.
var Magic = []byte("SLPZ")

// MaxVersion is the newest container version this package reads.
const MaxVersion uint32 = 0

const headerSize = 8

// IsCompressed reports whether data starts with the container magic.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

// Decompress returns the raw replay held by a container.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return nil, core.ErrFormatMismatch
	}
	if len(data) < headerSize {
		return nil, core.Invalid(core.LocHeader, len(data), "container header truncated")
	}
	if v := binary.BigEndian.Uint32(data[4:headerSize]); v > MaxVersion {
		return nil, fmt.Errorf("container version %d: %w", v, core.ErrTooNewVersion)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCompression, err)
	}
	return raw, nil
}

// Compress writes raw as a version MaxVersion container to w.
func Compress(w io.Writer, raw []byte) error {
	var hdr [headerSize]byte
	copy(hdr[:], Magic)
	binary.BigEndian.PutUint32(hdr[4:], MaxVersion)
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing container header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return fmt.Errorf("compressing replay: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing zstd stream: %w", err)
	}
	return nil
}
