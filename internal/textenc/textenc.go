// Package textenc decodes the fixed-width legacy-encoded name fields of the
// game-start record.
package textenc

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"
)

// DecodeName decodes a NUL-terminated Shift-JIS field. Full-width ASCII is
// folded to its half-width form. Undecodable input falls back to the raw
// bytes up to the terminator.
func DecodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return ""
	}
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return width.Fold.String(string(out))
}

// EncodeName encodes s as Shift-JIS into a field of n bytes, NUL padded.
// Names that do not fit are truncated.
func EncodeName(s string, n int) ([]byte, error) {
	enc, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out[:n-1], enc)
	return out, nil
}
