package sidecar

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/framelog/slp/internal/parser"
	"github.com/framelog/slp/pkg/core"
)

const (
	keyCount        = "U\x05count"
	keyData         = "U\x04data"
	keyStartFrames  = "U\x0bstartFrames"
	keyFrameLengths = "U\x0cframeLengths"
	keyDataIdx      = "U\x07dataIdx"
)

// cursor walks the notes block. base is the block's offset in the footer and
// only feeds error reports.
type cursor struct {
	b    []byte
	pos  int
	base int
}

func (c *cursor) fail(format string, args ...any) error {
	return core.Invalid(core.LocNotes, c.base+c.pos, format, args...)
}

func (c *cursor) expect(lit string) error {
	if !bytes.HasPrefix(c.b[c.pos:], []byte(lit)) {
		return c.fail("expected %q", lit)
	}
	c.pos += len(lit)
	return nil
}

func (c *cursor) word() (uint32, error) {
	if c.pos+4 > len(c.b) {
		return 0, c.fail("truncated integer")
	}
	v := binary.BigEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v, nil
}

// tagged reads an 'l' tagged int32.
func (c *cursor) tagged() (int32, error) {
	if err := c.expect("l"); err != nil {
		return 0, err
	}
	v, err := c.word()
	return int32(v), err
}

func (c *cursor) array(key string) ([]int32, error) {
	if err := c.expect(key + "[#l"); err != nil {
		return nil, err
	}
	n, err := c.word()
	if err != nil {
		return nil, err
	}
	if int(n) > (len(c.b)-c.pos)/5 {
		return nil, c.fail("%s: %d elements overrun block", key[2:], n)
	}
	var out []int32
	for i := uint32(0); i < n; i++ {
		v, err := c.tagged()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadNotes decodes the notes block of a footer. A footer without one yields
// empty notes.
func ReadNotes(footer []byte) (core.Notes, error) {
	i := bytes.Index(footer, []byte(keyNotes+"{"))
	if i < 0 {
		return core.Notes{}, nil
	}
	n, _, err := decodeNotes(footer[i:], i)
	return n, err
}

// decodeNotes parses a notes block starting at its key and returns the
// number of bytes consumed.
func decodeNotes(b []byte, base int) (core.Notes, int, error) {
	c := &cursor{b: b, base: base}
	var n core.Notes

	if err := c.expect(keyNotes + "{"); err != nil {
		return n, 0, err
	}
	if err := c.expect(keyCount); err != nil {
		return n, 0, err
	}
	count, err := c.tagged()
	if err != nil {
		return n, 0, err
	}
	if count < 0 {
		return n, 0, c.fail("negative count %d", count)
	}

	if err := c.expect(keyData + "Sl"); err != nil {
		return n, 0, err
	}
	size, err := c.word()
	if err != nil {
		return n, 0, err
	}
	if int(size) > len(b)-c.pos {
		return n, 0, c.fail("data of %d bytes overruns block", size)
	}
	n.Data = string(b[c.pos : c.pos+int(size)])
	c.pos += int(size)

	if n.StartFrames, err = c.array(keyStartFrames); err != nil {
		return n, 0, err
	}
	if n.FrameLengths, err = c.array(keyFrameLengths); err != nil {
		return n, 0, err
	}
	if n.DataIdx, err = c.array(keyDataIdx); err != nil {
		return n, 0, err
	}
	if err := c.expect("}"); err != nil {
		return n, 0, err
	}
	if err := validate(&n, int(count)); err != nil {
		return core.Notes{}, 0, core.Invalid(core.LocNotes, base, "%s", err)
	}
	return n, c.pos, nil
}

func validate(n *core.Notes, count int) error {
	if len(n.StartFrames) != count || len(n.FrameLengths) != count || len(n.DataIdx) != count {
		return fmt.Errorf("array lengths %d/%d/%d do not match count %d",
			len(n.StartFrames), len(n.FrameLengths), len(n.DataIdx), count)
	}
	prev := int32(0)
	for i, idx := range n.DataIdx {
		if idx < prev || int(idx) > len(n.Data) {
			return fmt.Errorf("note %d offset %d outside data of %d bytes", i, idx, len(n.Data))
		}
		prev = idx
	}
	for i, l := range n.FrameLengths {
		if l < 0 {
			return fmt.Errorf("note %d has negative length %d", i, l)
		}
	}
	return nil
}

// EncodeNotes returns the wire form of a notes block.
func EncodeNotes(n core.Notes) ([]byte, error) {
	count := len(n.StartFrames)
	if err := validate(&n, count); err != nil {
		return nil, core.Invalid(core.LocNotes, 0, "%s", err)
	}

	var b bytes.Buffer
	word := func(v uint32) {
		_ = binary.Write(&b, binary.BigEndian, v)
	}
	array := func(key string, vs []int32) {
		b.WriteString(key + "[#l")
		word(uint32(len(vs)))
		for _, v := range vs {
			b.WriteByte('l')
			word(uint32(v))
		}
	}

	b.WriteString(keyNotes + "{")
	b.WriteString(keyCount + "l")
	word(uint32(count))
	b.WriteString(keyData + "Sl")
	word(uint32(len(n.Data)))
	b.WriteString(n.Data)
	array(keyStartFrames, n.StartFrames)
	array(keyFrameLengths, n.FrameLengths)
	array(keyDataIdx, n.DataIdx)
	b.WriteByte('}')
	return b.Bytes(), nil
}

// WriteNotes writes the wire form of a notes block to w.
func WriteNotes(w io.Writer, n core.Notes) error {
	b, err := EncodeNotes(n)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing notes: %w", err)
	}
	return nil
}

// EmbedNotes returns a copy of the replay file with its notes replaced. A
// file without notes gets a new block appended to its metadata object, and a
// file without metadata gets a metadata object holding only the notes.
func EmbedNotes(file []byte, n core.Notes) ([]byte, error) {
	h, err := parser.ParseHeader(file)
	if err != nil {
		return nil, err
	}
	block, err := EncodeNotes(n)
	if err != nil {
		return nil, err
	}

	footer := file[h.FooterOffset:]
	var start, end int
	switch i := bytes.Index(footer, []byte(keyNotes+"{")); {
	case i >= 0:
		_, size, err := decodeNotes(footer[i:], i)
		if err != nil {
			return nil, err
		}
		start, end = i, i+size
	case bytes.Contains(footer, []byte(keyMetadata+"{")):
		if !bytes.HasSuffix(footer, []byte("}}")) {
			return nil, core.Invalid(core.LocMetadata, h.FooterOffset, "metadata object not closed")
		}
		start = len(footer) - 2
		end = start
	default:
		if !bytes.HasSuffix(footer, []byte("}")) {
			return nil, core.Invalid(core.LocMetadata, h.FooterOffset, "container not closed")
		}
		start = len(footer) - 1
		end = start
		block = append(append([]byte(keyMetadata+"{"), block...), '}')
	}

	out := make([]byte, 0, len(file)-(end-start)+len(block))
	out = append(out, file[:h.FooterOffset+start]...)
	out = append(out, block...)
	out = append(out, footer[end:]...)
	return out, nil
}
