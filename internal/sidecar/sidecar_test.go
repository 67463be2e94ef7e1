package sidecar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/framelog/slp/internal/slptest"
	"github.com/framelog/slp/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() core.Notes {
	return core.Notes{
		Data:         "hello",
		StartFrames:  []int32{0, 10},
		FrameLengths: []int32{3, 3},
		DataIdx:      []int32{0, 3},
	}
}

func TestNotes_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		notes core.Notes
	}{
		{"sample", sampleNotes()},
		{"empty", core.Notes{}},
		{"multibyte", core.Notes{
			Data:         "ダッシュ wavedash",
			StartFrames:  []int32{-5, 1000},
			FrameLengths: []int32{0, 60},
			DataIdx:      []int32{0, 13},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteNotes(&buf, tt.notes))

			got, err := ReadNotes(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.notes, got)

			again, err := EncodeNotes(got)
			require.NoError(t, err)
			assert.Equal(t, buf.Bytes(), again)
		})
	}
}

func TestNotes_Accessors(t *testing.T) {
	n := sampleNotes()
	assert.Equal(t, 2, n.Len())
	assert.Equal(t, "hel", n.Text(0))
	assert.Equal(t, "lo", n.Text(1))

	var built core.Notes
	built.Add(0, 3, "hel")
	built.Add(10, 3, "lo")
	assert.Equal(t, n, built)
}

func TestReadNotes_Absent(t *testing.T) {
	n, err := ReadNotes([]byte("U\x08metadata{}}"))
	require.NoError(t, err)
	assert.Equal(t, core.Notes{}, n)
}

func TestReadNotes_Invalid(t *testing.T) {
	valid, err := EncodeNotes(sampleNotes())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"truncated", func(b []byte) []byte { return b[:len(b)-7] }},
		{"count mismatch", func(b []byte) []byte {
			return bytes.Replace(b, []byte("U\x05countl\x00\x00\x00\x02"), []byte("U\x05countl\x00\x00\x00\x03"), 1)
		}},
		{"offset past data", func(b []byte) []byte {
			// low byte of the last offset
			b[len(b)-2] = 9
			return b
		}},
		{"data overruns", func(b []byte) []byte {
			return bytes.Replace(b, []byte("Sl\x00\x00\x00\x05"), []byte("Sl\x00\x00\x01\x00"), 1)
		}},
		{"missing close", func(b []byte) []byte { return b[:len(b)-1] }},
		{"wrong key", func(b []byte) []byte {
			return bytes.Replace(b, []byte("startFrames"), []byte("startFramez"), 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadNotes(tt.mutate(bytes.Clone(valid)))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrStructurallyInvalid)
			loc, _ := core.LocationOf(err)
			assert.Equal(t, core.LocNotes, loc)
		})
	}
}

func TestWriteNotes_Unequal(t *testing.T) {
	n := sampleNotes()
	n.DataIdx = n.DataIdx[:1]
	err := WriteNotes(&bytes.Buffer{}, n)
	assert.ErrorIs(t, err, core.ErrStructurallyInvalid)
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteNotes_IOError(t *testing.T) {
	err := WriteNotes(failingWriter{}, sampleNotes())
	assert.ErrorIs(t, err, errWrite)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want core.Timestamp
	}{
		{"2023-06-04T18:22:11Z", core.PackTimestamp(2023, 6, 4, 18, 22, 11)},
		{"1999-12-31T23:59:59.123Z", core.PackTimestamp(1999, 12, 31, 23, 59, 59)},
		{"2023-06-04T18:22", core.NullTimestamp},
		{"2023-0x-04T18:22:11Z", core.NullTimestamp},
		{"", core.NullTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseTimestamp([]byte(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}

	ts := core.PackTimestamp(2023, 6, 4, 18, 22, 11)
	assert.Equal(t, 2023, ts.Year())
	assert.Equal(t, 6, ts.Month())
	assert.Equal(t, 4, ts.Day())
	assert.Equal(t, 18, ts.Hour())
	assert.Equal(t, 22, ts.Minute())
	assert.Equal(t, 11, ts.Second())
	assert.Equal(t, "2023-06-04T18:22:11Z", ts.String())
}

func TestReadInfo(t *testing.T) {
	notes := sampleNotes()
	footer, err := EncodeFooter(Metadata{
		StartAt:      "2023-06-04T18:22:11Z",
		LastFrame:    1000,
		HasLastFrame: true,
		Notes:        &notes,
	})
	require.NoError(t, err)

	info, err := ReadInfo(footer)
	require.NoError(t, err)
	assert.Equal(t, core.PackTimestamp(2023, 6, 4, 18, 22, 11), info.StartAt)
	assert.Equal(t, 1124, info.Duration)
	assert.Equal(t, notes, info.Notes)
}

func TestReadInfo_MissingFields(t *testing.T) {
	info, err := ReadInfo([]byte("U\x08metadata{U\x07startAtSU\x03bad}}"))
	require.NoError(t, err)
	assert.Equal(t, core.NullTimestamp, info.StartAt)
	assert.True(t, info.StartAt.IsNull())
	assert.Equal(t, 0, info.Duration)

	_, ok := ReadDuration([]byte("U\x09lastFramel\x00\x01"))
	assert.False(t, ok)
}

func TestEmbedNotes(t *testing.T) {
	base := func() *slptest.Builder {
		return slptest.New().GameStart(slptest.Version, core.Battlefield, slptest.Players(core.Fox, core.Marth))
	}
	withNotes := func() []byte {
		n := core.Notes{Data: "old", StartFrames: []int32{1}, FrameLengths: []int32{2}, DataIdx: []int32{0}}
		footer, err := EncodeFooter(Metadata{StartAt: "2023-06-04T18:22:11Z", Notes: &n})
		require.NoError(t, err)
		return base().Footer(footer).Bytes()
	}
	withoutNotes := func() []byte {
		footer, err := EncodeFooter(Metadata{LastFrame: 10, HasLastFrame: true})
		require.NoError(t, err)
		return base().Footer(footer).Bytes()
	}
	bare := func() []byte {
		return base().Footer([]byte("}")).Bytes()
	}

	tests := []struct {
		name string
		file []byte
	}{
		{"replace existing", withNotes()},
		{"insert into metadata", withoutNotes()},
		{"no metadata", bare()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EmbedNotes(tt.file, sampleNotes())
			require.NoError(t, err)

			footerStart := len(tt.file) - len(footerOf(t, tt.file))
			assert.Equal(t, tt.file[:footerStart], out[:footerStart])

			got, err := ReadNotes(out[footerStart:])
			require.NoError(t, err)
			assert.Equal(t, sampleNotes(), got)
			assert.True(t, bytes.HasSuffix(out, []byte("}}")))

			// other fields survive
			d1, ok1 := ReadDuration(footerOf(t, tt.file))
			d2, ok2 := ReadDuration(out[footerStart:])
			assert.Equal(t, ok1, ok2)
			assert.Equal(t, d1, d2)
			assert.Equal(t, ReadStartAt(footerOf(t, tt.file)), ReadStartAt(out[footerStart:]))

			// embedding twice is stable
			twice, err := EmbedNotes(out, sampleNotes())
			require.NoError(t, err)
			assert.Equal(t, out, twice)
		})
	}
}

func footerOf(t *testing.T, file []byte) []byte {
	t.Helper()
	i := bytes.Index(file, []byte(keyMetadata))
	if i < 0 {
		return file[len(file)-1:]
	}
	return file[i:]
}

func TestEmbedNotes_NotReplay(t *testing.T) {
	_, err := EmbedNotes([]byte("hello"), sampleNotes())
	assert.ErrorIs(t, err, core.ErrFormatMismatch)
}
