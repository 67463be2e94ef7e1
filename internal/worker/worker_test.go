package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framelog/slp/internal/dispatcher"
	"github.com/framelog/slp/internal/replay"
	"github.com/framelog/slp/internal/sidecar"
	"github.com/framelog/slp/internal/slptest"
	"github.com/framelog/slp/pkg/core"
)

// mockLogger implements dispatcher.Logger for testing
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Debug(msg string, keysAndValues ...any) { l.add(msg) }
func (l *mockLogger) Info(msg string, keysAndValues ...any)  { l.add(msg) }
func (l *mockLogger) Error(msg string, keysAndValues ...any) { l.add(msg) }

func (l *mockLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

// mockBackend implements storage.Backend for testing
type mockBackend struct {
	mu sync.Mutex

	games      []*core.GameSummary
	actions    map[uint]map[core.Slot][]core.Action
	open       uint
	ended      int
	startErr   error
	writeDelay time.Duration
}

func newMockBackend() *mockBackend {
	return &mockBackend{actions: make(map[uint]map[core.Slot][]core.Action)}
}

func (b *mockBackend) Init() error  { return nil }
func (b *mockBackend) Close() error { return nil }

func (b *mockBackend) StartGame(s *core.GameSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.startErr != nil {
		return b.startErr
	}
	if b.open != 0 {
		return errors.New("game already open")
	}
	s.ID = uint(len(b.games) + 1)
	b.games = append(b.games, s)
	b.actions[s.ID] = make(map[core.Slot][]core.Action)
	b.open = s.ID
	return nil
}

func (b *mockBackend) RecordActions(slot core.Slot, actions []core.Action) error {
	time.Sleep(b.writeDelay)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open == 0 {
		return errors.New("no game")
	}
	b.actions[b.open][slot] = append(b.actions[b.open][slot], actions...)
	return nil
}

func (b *mockBackend) EndGame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = 0
	b.ended++
	return nil
}

func (b *mockBackend) LastWriteDuration() time.Duration { return 3 * time.Millisecond }

// writeReplay writes a two-player replay where both ports wait for ten
// frames and then shield.
func writeReplay(t *testing.T, dir, name string) string {
	t.Helper()
	footer, err := sidecar.EncodeFooter(sidecar.Metadata{StartAt: "2023-06-04T18:22:11Z"})
	require.NoError(t, err)

	b := slptest.New().Footer(footer)
	b.GameStart(slptest.Version, core.FinalDestination, slptest.Players(core.Fox, core.Marth))
	for f := 0; f < 13; f++ {
		st := uint16(core.StateWait)
		if f >= 10 {
			st = uint16(core.StateGuard)
		}
		b.Pre(f, 0, false, core.Inputs{}).
			Post(f, 0, false, slptest.Post{Character: core.Fox, State: st}).
			Pre(f, 1, false, core.Inputs{}).
			Post(f, 1, false, slptest.Post{Character: core.Marth, State: st}).
			Bookend(f)
	}
	b.GameEnd()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
	return path
}

func newTestManager(t *testing.T, backend *mockBackend) (*Manager, *dispatcher.Dispatcher) {
	t.Helper()
	loader, err := replay.NewLoader(nil)
	require.NoError(t, err)
	m, err := NewManager(Dependencies{Loader: loader, Backend: backend, Concurrency: 2})
	require.NoError(t, err)
	d, err := dispatcher.New(&mockLogger{})
	require.NoError(t, err)
	m.RegisterHandlers(d)
	return m, d
}

func TestSegmentGame(t *testing.T) {
	loader, err := replay.NewLoader(nil)
	require.NoError(t, err)
	g, err := loader.Open(writeReplay(t, t.TempDir(), "a.slp"))
	require.NoError(t, err)

	actions, err := SegmentGame(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	for _, slot := range []core.Slot{0, 1} {
		require.Len(t, actions[slot], 1)
		assert.Equal(t, core.ActionGroundWait, actions[slot][0].Kind)
		assert.Equal(t, 0, actions[slot][0].Start)
		assert.Equal(t, 10, actions[slot][0].End)
	}
}

func TestSegmentGame_Canceled(t *testing.T) {
	loader, err := replay.NewLoader(nil)
	require.NoError(t, err)
	g, err := loader.Open(writeReplay(t, t.TempDir(), "a.slp"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SegmentGame(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeReplay(t, dir, "a.slp"),
		writeReplay(t, dir, "b.slp"),
		writeReplay(t, dir, "c.slp"),
	}
	backend := newMockBackend()
	backend.writeDelay = time.Millisecond
	m, d := newTestManager(t, backend)

	require.NoError(t, m.ProcessFiles(context.Background(), paths, d))
	d.Close()

	assert.Equal(t, Stats{Decoded: 3, Stored: 3}, m.Stats())
	assert.Len(t, backend.games, 3)
	assert.Equal(t, 3, backend.ended)
	for _, g := range backend.games {
		assert.Equal(t, core.FinalDestination, g.Stage)
		assert.Len(t, g.Players, 2)
		assert.Len(t, backend.actions[g.ID][0], 1)
		assert.Len(t, backend.actions[g.ID][1], 1)
	}
}

func TestProcessFiles_BadFileIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.slp")
	require.NoError(t, os.WriteFile(bad, []byte("not a replay"), 0o644))
	paths := []string{bad, filepath.Join(dir, "missing.slp"), writeReplay(t, dir, "good.slp")}

	backend := newMockBackend()
	m, d := newTestManager(t, backend)

	require.NoError(t, m.ProcessFiles(context.Background(), paths, d))
	d.Close()

	assert.Equal(t, Stats{Decoded: 1, Stored: 1, Failed: 2}, m.Stats())
	require.Len(t, backend.games, 1)
	assert.Equal(t, paths[2], backend.games[0].Source)
}

func TestProcessFiles_StoreFailure(t *testing.T) {
	backend := newMockBackend()
	backend.startErr = errors.New("db down")
	m, d := newTestManager(t, backend)

	require.NoError(t, m.ProcessFiles(context.Background(), []string{writeReplay(t, t.TempDir(), "a.slp")}, d))
	d.Close()

	assert.Equal(t, Stats{Decoded: 1, Failed: 1}, m.Stats())
}

func TestProcessFiles_Canceled(t *testing.T) {
	m, d := newTestManager(t, newMockBackend())
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.ProcessFiles(ctx, []string{writeReplay(t, t.TempDir(), "a.slp")}, d)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandleGame_BadPayload(t *testing.T) {
	m, d := newTestManager(t, newMockBackend())
	defer d.Close()

	_, err := m.handleGame(dispatcher.Event{Command: CommandGame, Payload: "nope"})
	assert.Error(t, err)
}

func TestProgress(t *testing.T) {
	m, d := newTestManager(t, newMockBackend())
	defer d.Close()

	attrs := m.Progress()
	require.Len(t, attrs, 4)
	assert.Equal(t, "decoded", attrs[0].Key)
	assert.Equal(t, "lastWrite", attrs[3].Key)
	assert.Equal(t, 3*time.Millisecond, m.LastWriteDuration())
}

func TestSlotsOf(t *testing.T) {
	got := slotsOf(map[core.Slot][]core.Action{4: nil, 0: nil, 1: nil})
	assert.Equal(t, []core.Slot{0, 1, 4}, got)
}
