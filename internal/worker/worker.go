// Package worker runs the batch pipeline: replays are decoded and segmented
// concurrently, then handed one game at a time to the storage backend.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/framelog/slp/internal/dispatcher"
	"github.com/framelog/slp/internal/influx"
	"github.com/framelog/slp/internal/replay"
	"github.com/framelog/slp/internal/segment"
	"github.com/framelog/slp/internal/storage"
	"github.com/framelog/slp/pkg/core"
)

// DefaultConcurrency bounds the files decoded at once when none is set.
const DefaultConcurrency = 4

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Loader  *replay.Loader
	Backend storage.Backend
	// Influx is optional.
	Influx *influx.Manager
	Logger *slog.Logger

	Concurrency int
}

// Manager decodes, segments and stores replays.
type Manager struct {
	deps Dependencies

	decoded metric.Int64Counter
	failed  metric.Int64Counter
	stored  metric.Int64Counter

	numDecoded atomic.Int64
	numFailed  atomic.Int64
	numStored  atomic.Int64
}

// Stats counts the outcome of the files seen so far.
type Stats struct {
	Decoded int
	Failed  int
	Stored  int
}

// NewManager creates a new worker manager.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewManager(deps Dependencies) (*Manager, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Concurrency <= 0 {
		deps.Concurrency = DefaultConcurrency
	}
	m := &Manager{deps: deps}

	var err error
	mt := meter()
	m.decoded, err = mt.Int64Counter("worker.files.decoded",
		metric.WithDescription("Replays decoded and segmented"))
	if err != nil {
		return nil, fmt.Errorf("creating decoded counter: %w", err)
	}
	m.failed, err = mt.Int64Counter("worker.files.failed",
		metric.WithDescription("Replays that failed to decode, segment or store"))
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}
	m.stored, err = mt.Int64Counter("worker.games.stored",
		metric.WithDescription("Games written to the storage backend"))
	if err != nil {
		return nil, fmt.Errorf("creating stored counter: %w", err)
	}
	return m, nil
}

// SegmentGame segments every active slot of g concurrently. Timelines are
// read-only and each slot writes only its own result.
func SegmentGame(ctx context.Context, g *core.Game) (map[core.Slot][]core.Action, error) {
	slots := g.Start.ActiveSlots()
	results := make([][]core.Action, len(slots))

	eg, ctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			actions, err := segment.Segment(g.Frames[slot])
			if err != nil {
				return fmt.Errorf("slot %s: %w", slot, err)
			}
			results[i] = actions
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make(map[core.Slot][]core.Action, len(slots))
	for i, slot := range slots {
		out[slot] = results[i]
	}
	return out, nil
}

// Result is one decoded and segmented replay.
type Result struct {
	Summary *core.GameSummary
	Actions map[core.Slot][]core.Action
}

// Analyze decodes and segments the replay at path.
func (m *Manager) Analyze(ctx context.Context, path string) (*Result, error) {
	g, err := m.deps.Loader.Open(path)
	if err != nil {
		return nil, err
	}
	actions, err := SegmentGame(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Result{Summary: core.Summarize(path, g), Actions: actions}, nil
}

// ProcessFiles analyzes paths with bounded concurrency and dispatches each
// result to CommandGame. Per-file failures are logged and counted; only
// cancellation of ctx is returned. The caller closes d to wait for storage.
func (m *Manager) ProcessFiles(ctx context.Context, paths []string, d *dispatcher.Dispatcher) error {
	start := time.Now()
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(m.deps.Concurrency)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			res, err := m.Analyze(gctx, path)
			if err != nil {
				m.fail(gctx, "Failed to analyze replay", path, err)
				return nil
			}
			m.numDecoded.Add(1)
			m.decoded.Add(gctx, 1)

			if _, err := d.Dispatch(dispatcher.Event{Command: CommandGame, Source: path, Payload: res}); err != nil {
				m.fail(gctx, "Failed to queue game", path, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	m.deps.Logger.Info("Batch analyzed", "files", len(paths), "duration", time.Since(start))
	if m.deps.Influx != nil {
		stats := m.Stats()
		if err := m.deps.Influx.RecordBatch(ctx, len(paths), stats.Failed, time.Since(start)); err != nil {
			m.deps.Logger.Warn("Failed to record batch stats", "error", err)
		}
	}
	return ctx.Err()
}

func (m *Manager) fail(ctx context.Context, msg, path string, err error) {
	m.numFailed.Add(1)
	m.failed.Add(ctx, 1)
	m.deps.Logger.Error(msg, "source", path, "error", err)
}

// Stats returns the counts so far.
func (m *Manager) Stats() Stats {
	return Stats{
		Decoded: int(m.numDecoded.Load()),
		Failed:  int(m.numFailed.Load()),
		Stored:  int(m.numStored.Load()),
	}
}

// WriteDurationProvider is an optional interface that backends can implement
// to expose their last write duration for monitoring.
type WriteDurationProvider interface {
	LastWriteDuration() time.Duration
}

// LastWriteDuration returns the duration of the last backend write.
// Returns 0 if the backend doesn't support this metric.
func (m *Manager) LastWriteDuration() time.Duration {
	if p, ok := m.deps.Backend.(WriteDurationProvider); ok {
		return p.LastWriteDuration()
	}
	return 0
}

// Progress is a logging.ContextProvider attaching batch counts to every
// log record.
func (m *Manager) Progress() []slog.Attr {
	s := m.Stats()
	attrs := []slog.Attr{
		slog.Int("decoded", s.Decoded),
		slog.Int("stored", s.Stored),
		slog.Int("failed", s.Failed),
	}
	if d := m.LastWriteDuration(); d > 0 {
		attrs = append(attrs, slog.Duration("lastWrite", d))
	}
	return attrs
}
