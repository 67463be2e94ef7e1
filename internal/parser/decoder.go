// Package parser decodes raw replays: the header, the game-start record and
// the interleaved event stream.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/metric"

	"github.com/framelog/slp/pkg/core"
)

// stageWindow bounds the backward scan over stage samples on append.
const stageWindow = 8

// Options tune a decode.
type Options struct {
	// ExpectedFrames presizes the per-slot timelines. Zero disables it.
	ExpectedFrames int
}

// Parser decodes event streams. It is safe for concurrent use; every Decode
// owns its working state.
type Parser struct {
	logger *slog.Logger

	frames    metric.Int64Counter
	rollbacks metric.Int64Counter
	pruned    metric.Int64Counter
}

// NewParser creates a parser. Metrics go to the global OTel meter provider.
func NewParser(logger *slog.Logger) (*Parser, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{logger: logger}
	m := meter()

	var err error
	p.frames, err = m.Int64Counter(
		"parser.frames.committed",
		metric.WithDescription("Frame boundaries committed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}
	p.rollbacks, err = m.Int64Counter(
		"parser.rollbacks",
		metric.WithDescription("Frame boundaries reasserting an earlier frame"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rollback counter: %w", err)
	}
	p.pruned, err = m.Int64Counter(
		"parser.items.pruned",
		metric.WithDescription("Item updates discarded by rollback"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pruned counter: %w", err)
	}
	return p, nil
}

// pending is the latest pre- and post-update seen for one slot. Values
// persist across boundaries so a slot that skips an update reuses them.
type pending struct {
	inputs  core.Inputs
	post    core.Frame
	havePre bool
	hasPost bool
}

// decoder is the working state of one decode pass.
type decoder struct {
	data []byte
	h    *Header

	game    *core.Game
	active  [core.NumSlots]bool
	pending [core.NumSlots]pending

	last       int
	boundaries int
	haveItems  bool

	rollbacks int64
	pruned    int64
}

// Decode decodes the event stream of data, which must have been validated
// by ParseHeader into h. The returned game has no footer info.
func (p *Parser) Decode(data []byte, h *Header, opts Options) (*core.Game, error) {
	d := &decoder{data: data, h: h, game: &core.Game{}, last: -1}
	if err := d.run(opts); err != nil {
		return nil, err
	}

	ctx := context.Background()
	p.frames.Add(ctx, int64(d.boundaries))
	if d.rollbacks > 0 {
		p.rollbacks.Add(ctx, d.rollbacks)
		p.pruned.Add(ctx, d.pruned)
	}
	p.logger.Debug("decoded event stream",
		"frames", d.last+1,
		"boundaries", d.boundaries,
		"rollbacks", d.rollbacks,
		"items", len(d.game.Items.Updates))
	return d.game, nil
}

func (d *decoder) run(opts Options) error {
	pos, end := d.h.EventsOffset, d.h.FooterOffset
	started := false

	for pos < end {
		code := d.data[pos]
		size, ok := d.h.Sizes.Size(code)
		if !ok {
			return core.Invalid(core.LocEventSizes, pos, "no declared size for event %#x", code)
		}
		next := pos + 1 + size
		if next > end {
			return core.Invalid(locationOf(code), pos,
				"event %#x of %d bytes runs past raw region", code, size)
		}
		ev := d.data[pos:next]

		if !started {
			switch code {
			case EventPreUpdate, EventPostUpdate, EventFrameBookend:
				return core.Invalid(locationOf(code), pos, "event %#x before game start", code)
			}
		}

		var err error
		switch code {
		case EventGameStart:
			if started {
				return core.Invalid(core.LocGameStart, pos, "duplicate game start")
			}
			err = d.gameStart(ev, pos, opts)
			started = true
		case EventPreUpdate:
			err = d.preUpdate(ev, pos)
		case EventPostUpdate:
			err = d.postUpdate(ev, pos)
		case EventFrameBookend:
			err = d.boundary(ev, pos)
		case EventItemUpdate:
			err = d.item(ev, pos)
		case EventFountainPlatform:
			err = d.platform(ev, pos)
		case EventStadiumTransition:
			err = d.transformation(ev, pos)
		case EventGameEnd:
			return d.finish(started)
		}
		if err != nil {
			return err
		}
		pos = next
	}
	return d.finish(started)
}

func (d *decoder) finish(started bool) error {
	if !started {
		return core.Invalid(core.LocGameStart, d.h.EventsOffset, "no game start record")
	}
	for slot, on := range d.active {
		if on {
			d.game.Frames[slot] = d.game.Frames[slot][:d.last+1]
		}
	}
	return nil
}

func locationOf(code byte) core.Location {
	switch code {
	case EventGameStart:
		return core.LocGameStart
	case EventPreUpdate:
		return core.LocPreUpdate
	case EventPostUpdate:
		return core.LocPostUpdate
	case EventFrameBookend:
		return core.LocFrameBoundary
	case EventItemUpdate:
		return core.LocItemUpdate
	case EventFountainPlatform, EventStadiumTransition, EventWhispy:
		return core.LocStageAux
	}
	return core.LocEventStream
}

func (d *decoder) gameStart(ev []byte, pos int, opts Options) error {
	gs, err := ParseGameStart(ev, pos)
	if err != nil {
		return err
	}
	d.game.Start = *gs
	for _, slot := range gs.ActiveSlots() {
		d.active[slot] = true
		if opts.ExpectedFrames > 0 {
			d.game.Frames[slot] = make([]core.Frame, 0, opts.ExpectedFrames)
		}
	}
	return nil
}

func (d *decoder) preUpdate(ev []byte, pos int) error {
	slot, in, err := parsePre(ev, pos)
	if err != nil {
		return err
	}
	if !d.active[slot] {
		return core.Invalid(core.LocPreUpdate, pos, "update for inactive slot %s", slot)
	}
	d.pending[slot].inputs = in
	d.pending[slot].havePre = true
	return nil
}

func (d *decoder) postUpdate(ev []byte, pos int) error {
	slot, f, err := parsePost(ev, pos)
	if err != nil {
		return err
	}
	if !d.active[slot] {
		return core.Invalid(core.LocPostUpdate, pos, "update for inactive slot %s", slot)
	}
	d.pending[slot].post = f
	d.pending[slot].hasPost = true
	return nil
}

// boundary commits the pending updates of every active slot at the frame
// index carried by the bookend and reconciles the item index.
func (d *decoder) boundary(ev []byte, pos int) error {
	idx, err := parseBookend(ev, pos)
	if err != nil {
		return err
	}

	for slot, on := range d.active {
		if !on {
			continue
		}
		pd := &d.pending[slot]
		if !pd.havePre || !pd.hasPost {
			return core.Invalid(core.LocFrameBoundary, pos,
				"frame %d: %s has no complete update", idx, core.Slot(slot))
		}
		f := pd.post
		f.Inputs = pd.inputs
		d.game.Frames[slot] = commit(d.game.Frames[slot], idx, f)
	}

	if err := d.reconcileItems(idx, pos); err != nil {
		return err
	}
	d.last = idx
	d.boundaries++
	return nil
}

// commit writes f at idx, growing s as needed. Gap frames are zero.
func commit(s []core.Frame, idx int, f core.Frame) []core.Frame {
	if idx >= len(s) {
		n := len(s)
		s = slices.Grow(s, idx+1-n)[:idx+1]
		clear(s[n:])
	}
	s[idx] = f
	return s
}

// reconcileItems appends the boundary marker for frame idx to the item
// index. A boundary at or before the end of the index is a rollback: the
// items of the discarded frames are spliced out of the log and the index is
// truncated to idx before the marker is appended.
func (d *decoder) reconcileItems(idx, pos int) error {
	items := &d.game.Items
	if !d.haveItems {
		items.FirstFrame = idx
		d.haveItems = true
	}
	rel := idx - items.FirstFrame
	if rel < 0 {
		return core.Invalid(core.LocFrameBoundary, pos,
			"frame %d precedes first frame %d", idx, items.FirstFrame)
	}

	switch n := len(items.Index); {
	case rel < n:
		start := uint32(0)
		if rel > 0 {
			start = items.Index[rel-1]
		}
		oldEnd := items.Index[n-1]
		items.Updates = slices.Delete(items.Updates, int(start), int(oldEnd))
		items.Index = items.Index[:rel]
		d.rollbacks++
		d.pruned += int64(oldEnd - start)
	case rel > n:
		prev := uint32(0)
		if n > 0 {
			prev = items.Index[n-1]
		}
		for len(items.Index) < rel {
			items.Index = append(items.Index, prev)
		}
	}
	items.Index = append(items.Index, uint32(len(items.Updates)))
	return nil
}

func (d *decoder) item(ev []byte, pos int) error {
	it, err := parseItem(ev, pos)
	if err != nil {
		return err
	}
	d.game.Items.Updates = append(d.game.Items.Updates, it)
	return nil
}

func (d *decoder) stageInfo(kind core.StageKind, pos int) (*core.StageInfo, error) {
	if d.game.Stage == nil {
		d.game.Stage = &core.StageInfo{Kind: kind}
	}
	if d.game.Stage.Kind != kind {
		return nil, core.Invalid(core.LocStageAux, pos, "events from two stage families")
	}
	return d.game.Stage, nil
}

func (d *decoder) platform(ev []byte, pos int) error {
	s, err := parsePlatform(ev, pos)
	if err != nil {
		return err
	}
	info, err := d.stageInfo(core.StageFountain, pos)
	if err != nil {
		return err
	}
	info.Platforms = dropStale(info.Platforms, func(o core.PlatformHeight) bool {
		return o.Platform == s.Platform && o.Frame >= s.Frame
	})
	info.Platforms = append(info.Platforms, s)
	return nil
}

func (d *decoder) transformation(ev []byte, pos int) error {
	s, err := parseTransformation(ev, pos)
	if err != nil {
		return err
	}
	info, err := d.stageInfo(core.StageStadium, pos)
	if err != nil {
		return err
	}
	info.Transformations = dropStale(info.Transformations, func(o core.StadiumTransformation) bool {
		return o.Frame >= s.Frame
	})
	info.Transformations = append(info.Transformations, s)
	return nil
}

// dropStale removes samples matching stale from the last stageWindow
// entries of s.
func dropStale[T any](s []T, stale func(T) bool) []T {
	lo := max(0, len(s)-stageWindow)
	return append(s[:lo], slices.DeleteFunc(s[lo:], stale)...)
}
