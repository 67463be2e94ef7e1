package segment

import "github.com/framelog/slp/pkg/core"

// cursor walks one slot's timeline forward. broad caches the category of
// every frame.
type cursor struct {
	frames []core.Frame
	broad  []core.BroadState
	pos    int
}

func (c *cursor) peek() (core.BroadState, bool) {
	if c.pos >= len(c.frames) {
		return core.BroadState{}, false
	}
	return c.broad[c.pos], true
}

func (c *cursor) advance() {
	if c.pos < len(c.frames) {
		c.pos++
	}
}

// skipWhile advances while pred holds, at most limit frames. eof is set when
// the timeline ran out before either the predicate failed or the limit was
// reached.
func (c *cursor) skipWhile(pred func(core.BroadState) bool, limit int) (skipped int, eof bool) {
	for skipped < limit {
		if c.pos >= len(c.frames) {
			return skipped, true
		}
		if !pred(c.broad[c.pos]) {
			return skipped, false
		}
		c.pos++
		skipped++
	}
	return skipped, false
}

// skipAll advances over the whole contiguous run matching pred.
func (c *cursor) skipAll(pred func(core.BroadState) bool) bool {
	_, eof := c.skipWhile(pred, len(c.frames)-c.pos+1)
	return eof
}

func is(b core.Broad) func(core.BroadState) bool {
	return func(s core.BroadState) bool { return s.Broad == b }
}

func same(b core.BroadState) func(core.BroadState) bool {
	return func(s core.BroadState) bool { return s == b }
}
