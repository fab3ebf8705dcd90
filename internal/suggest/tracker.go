package suggest

import "sync/atomic"

// Tracker hands out sequence tags for in-flight requests. Only the most
// recently issued tag is current; results carrying any other tag are stale.
type Tracker struct {
	seq atomic.Uint64
}

// Next issues a new tag, making every earlier tag stale.
func (t *Tracker) Next() uint64 {
	return t.seq.Add(1)
}

// Current reports whether tag is the latest one issued.
func (t *Tracker) Current(tag uint64) bool {
	return t.seq.Load() == tag
}

// Invalidate makes every issued tag stale.
func (t *Tracker) Invalidate() {
	t.seq.Add(1)
}
