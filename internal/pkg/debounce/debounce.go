package debounce

import (
	"sync"
	"time"

	"nexus-dashboard/internal/pkg/clock"
)

// Debouncer runs at most one pending function per key. A new Trigger for a key cancels the
// pending one and restarts the delay, so only the latest function runs.
type Debouncer struct {
	clock clock.Clock
	delay time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]*entry

	// OnSupersede is called with the key whenever a pending function is replaced.
	OnSupersede func(key string)
}

type entry struct {
	timer clock.Timer
	fn    func()
	seq   uint64
}

func New(c clock.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{
		clock:   c,
		delay:   delay,
		pending: make(map[string]*entry),
	}
}

func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	superseded := false
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		superseded = true
	}
	d.seq++
	seq := d.seq
	e := &entry{fn: fn, seq: seq}
	e.timer = d.clock.AfterFunc(d.delay, func() { d.fire(key, seq) })
	d.pending[key] = e
	hook := d.OnSupersede
	d.mu.Unlock()

	if superseded && hook != nil {
		hook(key)
	}
}

func (d *Debouncer) fire(key string, seq uint64) {
	d.mu.Lock()
	e, ok := d.pending[key]
	if !ok || e.seq != seq {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	e.fn()
}

// Flush runs every pending function now, in no particular order.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.pending))
	for key, e := range d.pending {
		e.timer.Stop()
		fns = append(fns, e.fn)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}
