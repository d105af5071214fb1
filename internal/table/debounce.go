package table

import (
	"sync"
	"time"

	"github.com/atinyakov/go-webpages/internal/timer"
)

// Debouncer delivers only the last value triggered within a quiet window.
// Every Trigger cancels the pending delivery and schedules a new one.
type Debouncer struct {
	mu      sync.Mutex
	clock   timer.Clock
	wait    time.Duration
	fn      func(string)
	pending timer.Timer
	value   string
	gen     uint64
}

// NewDebouncer calls fn with the last triggered value once wait has passed
// without a new Trigger.
func NewDebouncer(clock timer.Clock, wait time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{clock: clock, wait: wait, fn: fn}
}

// Trigger records v and restarts the quiet window.
func (d *Debouncer) Trigger(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Flush delivers a pending value immediately. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return false
	}
	d.pending.Stop()
	d.pending = nil
	d.gen++
	v := d.value
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Cancel drops a pending value.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A stale callback can still run if Stop lost the race with the timer.
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	v := d.value
	d.mu.Unlock()

	d.fn(v)
}
