package wizard

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled task once no new task has been
// scheduled for the quiet period
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func(context.Context)
	gen     uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending task with fn and restarts the quiet period.
// A task fired by the timer runs with a background context.
func (d *Debouncer) Schedule(fn func(context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimer()
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		// Superseded after the timer had already fired
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn(context.Background())
}

// Flush runs the pending task now with ctx and reports whether there was one
func (d *Debouncer) Flush(ctx context.Context) bool {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.gen++
	d.stopTimer()
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(ctx)
	return true
}

// Stop drops the pending task without running it
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = nil
	d.gen++
	d.stopTimer()
}

func (d *Debouncer) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
