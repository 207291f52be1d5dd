// Package debounce coalesces bursts of triggers into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used by the settings store
const DefaultDelay = 200 * time.Millisecond

// Debouncer runs fn once the triggers have been quiet for delay.
// A call already running is never cancelled; a trigger during it schedules another.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool
	running sync.Mutex
}

// New creates a debouncer for fn
func New(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs a scheduled call now and waits for it
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fire()
}

// Stop flushes any scheduled call and ignores later triggers
func (d *Debouncer) Stop() {
	d.Flush()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()

	d.fn()
}
