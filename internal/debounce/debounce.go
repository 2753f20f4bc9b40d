// Package debounce provides a cancellable delayed task: every Trigger pushes
// the deadline back, and only the last call within the quiet period runs.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer delays execution of the most recently triggered function.
// It is safe for concurrent use.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	gen     uint64
	stopped bool
}

// New returns a Debouncer that waits delay after the last Trigger.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, replacing anything
// scheduled before. The context passed to fn is cancelled as soon as a newer
// Trigger, Cancel or Stop happens, so a slow fn can tell its result is stale.
// Triggers after Stop are ignored.
func (d *Debouncer) Trigger(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.resetLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		d.mu.Unlock()
		if !current {
			return
		}
		fn(ctx)
	})
}

// Cancel drops the pending call, if any. The Debouncer stays usable.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.gen++
}

// Stop drops the pending call and disables the Debouncer for good.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.gen++
	d.stopped = true
}

func (d *Debouncer) resetLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
