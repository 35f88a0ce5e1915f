// Package debounce provides a cancellable delayed action: repeated triggers
// within the delay window coalesce into a single invocation representing the
// latest state.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules fn to run delay after the most recent Trigger. The
// function itself should read current state when it runs, so a superseded
// schedule never loses data: the last trigger (or an explicit Flush) is
// authoritative.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger cancels any pending invocation and schedules a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Flush cancels any pending invocation and runs the action synchronously.
// Safe to call with nothing pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fn()
}

// Cancel drops any pending invocation. Redundant calls are no-ops.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether an invocation is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
