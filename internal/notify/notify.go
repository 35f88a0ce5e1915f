// Package notify is the local-notification collaborator used by the focus
// timer. Scheduling is best-effort and fire-and-forget; nothing here ever
// reports an error to the caller.
package notify

import (
	"sync"
	"time"
)

// Scheduler schedules a single pending completion notification. Re-scheduling
// replaces any pending one.
type Scheduler interface {
	// ScheduleCompletion arranges for a notification about title to fire
	// after delay.
	ScheduleCompletion(title string, delay time.Duration)
	// CancelPending drops the pending notification, if any. Safe to call
	// redundantly.
	CancelPending()
}

// Nop discards all scheduling requests.
type Nop struct{}

func (Nop) ScheduleCompletion(string, time.Duration) {}
func (Nop) CancelPending()                           {}

// Timed invokes a callback after the scheduled delay. At most one
// notification is pending at a time.
type Timed struct {
	mu    sync.Mutex
	fire  func(title string)
	timer *time.Timer
}

// NewTimed returns a scheduler that calls fire when a scheduled notification
// comes due.
func NewTimed(fire func(title string)) *Timed {
	return &Timed{fire: fire}
}

func (t *Timed) ScheduleCompletion(title string, delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	if delay < 0 {
		delay = 0
	}
	t.timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		t.fire(title)
	})
}

func (t *Timed) CancelPending() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
