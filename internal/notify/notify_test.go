package notify

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimedFires(t *testing.T) {
	var fired atomic.Value
	done := make(chan struct{})
	n := NewTimed(func(title string) {
		fired.Store(title)
		close(done)
	})

	n.ScheduleCompletion("Deep work", 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notification never fired")
	}
	if fired.Load() != "Deep work" {
		t.Fatalf("fired with title %v", fired.Load())
	}
}

func TestTimedCancel(t *testing.T) {
	var calls atomic.Int32
	n := NewTimed(func(string) { calls.Add(1) })

	n.ScheduleCompletion("Deep work", 20*time.Millisecond)
	n.CancelPending()

	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("cancelled notification fired %d times", got)
	}
}

func TestTimedRescheduleReplaces(t *testing.T) {
	var calls atomic.Int32
	n := NewTimed(func(string) { calls.Add(1) })

	n.ScheduleCompletion("First", 20*time.Millisecond)
	n.ScheduleCompletion("Second", 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one firing, got %d", got)
	}
}

func TestTimedNegativeDelayFiresImmediately(t *testing.T) {
	done := make(chan struct{})
	n := NewTimed(func(string) { close(done) })

	n.ScheduleCompletion("Overdue", -time.Minute)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("negative delay should fire right away")
	}
}

func TestCancelWithNothingPending(t *testing.T) {
	n := NewTimed(func(string) {})
	n.CancelPending() // must not panic
	n.CancelPending()
}

func TestNopDiscards(t *testing.T) {
	var s Scheduler = Nop{}
	s.ScheduleCompletion("ignored", time.Millisecond)
	s.CancelPending()
}
