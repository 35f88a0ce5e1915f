// Package timer implements the focus-session state machine. Elapsed time is
// always recomputed from wall-clock anchors, never decremented per tick, so a
// session stays correct across process suspension.
package timer

import (
	"math"
	"time"

	"github.com/yoonpro/trio/internal/notify"
	"github.com/yoonpro/trio/internal/store"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// CompleteFunc receives the session's task and the measured focus time in
// minutes. It is called at most once per completed session.
type CompleteFunc func(task store.Task, actualMinutes int)

// Session times focused work against a single task's estimate.
type Session struct {
	task  store.Task
	total time.Duration

	state        State
	sessionStart time.Time
	pausedAt     time.Time
	pauseGap     time.Duration // cumulative paused duration
	finalElapsed time.Duration
	reported     bool

	now        func() time.Time
	notifier   notify.Scheduler
	onComplete CompleteFunc
}

type Option func(*Session)

// WithNow replaces the session's clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(task store.Task, notifier notify.Scheduler, onComplete CompleteFunc, opts ...Option) *Session {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	s := &Session{
		task:       task,
		total:      time.Duration(task.EstimatedMinutes) * time.Minute,
		state:      StateIdle,
		now:        time.Now,
		notifier:   notifier,
		onComplete: onComplete,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State { return s.state }

func (s *Session) Task() store.Task { return s.task }

// Total is the full estimated duration of the session.
func (s *Session) Total() time.Duration { return s.total }

// Start begins timing. Starting a running session is a no-op. A zero
// estimate completes immediately.
func (s *Session) Start() {
	if s.state == StateRunning || s.state == StateCompleted {
		return
	}
	if s.state == StatePaused {
		s.Resume()
		return
	}
	s.sessionStart = s.now()
	s.pauseGap = 0
	s.state = StateRunning
	if s.total <= 0 {
		s.finish()
		return
	}
	s.notifier.ScheduleCompletion(s.task.Title, s.Remaining())
}

// Pause stops the clock. Pausing an idle or already-paused session is a
// no-op.
func (s *Session) Pause() {
	if s.state != StateRunning {
		return
	}
	s.pausedAt = s.now()
	s.state = StatePaused
	s.notifier.CancelPending()
}

// Resume continues a paused session; the pause gap is excluded from elapsed
// time.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.pauseGap += s.now().Sub(s.pausedAt)
	s.pausedAt = time.Time{}
	s.state = StateRunning
	s.notifier.ScheduleCompletion(s.task.Title, s.Remaining())
}

// Toggle pauses a running session and resumes a paused one.
func (s *Session) Toggle() {
	switch s.state {
	case StateRunning:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

// Elapsed is the focused time so far, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	switch s.state {
	case StateRunning:
		return s.now().Sub(s.sessionStart) - s.pauseGap
	case StatePaused:
		return s.pausedAt.Sub(s.sessionStart) - s.pauseGap
	case StateCompleted:
		return s.finalElapsed
	}
	return 0
}

// Remaining is the time left against the estimate, never negative.
func (s *Session) Remaining() time.Duration {
	if s.state == StateIdle {
		return s.total
	}
	r := s.total - s.Elapsed()
	if r < 0 {
		return 0
	}
	return r
}

// Progress is elapsed/total in [0, 1].
func (s *Session) Progress() float64 {
	if s.total <= 0 {
		if s.state == StateCompleted {
			return 1
		}
		return 0
	}
	p := float64(s.Elapsed()) / float64(s.total)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Tick is the periodic observation point. While running it checks the
// freshly recomputed elapsed time against the estimate and completes the
// session when it is reached.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}
	if s.Elapsed() >= s.total {
		s.finish()
	}
}

// Foreground handles the app returning from the background: re-check for
// natural completion (time kept passing while suspended) and re-arm the
// notification with the recomputed remaining time.
func (s *Session) Foreground() {
	if s.state != StateRunning {
		return
	}
	if s.Elapsed() >= s.total {
		s.finish()
		return
	}
	s.notifier.ScheduleCompletion(s.task.Title, s.Remaining())
}

// Complete ends the session on explicit user action, reporting whatever has
// elapsed so far.
func (s *Session) Complete() {
	if s.state != StateRunning && s.state != StatePaused {
		return
	}
	s.finish()
}

// Reset returns the session to idle with the full estimate remaining. Any
// pending notification is cancelled and nothing is reported.
func (s *Session) Reset() {
	s.notifier.CancelPending()
	s.state = StateIdle
	s.sessionStart = time.Time{}
	s.pausedAt = time.Time{}
	s.pauseGap = 0
	s.finalElapsed = 0
	s.reported = false
}

// Abandon discards the session without writing a record, e.g. when the timer
// view is dismissed mid-run.
func (s *Session) Abandon() {
	s.Reset()
}

func (s *Session) finish() {
	s.finalElapsed = func() time.Duration {
		switch s.state {
		case StateRunning:
			return s.now().Sub(s.sessionStart) - s.pauseGap
		case StatePaused:
			return s.pausedAt.Sub(s.sessionStart) - s.pauseGap
		}
		return 0
	}()
	if s.finalElapsed < 0 {
		s.finalElapsed = 0
	}
	s.state = StateCompleted
	s.notifier.CancelPending()

	if s.reported || s.onComplete == nil {
		return
	}
	s.reported = true
	s.onComplete(s.task, actualMinutes(s.finalElapsed))
}

// ActualMinutes is the reported focus time of a completed session, in whole
// minutes rounded up. Zero before completion.
func (s *Session) ActualMinutes() int {
	if s.state != StateCompleted {
		return 0
	}
	return actualMinutes(s.finalElapsed)
}

// actualMinutes rounds elapsed time up to whole minutes.
func actualMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Seconds() / 60))
}
