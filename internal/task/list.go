// Package task owns the bounded daily task list and its persistence.
package task

import (
	"strings"
	"sync"
	"time"

	"github.com/yoonpro/trio/internal/debounce"
	"github.com/yoonpro/trio/internal/logger"
	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/store"
)

const (
	// MaxTasks bounds the daily list; adding beyond it is silently refused.
	MaxTasks = 3

	saveDelay  = 500 * time.Millisecond
	statsDelay = 300 * time.Millisecond
)

// List is the controller for today's tasks. Mutations coalesce into a single
// debounced write of the final state; Flush forces both pending writes
// through before the process may exit.
type List struct {
	mu    sync.Mutex
	db    *store.Store
	stats *stats.Store
	tasks []store.Task
	now   func() time.Time

	saveDeb  *debounce.Debouncer
	statsDeb *debounce.Debouncer

	// OnChange, when set, is invoked after every successful mutation so the
	// presentation layer can refresh.
	OnChange func()
}

type Option func(*List)

// WithNow replaces the list's clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// New loads today's task list from db. Missing or corrupt stored data yields
// an empty list; construction never fails. Previous days' lists are keyed to
// their own day and are never read, so a new day always starts empty.
func New(db *store.Store, st *stats.Store, opts ...Option) *List {
	l := &List{db: db, stats: st, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	tasks, err := db.LoadTasks(l.now())
	if err != nil {
		logger.Warn("task list unreadable, starting empty", "error", err)
		tasks = nil
	}
	l.tasks = tasks

	l.saveDeb = debounce.New(saveDelay, l.persist)
	l.statsDeb = debounce.New(statsDelay, l.pushStats)
	return l
}

// Tasks returns a copy of the current list.
func (l *List) Tasks() []store.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]store.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task with the given id.
func (l *List) Get(id string) (store.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return store.Task{}, false
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// CanAddMore reports whether the list is below its bound.
func (l *List) CanAddMore() bool {
	return l.RemainingSlots() > 0
}

// RemainingSlots is how many tasks can still be added today.
func (l *List) RemainingSlots() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return MaxTasks - len(l.tasks)
}

func (l *List) CompletedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.completedLocked()
}

// CompletionRate is completed/total as a 0-100 percentage, truncated toward
// zero.
func (l *List) CompletionRate() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return 0
	}
	return int(float64(l.completedLocked()) / float64(len(l.tasks)) * 100)
}

func (l *List) IsAllCompleted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) > 0 && l.completedLocked() == len(l.tasks)
}

// Add appends a new task. Silently refused when the list is full or the
// title is blank; callers are expected to pre-validate via CanAddMore.
func (l *List) Add(title string, estimatedMinutes int, memo string) {
	title = strings.TrimSpace(title)
	l.mu.Lock()
	if len(l.tasks) >= MaxTasks || title == "" {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, store.NewTask(title, estimatedMinutes, memo))
	l.mu.Unlock()
	l.changed()
}

// Toggle flips a task's completion. Completing this way records no measured
// minutes; un-completing clears CompletedAt and ActualMinutes together.
// Unknown ids are ignored.
func (l *List) Toggle(id string) {
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	if l.tasks[idx].IsCompleted {
		l.tasks[idx].Uncomplete()
	} else {
		l.tasks[idx].Complete(nil, l.now())
	}
	l.mu.Unlock()
	l.changed()
}

// CompleteWithDuration marks a task complete with the focus time measured by
// a finished session. Unknown ids are ignored.
func (l *List) CompleteWithDuration(id string, actualMinutes int) {
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	l.tasks[idx].Complete(&actualMinutes, l.now())
	l.mu.Unlock()
	l.changed()
}

// Update overwrites a task's editable fields. Completed tasks are immutable;
// the edit is silently refused.
func (l *List) Update(id, title string, estimatedMinutes int, memo string) {
	title = strings.TrimSpace(title)
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 || l.tasks[idx].IsCompleted || title == "" {
		l.mu.Unlock()
		return
	}
	l.tasks[idx].Title = title
	l.tasks[idx].EstimatedMinutes = estimatedMinutes
	l.tasks[idx].Memo = memo
	l.mu.Unlock()
	l.changed()
}

// Delete removes one task. Unknown ids are ignored.
func (l *List) Delete(id string) {
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks[:idx], l.tasks[idx+1:]...)
	l.mu.Unlock()
	l.changed()
}

// ClearAll removes every task.
func (l *List) ClearAll() {
	l.mu.Lock()
	l.tasks = nil
	l.mu.Unlock()
	l.changed()
}

// Flush runs both pending debounced writes immediately. Call before the
// process exits so no mutation is lost to an unfired debounce.
func (l *List) Flush() {
	l.saveDeb.Flush()
	l.statsDeb.Flush()
}

func (l *List) changed() {
	l.saveDeb.Trigger()
	l.statsDeb.Trigger()
	if l.OnChange != nil {
		l.OnChange()
	}
}

// persist writes the current list under today's key. An empty list drops the
// key instead, so a cleared day leaves nothing behind. Failures are swallowed;
// the in-memory list stays authoritative and the next mutation retries.
func (l *List) persist() {
	l.mu.Lock()
	tasks := make([]store.Task, len(l.tasks))
	copy(tasks, l.tasks)
	day := l.now()
	l.mu.Unlock()

	if len(tasks) == 0 {
		if err := l.db.DeleteTasks(day); err != nil {
			logger.Warn("delete task list", "error", err)
		}
		return
	}
	if err := l.db.SaveTasks(day, tasks); err != nil {
		logger.Warn("persist task list", "error", err)
	}
}

func (l *List) pushStats() {
	if l.stats == nil {
		return
	}
	l.stats.UpdateToday(l.Tasks())
}

func (l *List) indexLocked(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) completedLocked() int {
	n := 0
	for _, t := range l.tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}
