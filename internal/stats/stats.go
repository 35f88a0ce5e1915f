// Package stats maintains the rolling daily-record history and serves
// derived views (weekly, streak, lifetime totals) with per-day caching.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/yoonpro/trio/internal/logger"
	"github.com/yoonpro/trio/internal/store"
)

// retentionDays is how much history is kept; anything older is pruned on
// every write.
const retentionDays = 90

// Totals are the lifetime aggregates over the retained history.
type Totals struct {
	CompletedTodos int
	FocusMinutes   int
	CompletionRate int // 0-100, truncated toward zero
}

// Store owns the persisted history of DailyRecords. Derived views are cached
// and stay valid only while the wall-clock day has not advanced since they
// were computed; any update invalidates them regardless of day.
type Store struct {
	mu  sync.Mutex
	db  *store.Store
	now func() time.Time

	history []store.DailyRecord

	weeklyCache *cached[store.WeeklyStats]
	streakCache *cached[int]
	totalsCache *cached[Totals]
}

type cached[T any] struct {
	value T
	day   time.Time // the day the cache was computed on
}

type Option func(*Store)

// WithNow replaces the store's clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads any persisted history from db. A missing or unreadable history
// is treated as empty; load never fails.
func New(db *store.Store, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	history, err := db.LoadHistory()
	if err != nil {
		logger.Warn("stats history unreadable, starting fresh", "error", err)
		history = nil
	}
	s.history = history
	return s
}

// UpdateToday recomputes today's record from the live task list, upserts it
// into history, prunes old records, drops all caches, and persists.
func (s *Store) UpdateToday(tasks []store.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := store.StartOfDay(s.now())

	completed := 0
	estimated := 0
	actual := 0
	var completedIDs []string
	for _, t := range tasks {
		estimated += t.EstimatedMinutes
		if t.IsCompleted {
			completed++
			completedIDs = append(completedIDs, t.ID)
			if t.ActualMinutes != nil {
				actual += *t.ActualMinutes
			}
		}
	}

	idx := s.indexOf(today)
	if idx >= 0 {
		rec := &s.history[idx]
		rec.TotalTodos = len(tasks)
		rec.CompletedTodos = completed
		rec.TotalEstimatedMinutes = estimated
		rec.TotalActualMinutes = actual
		rec.CompletedTodoIDs = completedIDs
	} else {
		rec := store.NewDailyRecord(today)
		rec.TotalTodos = len(tasks)
		rec.CompletedTodos = completed
		rec.TotalEstimatedMinutes = estimated
		rec.TotalActualMinutes = actual
		rec.CompletedTodoIDs = completedIDs
		s.history = append(s.history, rec)
	}

	s.prune()
	s.invalidate()

	if err := s.db.SaveHistory(s.history); err != nil {
		// In-memory state stays correct; the next mutation retries.
		logger.Warn("persist stats history", "error", err)
	}
}

// Today returns today's record, or nil when nothing has been recorded yet.
func (s *Store) Today() *store.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(store.StartOfDay(s.now()))
	if idx < 0 {
		return nil
	}
	rec := s.history[idx]
	return &rec
}

// Week returns the Monday-to-Sunday window containing today, always exactly
// 7 records with empty days synthesized.
func (s *Store) Week() store.WeeklyStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.weeklyCache != nil && store.SameDay(s.weeklyCache.day, now) {
		return s.weeklyCache.value
	}

	weekStart := store.StartOfWeek(now)
	days := make([]store.DailyRecord, 0, 7)
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		if idx := s.indexOf(day); idx >= 0 {
			days = append(days, s.history[idx])
		} else {
			days = append(days, store.NewDailyRecord(day))
		}
	}

	week := store.WeeklyStats{
		StartDate: weekStart,
		EndDate:   weekStart.AddDate(0, 0, 6),
		Days:      days,
	}
	s.weeklyCache = &cached[store.WeeklyStats]{value: week, day: now}
	return week
}

// StreakDays counts consecutive fully-completed calendar days ending today.
// Today itself must be fully completed for the streak to be nonzero.
func (s *Store) StreakDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.streakCache != nil && store.SameDay(s.streakCache.day, now) {
		return s.streakCache.value
	}

	full := make([]store.DailyRecord, 0, len(s.history))
	for _, rec := range s.history {
		if rec.IsAllCompleted() {
			full = append(full, rec)
		}
	}
	sort.Slice(full, func(i, j int) bool {
		return full[i].Date.After(full[j].Date)
	})

	streak := 0
	cursor := store.StartOfDay(now)
	for _, rec := range full {
		if !store.SameDay(rec.Date, cursor) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	s.streakCache = &cached[int]{value: streak, day: now}
	return streak
}

// Totals returns lifetime sums across the retained history.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.totalsCache != nil && store.SameDay(s.totalsCache.day, now) {
		return s.totalsCache.value
	}

	completed, minutes, total := 0, 0, 0
	for _, rec := range s.history {
		completed += rec.CompletedTodos
		minutes += rec.TotalActualMinutes
		total += rec.TotalTodos
	}
	rate := 0
	if total > 0 {
		rate = int(float64(completed) / float64(total) * 100)
	}

	t := Totals{CompletedTodos: completed, FocusMinutes: minutes, CompletionRate: rate}
	s.totalsCache = &cached[Totals]{value: t, day: now}
	return t
}

// Range returns the retained records whose day falls in [from, to].
func (s *Store) Range(from, to time.Time) []store.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo := store.StartOfDay(from)
	hi := store.StartOfDay(to)
	var out []store.DailyRecord
	for _, rec := range s.history {
		day := store.StartOfDay(rec.Date)
		if !day.Before(lo) && !day.After(hi) {
			out = append(out, rec)
		}
	}
	return out
}

// All returns the full retained history, most recent day first. Used by the
// export collaborator; the returned slice is a copy.
func (s *Store) All() []store.DailyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.DailyRecord, len(s.history))
	copy(out, s.history)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// ClearAll wipes the history and its persisted copy.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.invalidate()
	if err := s.db.DeleteHistory(); err != nil {
		logger.Warn("delete stats history", "error", err)
	}
}

// indexOf finds the record for the given day, -1 when absent. Caller holds
// the lock.
func (s *Store) indexOf(day time.Time) int {
	for i, rec := range s.history {
		if store.SameDay(rec.Date, day) {
			return i
		}
	}
	return -1
}

func (s *Store) prune() {
	cutoff := store.StartOfDay(s.now().AddDate(0, 0, -retentionDays))
	kept := s.history[:0]
	for _, rec := range s.history {
		if !store.StartOfDay(rec.Date).Before(cutoff) {
			kept = append(kept, rec)
		}
	}
	s.history = kept
}

func (s *Store) invalidate() {
	s.weeklyCache = nil
	s.streakCache = nil
	s.totalsCache = nil
}
