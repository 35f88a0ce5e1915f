package store

import (
	"time"

	"github.com/google/uuid"
)

// Task is one of the (at most three) things the user decided to do today.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Memo             string     `json:"memo,omitempty"`
	IsCompleted      bool       `json:"isCompleted"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	ActualMinutes    *int       `json:"actualMinutes,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NewTask creates an incomplete task with a fresh id.
func NewTask(title string, estimatedMinutes int, memo string) Task {
	return Task{
		ID:               uuid.NewString(),
		Title:            title,
		EstimatedMinutes: estimatedMinutes,
		Memo:             memo,
		CreatedAt:        time.Now(),
	}
}

// Complete marks the task done at now. actual is the measured focus time in
// minutes; nil when the task was checked off without a timed session.
func (t *Task) Complete(actual *int, now time.Time) {
	t.IsCompleted = true
	t.CompletedAt = &now
	if actual != nil {
		t.ActualMinutes = actual
	}
}

// Uncomplete reverts a completion. CompletedAt and ActualMinutes are cleared
// together; they are only ever set while IsCompleted is true.
func (t *Task) Uncomplete() {
	t.IsCompleted = false
	t.CompletedAt = nil
	t.ActualMinutes = nil
}

// DailyRecord is the aggregated snapshot for one calendar day.
type DailyRecord struct {
	ID                    string    `json:"id"`
	Date                  time.Time `json:"date"`
	TotalTodos            int       `json:"totalTodos"`
	CompletedTodos        int       `json:"completedTodos"`
	TotalEstimatedMinutes int       `json:"totalEstimatedMinutes"`
	TotalActualMinutes    int       `json:"totalActualMinutes"`
	CompletedTodoIDs      []string  `json:"completedTodoIds"`
}

// NewDailyRecord returns an empty record for the given day.
func NewDailyRecord(day time.Time) DailyRecord {
	return DailyRecord{
		ID:   uuid.NewString(),
		Date: StartOfDay(day),
	}
}

// CompletionRate is completed/total as a 0-100 percentage, truncated toward
// zero. Zero when the day has no tasks.
func (d DailyRecord) CompletionRate() int {
	if d.TotalTodos == 0 {
		return 0
	}
	return int(float64(d.CompletedTodos) / float64(d.TotalTodos) * 100)
}

// IsAllCompleted reports whether the day had tasks and finished all of them.
func (d DailyRecord) IsAllCompleted() bool {
	return d.TotalTodos > 0 && d.CompletedTodos == d.TotalTodos
}

// WeeklyStats is the Monday-to-Sunday window containing a given day. Days is
// always exactly 7 records, with empty records synthesized for days absent
// from history.
type WeeklyStats struct {
	StartDate time.Time
	EndDate   time.Time
	Days      []DailyRecord
}

func (w WeeklyStats) CompletedDaysCount() int {
	n := 0
	for _, d := range w.Days {
		if d.IsAllCompleted() {
			n++
		}
	}
	return n
}

func (w WeeklyStats) TotalCompletedTodos() int {
	n := 0
	for _, d := range w.Days {
		n += d.CompletedTodos
	}
	return n
}

// TotalFocusMinutes is the week's sum of measured focus time.
func (w WeeklyStats) TotalFocusMinutes() int {
	n := 0
	for _, d := range w.Days {
		n += d.TotalActualMinutes
	}
	return n
}

// AverageCompletionRate averages the per-day rates over days that had tasks.
func (w WeeklyStats) AverageCompletionRate() int {
	total, days := 0, 0
	for _, d := range w.Days {
		if d.TotalTodos > 0 {
			total += d.CompletionRate()
			days++
		}
	}
	if days == 0 {
		return 0
	}
	return total / days
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday at or before t, at local midnight. Weeks
// start on Monday regardless of locale.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// DayKey formats a day as the ISO date used in storage keys.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
