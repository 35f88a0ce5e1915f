package store

import (
	"testing"
	"time"
)

// ============================================================
// Task
// ============================================================

func TestNewTask(t *testing.T) {
	task := NewTask("Read chapter", 25, "ch. 4")
	if task.ID == "" {
		t.Fatal("expected a generated id")
	}
	if task.IsCompleted {
		t.Fatal("new task should not be completed")
	}
	if task.CompletedAt != nil || task.ActualMinutes != nil {
		t.Fatal("new task should have no completion data")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestTaskCompleteWithDuration(t *testing.T) {
	task := NewTask("Write", 30, "")
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	actual := 28
	task.Complete(&actual, now)

	if !task.IsCompleted {
		t.Fatal("should be completed")
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("wrong CompletedAt: %v", task.CompletedAt)
	}
	if task.ActualMinutes == nil || *task.ActualMinutes != 28 {
		t.Fatalf("wrong ActualMinutes: %v", task.ActualMinutes)
	}
}

func TestTaskCompleteManual(t *testing.T) {
	task := NewTask("Write", 30, "")
	task.Complete(nil, time.Now())

	if !task.IsCompleted {
		t.Fatal("should be completed")
	}
	if task.ActualMinutes != nil {
		t.Fatal("manual completion should leave ActualMinutes nil")
	}
}

func TestTaskUncomplete(t *testing.T) {
	task := NewTask("Write", 30, "")
	actual := 28
	task.Complete(&actual, time.Now())
	task.Uncomplete()

	if task.IsCompleted {
		t.Fatal("should not be completed")
	}
	if task.CompletedAt != nil {
		t.Fatal("CompletedAt should be cleared")
	}
	if task.ActualMinutes != nil {
		t.Fatal("ActualMinutes should be cleared")
	}
}

// ============================================================
// DailyRecord
// ============================================================

func TestCompletionRateTruncates(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 66},
		{3, 3, 100},
		{1, 2, 50},
	}
	for _, c := range cases {
		d := DailyRecord{TotalTodos: c.total, CompletedTodos: c.completed}
		if got := d.CompletionRate(); got != c.want {
			t.Errorf("rate(%d/%d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestIsAllCompleted(t *testing.T) {
	if (DailyRecord{TotalTodos: 0, CompletedTodos: 0}).IsAllCompleted() {
		t.Fatal("empty day is not a perfect day")
	}
	if (DailyRecord{TotalTodos: 3, CompletedTodos: 2}).IsAllCompleted() {
		t.Fatal("partial day is not a perfect day")
	}
	if !(DailyRecord{TotalTodos: 2, CompletedTodos: 2}).IsAllCompleted() {
		t.Fatal("fully completed day should count")
	}
}

// ============================================================
// WeeklyStats
// ============================================================

func TestWeeklyStatsAggregates(t *testing.T) {
	w := WeeklyStats{Days: []DailyRecord{
		{TotalTodos: 3, CompletedTodos: 3, TotalActualMinutes: 60},
		{TotalTodos: 2, CompletedTodos: 1, TotalActualMinutes: 25},
		{}, // empty day
	}}

	if got := w.CompletedDaysCount(); got != 1 {
		t.Fatalf("CompletedDaysCount = %d, want 1", got)
	}
	if got := w.TotalCompletedTodos(); got != 4 {
		t.Fatalf("TotalCompletedTodos = %d, want 4", got)
	}
	if got := w.TotalFocusMinutes(); got != 85 {
		t.Fatalf("TotalFocusMinutes = %d, want 85", got)
	}
	// (100 + 50) / 2 over the two days that had tasks
	if got := w.AverageCompletionRate(); got != 75 {
		t.Fatalf("AverageCompletionRate = %d, want 75", got)
	}
}

func TestAverageCompletionRateEmptyWeek(t *testing.T) {
	w := WeeklyStats{Days: make([]DailyRecord, 7)}
	if got := w.AverageCompletionRate(); got != 0 {
		t.Fatalf("expected 0 for empty week, got %d", got)
	}
}

// ============================================================
// Date helpers
// ============================================================

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 18, 42, 7, 123, time.Local)
	got := StartOfDay(ts)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}
}

func TestStartOfWeekMonday(t *testing.T) {
	// 2026-03-11 is a Wednesday; its week starts Monday 2026-03-09.
	wed := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)
	got := StartOfWeek(wed)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("StartOfWeek(wed) = %v, want %v", got, want)
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	got := StartOfWeek(sun)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("StartOfWeek(sun) = %v, want %v", got, want)
	}
}

func TestStartOfWeekOnMonday(t *testing.T) {
	mon := time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	got := StartOfWeek(mon)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("StartOfWeek(mon) = %v, want %v", got, want)
	}
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	if got := DayKey(ts); got != "2026-03-09" {
		t.Fatalf("DayKey = %q", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 0, 1, 0, time.Local)
	b := time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)
	c := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatal("same calendar day should match")
	}
	if SameDay(b, c) {
		t.Fatal("adjacent days should not match")
	}
}
