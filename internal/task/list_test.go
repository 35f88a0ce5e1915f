package task

import (
	"testing"
	"time"

	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/store"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func newTestList(t *testing.T) (*List, *store.Store) {
	t.Helper()
	db, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	clock := func() time.Time { return testNow }
	st := stats.New(db, stats.WithNow(clock))
	l := New(db, st, WithNow(clock))
	return l, db
}

// ============================================================
// The three-task bound
// ============================================================

func TestAddUpToThree(t *testing.T) {
	l, _ := newTestList(t)

	l.Add("One", 25, "")
	l.Add("Two", 15, "")
	if !l.CanAddMore() || l.RemainingSlots() != 1 {
		t.Fatalf("expected 1 slot left, got %d", l.RemainingSlots())
	}

	l.Add("Three", 10, "")
	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}
	if l.CanAddMore() {
		t.Fatal("full list should refuse more")
	}
}

func TestAddBeyondThreeRefused(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")
	l.Add("Two", 15, "")
	l.Add("Three", 10, "")
	l.Add("Four", 5, "")

	if l.Len() != 3 {
		t.Fatalf("fourth add should be silently refused, len = %d", l.Len())
	}
}

func TestAddBlankTitleRefused(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("", 25, "")
	l.Add("   ", 25, "")
	if l.Len() != 0 {
		t.Fatal("blank titles should be refused")
	}
}

func TestAddTrimsTitle(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("  Write  ", 25, "")
	tasks := l.Tasks()
	if tasks[0].Title != "Write" {
		t.Fatalf("title not trimmed: %q", tasks[0].Title)
	}
}

func TestDeleteFreesSlot(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")
	l.Add("Two", 15, "")
	l.Add("Three", 10, "")

	id := l.Tasks()[1].ID
	l.Delete(id)

	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}
	if !l.CanAddMore() {
		t.Fatal("deleting should free a slot")
	}
	if _, ok := l.Get(id); ok {
		t.Fatal("deleted task should be gone")
	}
}

// ============================================================
// Completion
// ============================================================

func TestToggleRoundTrip(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")
	id := l.Tasks()[0].ID

	l.Toggle(id)
	got, _ := l.Get(id)
	if !got.IsCompleted {
		t.Fatal("should be completed")
	}
	if got.CompletedAt == nil {
		t.Fatal("CompletedAt should be set")
	}
	if got.ActualMinutes != nil {
		t.Fatal("manual toggle records no measured minutes")
	}

	l.Toggle(id)
	got, _ = l.Get(id)
	if got.IsCompleted || got.CompletedAt != nil || got.ActualMinutes != nil {
		t.Fatal("un-toggling should clear all completion data")
	}
}

func TestCompleteWithDuration(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")
	id := l.Tasks()[0].ID

	l.CompleteWithDuration(id, 23)
	got, _ := l.Get(id)
	if !got.IsCompleted {
		t.Fatal("should be completed")
	}
	if got.ActualMinutes == nil || *got.ActualMinutes != 23 {
		t.Fatalf("ActualMinutes = %v, want 23", got.ActualMinutes)
	}
}

func TestCompletionCounters(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")
	l.Add("Two", 15, "")
	l.Add("Three", 10, "")

	l.Toggle(l.Tasks()[0].ID)
	l.Toggle(l.Tasks()[1].ID)

	if got := l.CompletedCount(); got != 2 {
		t.Fatalf("completed = %d, want 2", got)
	}
	// 2/3 truncates to 66
	if got := l.CompletionRate(); got != 66 {
		t.Fatalf("rate = %d, want 66", got)
	}
	if l.IsAllCompleted() {
		t.Fatal("not all completed yet")
	}

	l.Toggle(l.Tasks()[2].ID)
	if !l.IsAllCompleted() {
		t.Fatal("all three done")
	}
}

func TestCompletionRateEmptyList(t *testing.T) {
	l, _ := newTestList(t)
	if got := l.CompletionRate(); got != 0 {
		t.Fatalf("rate on empty list = %d, want 0", got)
	}
	if l.IsAllCompleted() {
		t.Fatal("empty list is not all-completed")
	}
}

// ============================================================
// Update
// ============================================================

func TestUpdateTask(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("Old", 25, "")
	id := l.Tasks()[0].ID

	l.Update(id, "New", 45, "with memo")
	got, _ := l.Get(id)
	if got.Title != "New" || got.EstimatedMinutes != 45 || got.Memo != "with memo" {
		t.Fatalf("update failed: %+v", got)
	}
}

func TestUpdateCompletedRefused(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("Done", 25, "")
	id := l.Tasks()[0].ID
	l.Toggle(id)

	l.Update(id, "Changed", 10, "")
	got, _ := l.Get(id)
	if got.Title != "Done" {
		t.Fatal("completed tasks are immutable")
	}
}

func TestUpdateBlankTitleRefused(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("Keep", 25, "")
	id := l.Tasks()[0].ID

	l.Update(id, "  ", 10, "")
	got, _ := l.Get(id)
	if got.Title != "Keep" {
		t.Fatal("blank title edit should be refused")
	}
}

// ============================================================
// Unknown ids
// ============================================================

func TestUnknownIDsIgnored(t *testing.T) {
	l, _ := newTestList(t)
	l.Add("One", 25, "")

	l.Toggle("nope")
	l.Delete("nope")
	l.Update("nope", "X", 1, "")
	l.CompleteWithDuration("nope", 5)

	if l.Len() != 1 {
		t.Fatal("unknown ids must not change the list")
	}
	if l.CompletedCount() != 0 {
		t.Fatal("unknown ids must not complete anything")
	}
}

// ============================================================
// Persistence
// ============================================================

func TestFlushPersists(t *testing.T) {
	l, db := newTestList(t)
	l.Add("One", 25, "note")
	l.Toggle(l.Tasks()[0].ID)
	l.Flush()

	stored, err := db.LoadTasks(testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || !stored[0].IsCompleted {
		t.Fatalf("flushed state not on disk: %+v", stored)
	}
}

func TestDebouncedSave(t *testing.T) {
	l, db := newTestList(t)
	l.Add("One", 25, "")
	l.Add("Two", 15, "")

	// Both adds land within one debounce window; after it fires the stored
	// list reflects the final state.
	time.Sleep(800 * time.Millisecond)

	stored, _ := db.LoadTasks(testNow)
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored tasks, got %d", len(stored))
	}
}

func TestNewLoadsExistingDay(t *testing.T) {
	l, db := newTestList(t)
	l.Add("One", 25, "")
	l.Flush()

	clock := func() time.Time { return testNow }
	l2 := New(db, nil, WithNow(clock))
	if l2.Len() != 1 || l2.Tasks()[0].Title != "One" {
		t.Fatal("reload should see the persisted list")
	}
}

func TestNewDayStartsEmpty(t *testing.T) {
	l, db := newTestList(t)
	l.Add("One", 25, "")
	l.Flush()

	tomorrow := func() time.Time { return testNow.AddDate(0, 0, 1) }
	l2 := New(db, nil, WithNow(tomorrow))
	if l2.Len() != 0 {
		t.Fatal("a new day should start with an empty list")
	}
}

func TestFlushPushesStats(t *testing.T) {
	db, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	clock := func() time.Time { return testNow }
	st := stats.New(db, stats.WithNow(clock))
	l := New(db, st, WithNow(clock))

	l.Add("One", 25, "")
	l.CompleteWithDuration(l.Tasks()[0].ID, 20)
	l.Flush()

	rec := st.Today()
	if rec == nil {
		t.Fatal("stats should have today's record after flush")
	}
	if rec.CompletedTodos != 1 || rec.TotalActualMinutes != 20 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestClearAll(t *testing.T) {
	l, db := newTestList(t)
	l.Add("One", 25, "")
	l.Add("Two", 15, "")
	l.Flush()

	l.ClearAll()
	l.Flush()

	if l.Len() != 0 {
		t.Fatal("list should be empty")
	}
	// The day's key is dropped outright, not overwritten with an empty list.
	stored, err := db.LoadTasks(testNow)
	if err != nil {
		t.Fatal(err)
	}
	if stored != nil {
		t.Fatalf("cleared day should have no stored list, got %v", stored)
	}
}

func TestDeleteLastTaskDropsKey(t *testing.T) {
	l, db := newTestList(t)
	l.Add("Only", 25, "")
	l.Flush()

	l.Delete(l.Tasks()[0].ID)
	l.Flush()

	stored, _ := db.LoadTasks(testNow)
	if stored != nil {
		t.Fatal("emptying the list should remove the stored key")
	}
}

// ============================================================
// Change notification
// ============================================================

func TestOnChangeFires(t *testing.T) {
	l, _ := newTestList(t)
	calls := 0
	l.OnChange = func() { calls++ }

	l.Add("One", 25, "")
	l.Toggle(l.Tasks()[0].ID)
	l.Delete(l.Tasks()[0].ID)

	if calls != 3 {
		t.Fatalf("expected 3 change callbacks, got %d", calls)
	}
}

func TestOnChangeNotFiredOnRefusal(t *testing.T) {
	l, _ := newTestList(t)
	calls := 0
	l.OnChange = func() { calls++ }

	l.Add("", 25, "")
	l.Toggle("nope")

	if calls != 0 {
		t.Fatalf("refused mutations must not notify, got %d calls", calls)
	}
}

// ============================================================
// Messages
// ============================================================

func TestGreetingByHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{6, "Good morning, Kim"},
		{13, "Good afternoon, Kim"},
		{19, "Good evening, Kim"},
		{23, "Good night, Kim"},
		{3, "Good night, Kim"},
	}
	for _, c := range cases {
		at := time.Date(2026, 3, 10, c.hour, 0, 0, 0, time.Local)
		db, _ := store.NewMemory()
		l := New(db, nil, WithNow(func() time.Time { return at }))
		_, msg, _ := l.Greeting("Kim")
		db.Close()
		if msg != c.want {
			t.Errorf("hour %d: greeting = %q, want %q", c.hour, msg, c.want)
		}
	}
}

func TestEncouragementTracksProgress(t *testing.T) {
	l, _ := newTestList(t)

	if got := l.Encouragement(); got != "What shall we do today?" {
		t.Fatalf("empty list: %q", got)
	}

	l.Add("One", 25, "")
	if got := l.Encouragement(); got != "Even one is enough" {
		t.Fatalf("nothing done: %q", got)
	}

	l.Add("Two", 15, "")
	l.Add("Three", 10, "")
	for _, task := range l.Tasks() {
		l.Toggle(task.ID)
	}
	if got := l.Encouragement(); got != "Perfect. All three, done!" {
		t.Fatalf("all done: %q", got)
	}
}

func TestCompletionMessageNonEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		if CompletionMessage() == "" {
			t.Fatal("completion message should never be empty")
		}
	}
}
