package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/yoonpro/trio/internal/store"
)

// TasksToCSV writes today's tasks to path, one row per task.
func TasksToCSV(path string, tasks []store.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Title", "Estimated (min)", "Actual (min)", "Status", "Memo"}); err != nil {
		return err
	}

	for _, t := range tasks {
		actual := ""
		if t.ActualMinutes != nil {
			actual = fmt.Sprintf("%d", *t.ActualMinutes)
		}
		status := "open"
		if t.IsCompleted {
			status = "done"
		}
		row := []string{
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
			t.Title,
			fmt.Sprintf("%d", t.EstimatedMinutes),
			actual,
			status,
			t.Memo,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// StatsToCSV writes the daily-record history to path, oldest day first.
func StatsToCSV(path string, records []store.DailyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Total", "Completed", "Estimated (min)", "Actual (min)", "Rate (%)"}); err != nil {
		return err
	}

	sorted := make([]store.DailyRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for _, r := range sorted {
		row := []string{
			store.DayKey(r.Date),
			fmt.Sprintf("%d", r.TotalTodos),
			fmt.Sprintf("%d", r.CompletedTodos),
			fmt.Sprintf("%d", r.TotalEstimatedMinutes),
			fmt.Sprintf("%d", r.TotalActualMinutes),
			fmt.Sprintf("%d", r.CompletionRate()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// timestamp is the filename-friendly export stamp.
func timestamp(t time.Time) string {
	return t.Format("2006-01-02_150405")
}

// DefaultPath builds an export filename like trio_stats_2025-01-15_093045.csv
// in dir.
func DefaultPath(dir, kind, ext string) string {
	return fmt.Sprintf("%s/trio_%s_%s.%s", dir, kind, timestamp(time.Now()), ext)
}
