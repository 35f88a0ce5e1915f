package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yoonpro/trio/internal/store"
)

const appVersion = "1.0.0"

// UserData is the settings snapshot included in a full export.
type UserData struct {
	UserName             string `json:"user_name"`
	ProfileIcon          string `json:"profile_icon"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	EncouragementEnabled bool   `json:"encouragement_enabled"`
	SoundEnabled         bool   `json:"sound_enabled"`
}

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	AppVersion string       `json:"app_version"`
	User       UserData     `json:"user"`
	Todos      []jsonTodo   `json:"todos"`
	Stats      []jsonRecord `json:"stats"`
}

type jsonTodo struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	ActualMinutes    *int   `json:"actual_minutes,omitempty"`
	Memo             string `json:"memo,omitempty"`
	IsCompleted      bool   `json:"is_completed"`
	CreatedAt        string `json:"created_at"`
	CompletedAt      string `json:"completed_at,omitempty"`
}

type jsonRecord struct {
	Date                  string `json:"date"`
	TotalTodos            int    `json:"total_todos"`
	CompletedTodos        int    `json:"completed_todos"`
	TotalEstimatedMinutes int    `json:"total_estimated_minutes"`
	TotalActualMinutes    int    `json:"total_actual_minutes"`
	CompletionRate        int    `json:"completion_rate"`
}

// ToJSON writes a full snapshot (settings, today's tasks, stats history) to
// path. Read-only; nothing in core state is touched.
func ToJSON(path string, user UserData, tasks []store.Task, records []store.DailyRecord) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		AppVersion: appVersion,
		User:       user,
	}

	for _, t := range tasks {
		todo := jsonTodo{
			ID:               t.ID,
			Title:            t.Title,
			EstimatedMinutes: t.EstimatedMinutes,
			ActualMinutes:    t.ActualMinutes,
			Memo:             t.Memo,
			IsCompleted:      t.IsCompleted,
			CreatedAt:        t.CreatedAt.Local().Format(time.RFC3339),
		}
		if t.CompletedAt != nil {
			todo.CompletedAt = t.CompletedAt.Local().Format(time.RFC3339)
		}
		out.Todos = append(out.Todos, todo)
	}

	for _, r := range records {
		out.Stats = append(out.Stats, jsonRecord{
			Date:                  store.DayKey(r.Date),
			TotalTodos:            r.TotalTodos,
			CompletedTodos:        r.CompletedTodos,
			TotalEstimatedMinutes: r.TotalEstimatedMinutes,
			TotalActualMinutes:    r.TotalActualMinutes,
			CompletionRate:        r.CompletionRate(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
