package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Task lists are stored one JSON document per calendar day, keyed todos_<ISO
// date>. Only today's key is ever read back; yesterday's list is simply never
// loaded again, which is how the day boundary discards it.

func taskKey(day time.Time) string {
	return "todos_" + DayKey(day)
}

// SaveTasks writes the full task list for the given day, replacing any
// previous list for that day.
func (s *Store) SaveTasks(day time.Time, tasks []Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return s.setKV(taskKey(day), data)
}

// LoadTasks returns the task list stored for the given day. A missing key is
// not an error; it yields an empty list.
func (s *Store) LoadTasks(day time.Time) ([]Task, error) {
	data, err := s.getKV(taskKey(day))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTasks removes the stored list for the given day.
func (s *Store) DeleteTasks(day time.Time) error {
	return s.deleteKV(taskKey(day))
}
