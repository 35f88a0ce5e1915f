package store

import (
	"encoding/json"
	"fmt"
)

const historyKey = "daily_stats_history"

// SaveHistory writes the full daily-record history as one document.
func (s *Store) SaveHistory(records []DailyRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.setKV(historyKey, data)
}

// LoadHistory returns the stored history. A missing key yields an empty
// history, not an error.
func (s *Store) LoadHistory() ([]DailyRecord, error) {
	data, err := s.getKV(historyKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var records []DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return records, nil
}

// DeleteHistory removes the stored history.
func (s *Store) DeleteHistory() error {
	return s.deleteKV(historyKey)
}
