package store

import "fmt"

const profileImageKey = "profile_image"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

type Setting struct {
	Key   string
	Value string
}

// SaveProfileImage stores the user's profile image bytes. nil deletes it.
func (s *Store) SaveProfileImage(data []byte) error {
	if data == nil {
		return s.deleteKV(profileImageKey)
	}
	return s.setKV(profileImageKey, data)
}

// LoadProfileImage returns the stored image bytes, nil when absent.
func (s *Store) LoadProfileImage() ([]byte, error) {
	return s.getKV(profileImageKey)
}
