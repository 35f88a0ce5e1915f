// Package settings is a typed view over the store's settings table.
package settings

import (
	"github.com/yoonpro/trio/internal/logger"
	"github.com/yoonpro/trio/internal/store"
)

// Setting keys as stored.
const (
	KeyNotifications = "notifications_enabled"
	KeyEncouragement = "encouragement_enabled"
	KeySound         = "sound_enabled"
	KeyDarkMode      = "dark_mode_enabled"
	KeyUserName      = "user_name"
	KeyProfileIcon   = "profile_icon"
)

// Manager reads and writes app settings. Writes go straight through; these
// are single scalars and need no debouncing.
type Manager struct {
	db *store.Store
}

func NewManager(db *store.Store) *Manager {
	return &Manager{db: db}
}

func (m *Manager) NotificationsEnabled() bool { return m.boolSetting(KeyNotifications, true) }
func (m *Manager) EncouragementEnabled() bool { return m.boolSetting(KeyEncouragement, true) }
func (m *Manager) SoundEnabled() bool         { return m.boolSetting(KeySound, true) }
func (m *Manager) DarkModeEnabled() bool      { return m.boolSetting(KeyDarkMode, false) }

func (m *Manager) UserName() string    { return m.stringSetting(KeyUserName, "friend") }
func (m *Manager) ProfileIcon() string { return m.stringSetting(KeyProfileIcon, "●") }

func (m *Manager) SetNotificationsEnabled(v bool) { m.setBool(KeyNotifications, v) }
func (m *Manager) SetEncouragementEnabled(v bool) { m.setBool(KeyEncouragement, v) }
func (m *Manager) SetSoundEnabled(v bool)         { m.setBool(KeySound, v) }
func (m *Manager) SetDarkModeEnabled(v bool)      { m.setBool(KeyDarkMode, v) }

func (m *Manager) SetUserName(name string)    { m.setString(KeyUserName, name) }
func (m *Manager) SetProfileIcon(icon string) { m.setString(KeyProfileIcon, icon) }

// ProfileImage returns the stored profile image bytes, nil when none is set.
func (m *Manager) ProfileImage() []byte {
	data, err := m.db.LoadProfileImage()
	if err != nil {
		logger.Warn("load profile image", "error", err)
		return nil
	}
	return data
}

func (m *Manager) SetProfileImage(data []byte) {
	if err := m.db.SaveProfileImage(data); err != nil {
		logger.Warn("save profile image", "error", err)
	}
}

func (m *Manager) boolSetting(key string, fallback bool) bool {
	v, err := m.db.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v == "1"
}

func (m *Manager) stringSetting(key, fallback string) string {
	v, err := m.db.GetSetting(key)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

func (m *Manager) setBool(key string, v bool) {
	s := "0"
	if v {
		s = "1"
	}
	m.setString(key, s)
}

func (m *Manager) setString(key, v string) {
	if err := m.db.SetSetting(key, v); err != nil {
		logger.Warn("save setting", "key", key, "error", err)
	}
}
