package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/yoonpro/trio/internal/settings"
	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/task"
)

var profileIcons = []string{"●", "◆", "★", "♥", "☾"}

type settingsViewModel struct {
	prefs  *settings.Manager
	stats  *stats.Store
	list   *task.List
	width  int
	height int

	formActive     bool
	form           *huh.Form
	confirmingWipe bool

	// Form values as pointers (survive value copies)
	userName      *string
	profileIcon   *string
	notifications *bool
	encouragement *bool
	sound         *bool
	darkMode      *bool
}

func newSettingsViewModel(prefs *settings.Manager, st *stats.Store, l *task.List) settingsViewModel {
	name, icon := "", ""
	n, e, s, d := false, false, false, false
	return settingsViewModel{
		prefs:         prefs,
		stats:         st,
		list:          l,
		userName:      &name,
		profileIcon:   &icon,
		notifications: &n,
		encouragement: &e,
		sound:         &s,
		darkMode:      &d,
	}
}

func (m *settingsViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsViewModel) update(msg tea.Msg) (settingsViewModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if m.confirmingWipe {
		if msg, ok := msg.(tea.KeyMsg); ok {
			if msg.String() == "y" {
				m.confirmingWipe = false
				m.list.ClearAll()
				m.stats.ClearAll()
				return m, tea.Batch(notifyChanged(), status("All data cleared"))
			}
			m.confirmingWipe = false
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			m.confirmingWipe = true
			return m, nil
		}
	}
	return m, nil
}

func (m settingsViewModel) showForm() (settingsViewModel, tea.Cmd) {
	*m.userName = m.prefs.UserName()
	*m.profileIcon = m.prefs.ProfileIcon()
	*m.notifications = m.prefs.NotificationsEnabled()
	*m.encouragement = m.prefs.EncouragementEnabled()
	*m.sound = m.prefs.SoundEnabled()
	*m.darkMode = m.prefs.DarkModeEnabled()

	var iconOpts []huh.Option[string]
	for _, icon := range profileIcons {
		iconOpts = append(iconOpts, huh.NewOption(icon, icon))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(m.userName),
			huh.NewSelect[string]().Title("Profile icon").Options(iconOpts...).Value(m.profileIcon),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewConfirm().Title("Timer notifications").Value(m.notifications),
			huh.NewConfirm().Title("Encouragement messages").Value(m.encouragement),
			huh.NewConfirm().Title("Sound").Value(m.sound),
			huh.NewConfirm().Title("Dark mode").Value(m.darkMode),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsViewModel) updateForm(msg tea.Msg) (settingsViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.prefs.SetUserName(*m.userName)
		m.prefs.SetProfileIcon(*m.profileIcon)
		m.prefs.SetNotificationsEnabled(*m.notifications)
		m.prefs.SetEncouragementEnabled(*m.encouragement)
		m.prefs.SetSoundEnabled(*m.sound)
		m.prefs.SetDarkModeEnabled(*m.darkMode)
		return m, status("Settings saved")
	}

	return m, cmd
}

func (m settingsViewModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Settings")

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.confirmingWipe {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				title, "",
				errorStyle.Render("Delete today's tasks and all statistics?"),
				"",
				mutedStyle.Render("y: yes, wipe everything  any other key: cancel"),
			),
		)
	}

	onOff := func(v bool) string {
		if v {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", m.prefs.ProfileIcon(), highlightStyle.Render(m.prefs.UserName())),
		"",
		fmt.Sprintf("  %-26s %s", "Timer notifications", onOff(m.prefs.NotificationsEnabled())),
		fmt.Sprintf("  %-26s %s", "Encouragement messages", onOff(m.prefs.EncouragementEnabled())),
		fmt.Sprintf("  %-26s %s", "Sound", onOff(m.prefs.SoundEnabled())),
		fmt.Sprintf("  %-26s %s", "Dark mode", onOff(m.prefs.DarkModeEnabled())),
		"",
		mutedStyle.Render("enter: edit  d: wipe all data"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
