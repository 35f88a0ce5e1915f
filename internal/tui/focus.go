package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yoonpro/trio/internal/timer"
)

type focusModel struct {
	session *timer.Session
	width   int
	height  int

	// celebrated guards the one-time completion status line.
	celebrated bool
}

func newFocusModel() focusModel {
	return focusModel{}
}

func (m *focusModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// bind attaches a fresh session. Any previous unfinished session is
// abandoned without writing a record.
func (m *focusModel) bind(s *timer.Session) {
	if m.session != nil && m.session.State() != timer.StateCompleted {
		m.session.Abandon()
	}
	m.session = s
	m.celebrated = false
}

// release abandons the current session, e.g. when the user leaves the view.
func (m *focusModel) release() {
	if m.session != nil && m.session.State() != timer.StateCompleted {
		m.session.Abandon()
	}
	m.session = nil
	m.celebrated = false
}

func (m focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.session.Tick()
		return m.checkDone()

	case tea.FocusMsg:
		// Terminal regained focus: recompute and re-arm the notification.
		m.session.Foreground()
		return m.checkDone()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			m.session.Start()
			return m.checkDone()
		case key.Matches(msg, keys.Pause):
			m.session.Toggle()
		case key.Matches(msg, keys.Complete):
			m.session.Complete()
			return m.checkDone()
		case key.Matches(msg, keys.Reset):
			m.session.Reset()
			m.celebrated = false
		}
	}
	return m, nil
}

// checkDone emits the completion status exactly once per session.
func (m focusModel) checkDone() (focusModel, tea.Cmd) {
	if m.session.State() != timer.StateCompleted || m.celebrated {
		return m, nil
	}
	m.celebrated = true
	t := m.session.Task()
	minutes := m.session.ActualMinutes()
	return m, func() tea.Msg {
		return sessionDoneMsg{task: t, minutes: minutes}
	}
}

func (m focusModel) view() string {
	w := m.width - 4

	if m.session == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("No task in focus. Pick one on the Today view and press enter."),
		)
	}

	t := m.session.Task()
	title := titleStyle.Render(t.Title)

	clock := timerStyle.Width(w - 6).Render(formatClock(m.session.Remaining()))
	var stateLabel, controls string
	switch m.session.State() {
	case timer.StateIdle:
		stateLabel = mutedStyle.Render("Ready")
		controls = mutedStyle.Render("s: start  esc: back")
	case timer.StateRunning:
		clock = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatClock(m.session.Remaining()))
		stateLabel = successStyle.Bold(true).Render("FOCUSED")
		controls = mutedStyle.Render("space: pause  c: complete  r: reset  esc: abandon")
	case timer.StatePaused:
		clock = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatClock(m.session.Remaining()))
		stateLabel = warningStyle.Bold(true).Render("PAUSED")
		controls = mutedStyle.Render("space: resume  c: complete  r: reset  esc: abandon")
	case timer.StateCompleted:
		clock = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Done!")
		stateLabel = successStyle.Bold(true).Render("COMPLETE")
		controls = mutedStyle.Render("esc: back")
	}

	progress := m.renderProgressBar(w - 10)
	encouragement := mutedStyle.Render(m.encouragement())

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		clock,
		stateLabel,
		"",
		progress,
		encouragement,
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}

func (m focusModel) renderProgressBar(width int) string {
	if width < 10 {
		width = 10
	}
	p := m.session.Progress()
	filled := int(p * float64(width))
	bar := successStyle.Render(repeatRune('█', filled)) +
		mutedStyle.Render(repeatRune('░', width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, p*100)
}

func (m focusModel) encouragement() string {
	p := m.session.Progress()
	switch {
	case p < 0.25:
		return "Starting is half the battle!"
	case p < 0.5:
		return "You're doing well!"
	case p < 0.75:
		return "Push just a little more!"
	case p < 1.0:
		return "Almost there!"
	default:
		return "Done!"
	}
}

func repeatRune(r rune, n int) string {
	if n < 0 {
		n = 0
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
