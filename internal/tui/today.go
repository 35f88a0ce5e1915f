package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/yoonpro/trio/internal/settings"
	"github.com/yoonpro/trio/internal/store"
	"github.com/yoonpro/trio/internal/task"
)

// The estimate options offered in the form. Not a hard domain rule, just the
// choices the original app presents.
var estimateOptions = []int{3, 5, 10, 15, 25, 45, 60}

type todayModel struct {
	list   *task.List
	prefs  *settings.Manager
	width  int
	height int

	cursor     int
	formActive bool
	form       *huh.Form
	editingID  string // empty while adding

	// Form values as pointers (survive value copies)
	formTitle   *string
	formMinutes *string
	formMemo    *string
}

func newTodayModel(l *task.List, prefs *settings.Manager) todayModel {
	title, minutes, memo := "", "", ""
	return todayModel{
		list:        l,
		prefs:       prefs,
		formTitle:   &title,
		formMinutes: &minutes,
		formMemo:    &memo,
	}
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	tasks := m.list.Tasks()

	switch msg := msg.(type) {
	case taskChangedMsg:
		if m.cursor >= m.list.Len() {
			m.cursor = max(0, m.list.Len()-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			if !m.list.CanAddMore() {
				return m, status("Three is plenty for one day")
			}
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if m.cursor >= len(tasks) {
				return m, nil
			}
			t := tasks[m.cursor]
			if t.IsCompleted {
				return m, status("Completed tasks can't be edited")
			}
			return m.showForm(&t)
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(tasks) {
				m.list.Delete(tasks[m.cursor].ID)
				return m, notifyChanged()
			}
		case key.Matches(msg, keys.Toggle):
			if m.cursor < len(tasks) {
				t := tasks[m.cursor]
				m.list.Toggle(t.ID)
				var cmd tea.Cmd
				if !t.IsCompleted && m.prefs.EncouragementEnabled() {
					cmd = status(task.CompletionMessage())
				}
				return m, tea.Batch(notifyChanged(), cmd)
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(tasks) && !tasks[m.cursor].IsCompleted {
				t := tasks[m.cursor]
				return m, func() tea.Msg { return startFocusMsg{task: t} }
			}
		}
	}
	return m, nil
}

func (m todayModel) showForm(editing *store.Task) (todayModel, tea.Cmd) {
	if editing != nil {
		m.editingID = editing.ID
		*m.formTitle = editing.Title
		*m.formMinutes = strconv.Itoa(editing.EstimatedMinutes)
		*m.formMemo = editing.Memo
	} else {
		m.editingID = ""
		*m.formTitle = ""
		*m.formMinutes = strconv.Itoa(estimateOptions[0])
		*m.formMemo = ""
	}

	var minuteOpts []huh.Option[string]
	for _, n := range estimateOptions {
		minuteOpts = append(minuteOpts, huh.NewOption(fmt.Sprintf("%d min", n), strconv.Itoa(n)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What will you do?").Value(m.formTitle),
			huh.NewSelect[string]().Title("How long?").Options(minuteOpts...).Value(m.formMinutes),
			huh.NewInput().Title("Memo (optional)").Value(m.formMemo),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
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
		minutes, _ := strconv.Atoi(*m.formMinutes)
		if m.editingID != "" {
			m.list.Update(m.editingID, *m.formTitle, minutes, *m.formMemo)
		} else {
			m.list.Add(*m.formTitle, minutes, *m.formMemo)
		}
		return m, notifyChanged()
	}

	return m, cmd
}

func (m todayModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Plan a task")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	icon, greeting, subtitle := m.list.Greeting(m.prefs.UserName())
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%s %s", icon, greeting)),
		mutedStyle.Render(subtitle),
	)

	tasks := m.list.Tasks()

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, mutedStyle.Render(
		fmt.Sprintf("%d of %d tasks · %d%% done", len(tasks), task.MaxTasks, m.list.CompletionRate()),
	))
	rows = append(rows, "")

	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing planned yet. Press n to add a task."))
	}

	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedItemStyle.Render("> ")
		}

		check := mutedStyle.Render("○")
		line := normalItemStyle.Render(t.Title)
		meta := mutedStyle.Render(fmt.Sprintf("  est %s", formatMinutes(t.EstimatedMinutes)))
		if t.IsCompleted {
			check = successStyle.Render("●")
			line = doneItemStyle.Render(t.Title)
			if t.ActualMinutes != nil {
				meta = mutedStyle.Render(fmt.Sprintf("  took %s", formatMinutes(*t.ActualMinutes)))
			}
		}
		rows = append(rows, fmt.Sprintf("%s%s %s%s", cursor, check, line, meta))
		if t.Memo != "" {
			rows = append(rows, mutedStyle.Render("      "+t.Memo))
		}
	}

	rows = append(rows, "")
	rows = append(rows, m.renderProgress(w))

	if m.prefs.EncouragementEnabled() {
		rows = append(rows, "")
		rows = append(rows, accentStyle.Render(m.list.Encouragement()))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  e: edit  t: toggle  d: delete  enter: focus"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m todayModel) renderProgress(w int) string {
	barWidth := w - 12
	if barWidth < 10 {
		barWidth = 10
	}
	rate := m.list.CompletionRate()
	filled := barWidth * rate / 100
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, rate)
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func notifyChanged() tea.Cmd {
	return func() tea.Msg { return taskChangedMsg{} }
}
