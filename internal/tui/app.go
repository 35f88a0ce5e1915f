package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yoonpro/trio/internal/export"
	"github.com/yoonpro/trio/internal/notify"
	"github.com/yoonpro/trio/internal/settings"
	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/store"
	"github.com/yoonpro/trio/internal/task"
	"github.com/yoonpro/trio/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	db    *store.Store
	list  *task.List
	stats *stats.Store
	prefs *settings.Manager

	notifier *notify.Timed
	notifyCh chan string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	today        todayModel
	focus        focusModel
	statsView    statsViewModel
	settingsView settingsViewModel

	help   help.Model
	status string
}

func NewApp(db *store.Store, l *task.List, st *stats.Store, prefs *settings.Manager) App {
	h := help.New()
	h.ShowAll = false

	ch := make(chan string, 1)
	notifier := notify.NewTimed(func(title string) {
		select {
		case ch <- title:
		default:
		}
	})

	return App{
		db:           db,
		list:         l,
		stats:        st,
		prefs:        prefs,
		notifier:     notifier,
		notifyCh:     ch,
		activeView:   viewToday,
		today:        newTodayModel(l, prefs),
		focus:        newFocusModel(),
		statsView:    newStatsViewModel(st),
		settingsView: newSettingsViewModel(prefs, st, l),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.listenNotify(),
		a.statsView.refresh(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) listenNotify() tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{title: <-a.notifyCh}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.statsView.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			// Force both pending debounces through; nothing may be lost to
			// an unfired timer.
			a.focus.release()
			a.list.Flush()
			return a, tea.Quit
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Back):
			if a.activeView == viewFocus {
				a.focus.release()
				a.activeView = viewToday
				return a, nil
			}
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewToday)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			next := (a.activeView + 1) % 4
			return a.switchView(next)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.FocusMsg:
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, cmd

	case startFocusMsg:
		session := timer.NewSession(msg.task, a.sessionNotifier(), func(t store.Task, minutes int) {
			a.list.CompleteWithDuration(t.ID, minutes)
		})
		a.focus.bind(session)
		a.activeView = viewFocus
		return a, nil

	case sessionDoneMsg:
		text := fmt.Sprintf("'%s' done in %s", msg.task.Title, formatMinutes(msg.minutes))
		if a.prefs.EncouragementEnabled() {
			text += "  " + task.CompletionMessage()
		}
		if a.prefs.SoundEnabled() {
			text += " \a"
		}
		a.status = text
		return a, tea.Batch(notifyChanged(), a.statsView.refresh())

	case notifyMsg:
		text := fmt.Sprintf("Time's up for '%s'! 🎉", msg.title)
		if a.prefs.SoundEnabled() {
			text += " \a"
		}
		a.status = text
		return a, a.listenNotify()

	case taskChangedMsg:
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		cmds = append(cmds, cmd)
		a.statsView, cmd = a.statsView.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// sessionNotifier returns the scheduler a new session should use, honoring
// the notifications setting.
func (a App) sessionNotifier() notify.Scheduler {
	if a.prefs.NotificationsEnabled() {
		return a.notifier
	}
	return notify.Nop{}
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	if a.activeView == viewFocus && v != viewFocus {
		a.focus.release()
	}
	a.activeView = v
	switch v {
	case viewStats:
		return a, a.statsView.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewStats:
		a.statsView, cmd = a.statsView.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewSettings:
		return a.settingsView.formActive || a.settingsView.confirmingWipe
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewFocus:
		content = a.focus.view()
	case viewStats:
		content = a.statsView.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("trio")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Session indicator in footer
	sessionInfo := ""
	if s := a.focus.session; s != nil {
		switch s.State() {
		case timer.StateRunning:
			sessionInfo = successStyle.Render(" ● " + formatClock(s.Remaining()))
		case timer.StatePaused:
			sessionInfo = warningStyle.Render(" ⏸ " + formatClock(s.Remaining()))
		}
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"Everything (JSON)", "Today's tasks (CSV)", "Statistics (CSV)"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()

		var path string
		var err error
		switch format {
		case 0:
			user := export.UserData{
				UserName:             a.prefs.UserName(),
				ProfileIcon:          a.prefs.ProfileIcon(),
				NotificationsEnabled: a.prefs.NotificationsEnabled(),
				EncouragementEnabled: a.prefs.EncouragementEnabled(),
				SoundEnabled:         a.prefs.SoundEnabled(),
			}
			path = export.DefaultPath(home, "export", "json")
			err = export.ToJSON(path, user, a.list.Tasks(), a.stats.All())
		case 1:
			path = export.DefaultPath(home, "tasks", "csv")
			err = export.TasksToCSV(path, a.list.Tasks())
		default:
			path = export.DefaultPath(home, "stats", "csv")
			err = export.StatsToCSV(path, a.stats.All())
		}

		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
