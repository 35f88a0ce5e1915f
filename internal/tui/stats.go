package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/store"
)

type statsViewModel struct {
	stats  *stats.Store
	width  int
	height int

	week   store.WeeklyStats
	streak int
	totals stats.Totals
	recent []store.DailyRecord

	chart barchart.Model
}

func newStatsViewModel(s *stats.Store) statsViewModel {
	return statsViewModel{
		stats: s,
		chart: barchart.New(40, 8),
	}
}

func (m *statsViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	week   store.WeeklyStats
	streak int
	totals stats.Totals
	recent []store.DailyRecord
}

func (m statsViewModel) refresh() tea.Cmd {
	return func() tea.Msg {
		all := m.stats.All()
		if len(all) > 10 {
			all = all[:10]
		}
		return statsDataMsg{
			week:   m.stats.Week(),
			streak: m.stats.StreakDays(),
			totals: m.stats.Totals(),
			recent: all,
		}
	}
}

func (m statsViewModel) update(msg tea.Msg) (statsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.week = msg.week
		m.streak = msg.streak
		m.totals = msg.totals
		m.recent = msg.recent
		m.buildChart()
		return m, nil
	case taskChangedMsg:
		return m, m.refresh()
	}
	return m, nil
}

func (m *statsViewModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if m.height > 28 {
		chartHeight = 12
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range m.week.Days {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if day.IsAllCompleted() {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if day.CompletedTodos == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Date.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  day.Date.Format("Mon"),
				Value: float64(day.CompletedTodos),
				Style: style,
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsViewModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Stats")

	streakLine := mutedStyle.Render("No streak yet. Finish all of today's tasks to start one")
	if m.streak > 0 {
		unit := "days"
		if m.streak == 1 {
			unit = "day"
		}
		streakLine = accentStyle.Render(fmt.Sprintf("🔥 %d %s streak", m.streak, unit))
	}

	totalsLine := mutedStyle.Render(fmt.Sprintf(
		"All time: %d tasks done · %s focused · %d%% completion",
		m.totals.CompletedTodos, formatMinutes(m.totals.FocusMinutes), m.totals.CompletionRate,
	))

	weekLine := mutedStyle.Render(fmt.Sprintf(
		"This week: %d perfect days · %d tasks done · %s focused · avg %d%%",
		m.week.CompletedDaysCount(), m.week.TotalCompletedTodos(),
		formatMinutes(m.week.TotalFocusMinutes()), m.week.AverageCompletionRate(),
	))

	chartView := m.chart.View()

	table := m.renderHistoryTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", streakLine, totalsLine, "", chartView, weekLine, "", table,
		),
	)
}

func (m statsViewModel) renderHistoryTable(w int) string {
	if len(m.recent) == 0 {
		return mutedStyle.Render("  No history yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %6s %6s %10s %7s", "Date", "Tasks", "Done", "Focused", "Rate")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 46))))

	for _, r := range m.recent {
		marker := "  "
		if r.IsAllCompleted() {
			marker = successStyle.Render("● ")
		}
		rows = append(rows, fmt.Sprintf("%s%-12s %6d %6d %10s %6d%%",
			marker, store.DayKey(r.Date), r.TotalTodos, r.CompletedTodos,
			formatMinutes(r.TotalActualMinutes), r.CompletionRate(),
		))
	}

	return strings.Join(rows, "\n")
}
