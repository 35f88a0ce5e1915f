package tui

import (
	"fmt"
	"time"

	"github.com/yoonpro/trio/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewFocus
	viewStats
	viewSettings
)

var viewNames = []string{"Today", "Focus", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// startFocusMsg asks the app to open the focus view for one task.
type startFocusMsg struct {
	task store.Task
}

// taskChangedMsg signals that the task list mutated and views should
// re-read it.
type taskChangedMsg struct{}

// sessionDoneMsg is emitted after a focus session completed and the task
// was recorded.
type sessionDoneMsg struct {
	task    store.Task
	minutes int
}

// notifyMsg delivers a due completion notification.
type notifyMsg struct {
	title string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a duration as MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(min int) string {
	if min >= 60 {
		return fmt.Sprintf("%dh %dm", min/60, min%60)
	}
	return fmt.Sprintf("%dm", min)
}
