package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yoonpro/trio/internal/logger"
	"github.com/yoonpro/trio/internal/settings"
	"github.com/yoonpro/trio/internal/stats"
	"github.com/yoonpro/trio/internal/store"
	"github.com/yoonpro/trio/internal/task"
	"github.com/yoonpro/trio/internal/tui"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: *debug, ConfigDir: filepath.Dir(dbPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "error setting up logging: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	st := stats.New(s)
	list := task.New(s, st)
	prefs := settings.NewManager(s)

	app := tui.NewApp(s, list, st, prefs)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	list.Flush()
}
