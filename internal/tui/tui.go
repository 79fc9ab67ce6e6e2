// Package tui is the terminal renderer: a Bubble Tea program over app.App.
package tui

import (
	"strconv"

	"todo-cli/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	// Glyphs is unicode|ascii.
	Glyphs string
	Logger *log.Logger
}

func Run(a *app.App, opts Options) error {
	applyColorProfilePreference()
	applyTheme(a.Theme.Dark())
	m := newAppModel(a, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func itoa(n int) string { return strconv.Itoa(n) }
