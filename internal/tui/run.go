package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redactyl/zerowidth/internal/types"
)

// Run opens the full-screen viewer and blocks until the user quits.
func Run(findings []types.Finding, opts Options) error {
	m := NewModel(findings, opts)
	m.prefs = LoadPrefs()
	m.rebuildTableRows()
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
