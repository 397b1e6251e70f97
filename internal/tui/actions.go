package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/redactyl/zerowidth/internal/report"
	"github.com/redactyl/zerowidth/internal/strip"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// stripSelected removes every hidden run from the selected finding's file.
func (m Model) stripSelected() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return statusCmd("No finding selected")
	}
	if m.opts.Detector == nil {
		return statusCmd("Strip not available")
	}
	path, abs, det := f.Path, m.resolve(f.Path), m.opts.Detector
	return func() tea.Msg {
		changed, err := strip.Apply(abs, det)
		return strippedMsg{path: path, changed: changed, err: err}
	}
}

func (m *Model) addToBaseline() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return statusCmd("No finding selected")
	}
	if m.opts.BaselinePath == "" {
		return statusCmd("Baseline not available")
	}
	key := report.Key(*f)
	if m.baselined[key] {
		return statusCmd("Already in baseline")
	}

	m.baselined[key] = true
	if err := report.WriteBaseline(m.opts.BaselinePath, report.Baseline{Items: m.baselined}); err != nil {
		delete(m.baselined, key)
		return statusCmd(fmt.Sprintf("Error writing baseline: %v", err))
	}
	m.rebuildTableRows()
	return statusCmd("Added finding to baseline")
}

func (m Model) copyPayload() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return statusCmd("No finding selected")
	}
	if f.Payload == "" {
		return statusCmd("Nothing decoded to copy")
	}
	if err := writeClipboard(f.Payload); err != nil {
		return statusCmd(fmt.Sprintf("Clipboard error: %v", err))
	}
	return statusCmd("Copied payload")
}

func (m Model) copyLocation() tea.Cmd {
	f := m.selectedFinding()
	if f == nil {
		return statusCmd("No finding selected")
	}
	loc := location(*f)
	if err := writeClipboard(loc); err != nil {
		return statusCmd(fmt.Sprintf("Clipboard error: %v", err))
	}
	return statusCmd("Copied: " + loc)
}
