package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	var m tea.Model = NewSessionModel(nil, cfg, nil)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).view != viewRuns {
		t.Fatal("tab should open the runs table")
	}
	if cmd != nil {
		t.Error("opening the runs table must not end the session")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).view != viewMenu {
		t.Fatal("esc should return to the menu")
	}

	m, cmd = m.Update(runeKey('q'))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
