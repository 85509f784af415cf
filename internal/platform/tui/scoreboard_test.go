package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardRecentRuns(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{3, 9} {
		if _, err := store.SaveRun(storage.Run{GameID: "stub", Score: score, Frames: 60, Duration: time.Second}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	next, _ := m.Update(runeKey('r'))
	m = next.(ScoreboardModel)

	if len(m.runs) != 2 {
		t.Fatalf("recent view loaded %d runs, expected 2", len(m.runs))
	}
	if len(m.table.Rows()) != 2 {
		t.Errorf("table has %d rows, expected 2", len(m.table.Rows()))
	}
	if view := m.View(); !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "stub") {
		t.Errorf("recent view should list the stub runs:\n%s", view)
	}

	next, _ = m.Update(runeKey('r'))
	m = next.(ScoreboardModel)
	if m.view != viewBest {
		t.Error("r should toggle back to the best runs")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("an empty table should say so")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
