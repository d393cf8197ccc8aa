package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-tower/internal/games/stack"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// journalRun plays one short collector match into the store.
func journalRun(t *testing.T, store *storage.Store) {
	t.Helper()
	m := newTestModel(t, store)
	for i := 0; i < 30; i++ {
		m = update(t, m, TickMsg{})
	}
	if m.LastRunID() == 0 {
		t.Fatal("no run journaled")
	}
}

func updateRuns(t *testing.T, m RunsModel, msg tea.Msg) RunsModel {
	t.Helper()
	next, _ := m.Update(msg)
	rm, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return rm
}

func TestRunsBoardListsAndVerifies(t *testing.T) {
	shortCollector(t)
	store := openStore(t)
	journalRun(t, store)
	journalRun(t, store)

	m := NewRunsModel(store, 100, 30)
	if m.games[m.gameCursor].ID != "collector" {
		t.Fatalf("first game = %q, expected collector", m.games[m.gameCursor].ID)
	}
	if len(m.runs) != 2 {
		t.Fatalf("loaded %d runs, expected 2", len(m.runs))
	}
	if m.runs[0].ID < m.runs[1].ID {
		t.Error("runs should be listed newest first")
	}

	m = updateRuns(t, m, keyMsg("v"))
	if !strings.Contains(m.status, "verified") {
		t.Errorf("status after verify = %q", m.status)
	}
	if !strings.Contains(m.View(), "RECENT RUNS - Collector") {
		t.Error("view should title the selected game")
	}

	m = updateRuns(t, m, keyMsg("tab"))
	if m.games[m.gameCursor].ID == "collector" || len(m.runs) != 0 || m.status != "" {
		t.Errorf("switching game should load its (empty) runs, got %d runs, status %q", len(m.runs), m.status)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty game should show the empty message")
	}

	m = updateRuns(t, m, keyMsg("esc"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
}

func TestRunsBoardWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, 60, 20)
	if len(m.runs) != 0 {
		t.Error("no store means no runs")
	}
	m = updateRuns(t, m, keyMsg("enter"))
	if m.status != "" {
		t.Errorf("verify with nothing selected should be a no-op, status %q", m.status)
	}
	if out := m.View(); !strings.Contains(out, "No runs recorded yet") {
		t.Errorf("narrow view missing empty message:\n%s", out)
	}
}

func TestFormatRunTime(t *testing.T) {
	tests := []struct {
		run      storage.Run
		expected string
	}{
		{storage.Run{Ticks: 0, TickRate: 60}, "0:00"},
		{storage.Run{Ticks: 3601, TickRate: 60}, "1:00"},
		{storage.Run{Ticks: 5400, TickRate: 60}, "1:30"},
		{storage.Run{Ticks: 10, TickRate: 0}, "-"},
	}
	for _, tc := range tests {
		if got := formatRunTime(tc.run); got != tc.expected {
			t.Errorf("formatRunTime(%d@%d) = %q, expected %q", tc.run.Ticks, tc.run.TickRate, got, tc.expected)
		}
	}
}
