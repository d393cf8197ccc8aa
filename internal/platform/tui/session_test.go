package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	shortCollector(t)
	store := openStore(t)
	cfg := core.RuntimeConfig{ScreenW: 90, ScreenH: 30, TickRate: 60, Seed: 1}
	m := NewSessionModel(store, nil, cfg)

	// Menu to runs board and back.
	m = updateSession(t, m, keyMsg("tab"))
	if m.view != viewRuns {
		t.Fatalf("tab should open the runs board, view = %d", m.view)
	}
	m = updateSession(t, m, keyMsg("esc"))
	if m.view != viewMenu || m.quitting {
		t.Fatalf("esc should return to the menu, view = %d", m.view)
	}

	// Start the first game (collector sorts first) and play it out.
	m = updateSession(t, m, keyMsg("enter"))
	if m.view != viewGame || m.gameModel.game.ID() != "collector" {
		t.Fatalf("enter should start collector, view = %d", m.view)
	}
	if !m.gameModel.embedded {
		t.Error("session games should return to the menu on Back")
	}
	for i := 0; i < 30; i++ {
		m = updateSession(t, m, TickMsg{})
	}
	if m.gameModel.LastRunID() == 0 {
		t.Error("finished run should be journaled")
	}

	m = updateSession(t, m, keyMsg("b"))
	if m.view != viewMenu || m.quitting {
		t.Fatalf("b after game over should return to the menu, view = %d", m.view)
	}

	m = updateSession(t, m, keyMsg("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionResize(t *testing.T) {
	m := NewSessionModel(nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	m = updateSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.config.ScreenW != 100 || m.menu.Config().ScreenH != 40 {
		t.Errorf("resize not applied: session %+v, menu %+v", m.config, m.menu.Config())
	}

	// Without a journal the runs board is unavailable.
	m = updateSession(t, m, keyMsg("tab"))
	if m.view != viewMenu {
		t.Error("tab without a store should stay on the menu")
	}
}
