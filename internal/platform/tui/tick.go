// Package tui runs the tower games in a terminal with Bubble Tea: the
// game loop, key and mouse input, the game picker, the runs board and
// the SSH server that hosts them all per connection. Finished matches
// are journaled so they can be replayed.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// TickMsg advances the simulation by one tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg one tick period after now.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
