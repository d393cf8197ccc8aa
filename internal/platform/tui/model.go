package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/logging"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/replay"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// Model is the Bubble Tea model for running a game. Every frame fed to
// the game is recorded so a finished run can be journaled and replayed.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	recorder   *replay.Recorder
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	embedded   bool // Inside a menu session; Back returns instead of quitting
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been journaled for current game over
	lastRunID  int64
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		recorder:   replay.NewRecorder(game, cfg),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop. gameState catches up
// on the first tick.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize follows the terminal size. The playfield geometry
// depends on it, so a match in progress starts over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if !m.gameState.GameOver {
		m.startMatch()
	}
	return m, nil
}

// startMatch resets the game and begins a fresh recording.
func (m *Model) startMatch() {
	m.game.Reset(m.config)
	m.recorder.Restart(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
}

// handleTick feeds the pending input to the game. A restart after
// game over swaps in a fresh seed instead of stepping.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch {
	case m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart):
		m.config.Seed = time.Now().UnixNano()
		m.startMatch()
	default:
		if !m.gameState.GameOver {
			m.recorder.Record(m.inputFrame)
		}
		m.gameState = m.game.Step(m.inputFrame).State
		if m.gameState.GameOver && !m.runSaved {
			m.saveRun()
			m.runSaved = true
		}
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

// saveRun journals the finished run. Failures are logged and otherwise
// ignored; the game continues regardless.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	run, err := m.recorder.Run(m.gameState.Score)
	if err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "error", err)
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Debug("run saved", "id", id, "game", run.GameID, "score", run.Score, "ticks", run.Ticks)
}

// saveScreenshot writes the current frame as plain text under
// ~/.tower/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not locate home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".tower", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "file", name)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the journal ID of the most recently saved run, or 0.
func (m Model) LastRunID() int64 {
	return m.lastRunID
}

// Run plays game full-screen until the user quits. Mouse reporting is
// on so a click drops the block.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, store, logger, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
