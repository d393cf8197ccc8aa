// Package stack implements the tower stacking game: a block swings from
// wall to wall while gliding down onto the tower, and whatever part of it
// misses the block below is sliced off.
package stack

import (
	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// Game IDs.
const (
	IDStack       = "stack"
	IDStackCamera = "stack_camera"
)

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	id      string
	title   string
	camera  bool
	runtime core.RuntimeConfig
	cfg     config.StackConfig
	preset  config.DifficultyPreset
	pinned  *config.StackConfig
	session *Session
	paused  bool
	hudRows int
	ticks   int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates the fixed-camera stacking game.
func New() *Game {
	return &Game{id: IDStack, title: "Tower Stack"}
}

// NewCamera creates the variant whose camera follows the tower upward
// and whose narrow blocks swing faster.
func NewCamera() *Game {
	return &Game{id: IDStackCamera, title: "Tower Stack: Skyline", camera: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads config and builds a fresh, idle session sized to the
// screen. The first Drop starts the match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, preset := g.resolveConfig()
	g.cfg, g.preset = cfg, preset

	g.hudRows = core.Max(cfg.Board.HUDRows, 0)
	viewH := core.Max(runtime.ScreenH-g.hudRows, 2)
	g.session = NewSession(ParamsFromConfig(cfg, runtime.ScreenW, viewH), runtime.Seed)
	g.paused = false
	g.ticks = 0
}

// resolveConfig returns the pinned config, or loads one and applies
// the process-wide preset.
func (g *Game) resolveConfig() (config.StackConfig, config.DifficultyPreset) {
	if g.pinned != nil {
		return *g.pinned, g.preset
	}
	load := config.LoadStack
	fallback := config.DefaultStackConfig
	if g.camera {
		load = config.LoadStackCamera
		fallback = config.DefaultStackCameraConfig
	}
	cfg, err := load(configPath)
	if err != nil {
		cfg = fallback()
	}
	if difficultyPreset != "" {
		config.ApplyStackPreset(&cfg, difficultyPreset)
	}
	return cfg, difficultyPreset
}

// JournalConfig returns the preset and config of the last Reset.
func (g *Game) JournalConfig() (string, string, error) {
	data, err := config.Marshal(g.cfg)
	return string(g.preset), data, err
}

// PinConfig fixes the config for every later Reset.
func (g *Game) PinConfig(difficulty, data string) error {
	fallback := config.DefaultStackConfig
	if g.camera {
		fallback = config.DefaultStackCameraConfig
	}
	cfg, err := config.Parse(data, fallback)
	if err != nil {
		return err
	}
	g.pinned = &cfg
	g.preset = config.DifficultyPreset(difficulty)
	return nil
}

// Restart begins a new match at once, with pause cleared. Unlike Reset
// it skips the idle start gate.
func (g *Game) Restart() {
	g.session.ResetMatch()
	g.session.StartMatch()
	g.paused = false
	g.ticks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Ended() {
		g.session.Tick(g.runtime.TickDuration())
		return core.StepResult{State: g.State()}
	}

	if !g.session.Started() {
		if in.Has(core.ActionDrop) {
			g.session.StartMatch()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionDrop) {
		g.session.TriggerDrop()
	}
	g.session.Tick(g.runtime.TickDuration())
	g.ticks++

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Ended(),
		Paused:   g.paused,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Register the games with the registry
func init() {
	registry.Register(IDStack, func() registry.Game {
		return New()
	})
	registry.Register(IDStackCamera, func() registry.Game {
		return NewCamera()
	})
}
