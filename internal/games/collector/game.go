// Package collector implements a falling-pickup catcher: move the paddle
// along the bottom row to catch regular and bonus pickups while dodging
// penalties before the match timer runs out.
package collector

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

// Visual characters for rendering
const (
	RegularChar = '●'
	BonusChar   = '★'
	PenaltyChar = '✖'
	PaddleChar  = '▀'
)

// ID is the registry identifier of the collector.
const ID = "collector"

const hudRows = 1

// Game implements the collector mini-game.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.CollectorConfig
	preset     config.DifficultyPreset
	pinned     *config.CollectorConfig
	difficulty *config.DifficultyManager
	spawner    *Spawner
	paddle     core.Span
	fieldW     float64
	fieldH     float64
	score      int
	hits       [3]int // Catches per Kind
	elapsed    time.Duration
	duration   time.Duration
	tickCount  int
	gameOver   bool
	paused     bool
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

// New creates a new collector game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Collector"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, preset := g.resolveConfig()
	g.cfg, g.preset = cfg, preset
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.fieldW = float64(runtime.ScreenW)
	g.fieldH = float64(core.Max(runtime.ScreenH-hudRows, 2))
	g.paddle = core.NewSpan(g.fieldW/2, cfg.Player.Width)
	g.duration = time.Duration(cfg.Match.DurationSeconds * float64(time.Second))

	g.spawner = NewSpawner(cfg.Pickups, g.fieldW, g.fieldH, rand.New(rand.NewSource(runtime.Seed)))
	g.score = 0
	g.hits = [3]int{}
	g.elapsed = 0
	g.tickCount = 0
	g.gameOver = false
	g.paused = false

	g.spawner.TopUp(0, g.duration)
}

func (g *Game) resolveConfig() (config.CollectorConfig, config.DifficultyPreset) {
	if g.pinned != nil {
		return *g.pinned, g.preset
	}
	cfg, err := config.LoadCollector(configPath)
	if err != nil {
		cfg = config.DefaultCollectorConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCollectorPreset(&cfg, difficultyPreset)
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
	cfg, err := config.Parse(data, config.DefaultCollectorConfig)
	if err != nil {
		return err
	}
	g.pinned = &cfg
	g.preset = config.DifficultyPreset(difficulty)
	return nil
}

// Step advances the game by one tick: move the paddle, let pickups
// fall, score catches, retire what fell off, then top up.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	g.tickCount++

	if in.Has(core.ActionLeft) {
		g.paddle.CenterX -= g.cfg.Player.Step
	}
	if in.Has(core.ActionRight) {
		g.paddle.CenterX += g.cfg.Player.Step
	}
	half := g.paddle.Width / 2
	g.paddle.CenterX = core.ClampF(g.paddle.CenterX, half, g.fieldW-half)

	g.spawner.SetSpeedScale(g.difficulty.Speed(1, g.score, g.tickCount))
	g.spawner.Fall(dt)

	for _, p := range g.spawner.Catch(g.paddle, g.paddleRow()) {
		g.score += g.spawner.Points(p.Kind)
		g.hits[p.Kind]++
	}
	g.spawner.Cull()

	g.elapsed += dt
	g.spawner.TopUp(g.elapsed, g.duration)

	if g.duration > 0 && g.elapsed >= g.duration {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) paddleRow() float64 {
	return g.fieldH - 1
}

// Hits returns how many pickups of kind k were caught.
func (g *Game) Hits(k Kind) int {
	return g.hits[k]
}

// Remaining returns the time left on the match clock.
func (g *Game) Remaining() time.Duration {
	if g.elapsed >= g.duration {
		return 0
	}
	return g.duration - g.elapsed
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.spawner.Arena().Each(func(_ int, p *Pickup) {
		x := core.Cell(p.X)
		y := core.Cell(p.Y) + hudRows
		switch p.Kind {
		case KindBonus:
			dst.SetColor(x, y, BonusChar, core.ColorBrightYellow)
		case KindPenalty:
			dst.SetColor(x, y, PenaltyChar, core.ColorBrightRed)
		default:
			dst.SetColor(x, y, RegularChar, core.ColorBrightGreen)
		}
	})

	row := core.Cell(g.paddleRow()) + hudRows
	for x := core.Cell(g.paddle.Left()); x < core.Cell(g.paddle.Right()); x++ {
		dst.SetColor(x, row, PaddleChar, core.ColorCyan)
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))
	timeText := fmt.Sprintf(" Time: %ds ", int(g.Remaining().Seconds()+0.999))
	dst.DrawText(dst.Width()-len(timeText)-2, 0, timeText)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("TIME UP", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
