// Package replay records the inputs of a run and re-simulates journaled
// runs headlessly. Games are deterministic for a given seed, tick rate,
// screen size and input log, so a replay must reach the same score.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// ErrMismatch is returned when a replay does not reproduce the journaled
// outcome.
var ErrMismatch = errors.New("replay: outcome does not match the journal")

// Recorder captures the input frames fed to a game since its last reset.
type Recorder struct {
	game   registry.Game
	cfg    core.RuntimeConfig
	ticks  int
	events []storage.InputEvent
}

// NewRecorder starts recording a run of game with the given runtime.
func NewRecorder(game registry.Game, cfg core.RuntimeConfig) *Recorder {
	return &Recorder{game: game, cfg: cfg}
}

// Restart discards the recording and starts over with a new runtime.
func (r *Recorder) Restart(cfg core.RuntimeConfig) {
	r.cfg = cfg
	r.ticks = 0
	r.events = nil
}

// Record stores the frame passed to the next Step call.
func (r *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		actions := in.List()
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = a.String()
		}
		r.events = append(r.events, storage.InputEvent{Tick: r.ticks, Actions: names})
	}
	r.ticks++
}

// Ticks returns how many frames have been recorded.
func (r *Recorder) Ticks() int {
	return r.ticks
}

// Run builds the journal entry for the recording with its final score.
// Configurable games also report the preset and config of their last
// Reset.
func (r *Recorder) Run(score int) (storage.Run, error) {
	events := make([]storage.InputEvent, len(r.events))
	copy(events, r.events)
	run := storage.Run{
		GameID:   r.game.ID(),
		Seed:     r.cfg.Seed,
		TickRate: r.cfg.TickRate,
		ScreenW:  r.cfg.ScreenW,
		ScreenH:  r.cfg.ScreenH,
		Score:    score,
		Ticks:    r.ticks,
		Inputs:   events,
	}
	if c, ok := r.game.(registry.Configurable); ok {
		difficulty, cfg, err := c.JournalConfig()
		if err != nil {
			return run, fmt.Errorf("replay: cannot encode %s config: %w", run.GameID, err)
		}
		run.Difficulty, run.Config = difficulty, cfg
	}
	return run, nil
}

// Result is the outcome of a replay.
type Result struct {
	Score    int
	GameOver bool
	Ticks    int
}

// Replay re-simulates a journaled run and returns its outcome. It
// returns ErrMismatch when the final score differs from the journal.
func Replay(run storage.Run) (Result, error) {
	g, err := registry.Create(run.GameID)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	if c, ok := g.(registry.Configurable); ok && run.Config != "" {
		if err := c.PinConfig(run.Difficulty, run.Config); err != nil {
			return Result{}, fmt.Errorf("replay: run %d has a corrupt config: %w", run.ID, err)
		}
	}

	g.Reset(core.RuntimeConfig{
		ScreenW:  run.ScreenW,
		ScreenH:  run.ScreenH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	})

	frames, err := Frames(run)
	if err != nil {
		return Result{}, err
	}

	for _, in := range frames {
		g.Step(in)
	}
	state := g.State()

	res := Result{Score: state.Score, GameOver: state.GameOver, Ticks: run.Ticks}
	if res.Score != run.Score {
		return res, fmt.Errorf("%w: run %d scored %d, replay scored %d", ErrMismatch, run.ID, run.Score, res.Score)
	}
	return res, nil
}

// Frames expands a sparse input log into one frame per tick.
func Frames(run storage.Run) ([]core.InputFrame, error) {
	frames := make([]core.InputFrame, run.Ticks)
	for i := range frames {
		frames[i] = core.NewInputFrame()
	}
	for _, ev := range run.Inputs {
		if ev.Tick < 0 || ev.Tick >= run.Ticks {
			return nil, fmt.Errorf("replay: input at tick %d outside run of %d ticks", ev.Tick, run.Ticks)
		}
		for _, name := range ev.Actions {
			a, ok := core.ParseAction(name)
			if !ok {
				return nil, fmt.Errorf("replay: unknown action %q at tick %d", name, ev.Tick)
			}
			frames[ev.Tick].Set(a)
		}
	}
	return frames, nil
}
