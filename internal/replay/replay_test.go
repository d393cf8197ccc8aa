package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/collector"
	"github.com/vovakirdan/tui-tower/internal/games/stack"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// play drives a game with a fixed input pattern while recording it.
func play(t *testing.T, gameID string, ticks int, pattern func(i int) []core.Action) storage.Run {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 77}

	g, err := registry.Create(gameID)
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(cfg)
	rec := NewRecorder(g, cfg)

	for i := 0; i < ticks && !g.State().GameOver; i++ {
		in := core.NewInputFrame()
		for _, a := range pattern(i) {
			in.Set(a)
		}
		rec.Record(in)
		g.Step(in)
	}
	run, err := rec.Run(g.State().Score)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return run
}

func TestReplayReproducesRuns(t *testing.T) {
	tests := []struct {
		gameID  string
		pattern func(i int) []core.Action
	}{
		{"stack", func(i int) []core.Action {
			if i%41 == 0 {
				return []core.Action{core.ActionDrop}
			}
			return nil
		}},
		{"stack_camera", func(i int) []core.Action {
			if i%29 == 0 {
				return []core.Action{core.ActionDrop}
			}
			return nil
		}},
		{"collector", func(i int) []core.Action {
			switch i % 30 {
			case 0, 1, 2, 3:
				return []core.Action{core.ActionLeft}
			case 15, 16, 17, 18:
				return []core.Action{core.ActionRight}
			}
			return nil
		}},
	}

	for _, tc := range tests {
		t.Run(tc.gameID, func(t *testing.T) {
			run := play(t, tc.gameID, 2500, tc.pattern)
			if len(run.Inputs) == 0 {
				t.Fatal("recorder captured no inputs")
			}

			res, err := Replay(run)
			if err != nil {
				t.Fatalf("Replay() failed: %v", err)
			}
			if res.Score != run.Score {
				t.Errorf("replay score = %d, recorded %d", res.Score, run.Score)
			}
		})
	}
}

func TestReplayUsesJournaledConfig(t *testing.T) {
	drops := func(n int) func(i int) []core.Action {
		return func(i int) []core.Action {
			if i%n == 0 {
				return []core.Action{core.ActionDrop}
			}
			return nil
		}
	}
	type scripted struct {
		gameID  string
		pattern func(i int) []core.Action
	}
	tests := []scripted{
		{"stack_camera", drops(31)},
		{"collector", func(i int) []core.Action {
			if i%40 < 10 {
				return []core.Action{core.ActionLeft}
			}
			return nil
		}},
	}
	for n := 20; n < 120; n += 11 {
		tests = append(tests, scripted{"stack", drops(n)})
	}

	for _, tc := range tests {
		t.Run(tc.gameID, func(t *testing.T) {
			stack.SetDifficultyPreset("hard")
			collector.SetDifficultyPreset("hard")
			run := play(t, tc.gameID, 3000, tc.pattern)
			stack.SetDifficultyPreset("")
			collector.SetDifficultyPreset("")

			if run.Difficulty != "hard" || run.Config == "" {
				t.Fatalf("run difficulty/config = %q/%q", run.Difficulty, run.Config)
			}
			if _, err := Replay(run); err != nil {
				t.Errorf("Replay() with the preset cleared failed: %v", err)
			}
		})
	}
}

func TestReplayCorruptConfig(t *testing.T) {
	run := play(t, "stack", 200, func(int) []core.Action { return nil })
	run.Config = "motion: [not a map"
	if _, err := Replay(run); err == nil || errors.Is(err, ErrMismatch) {
		t.Errorf("Replay() of a corrupt config = %v, expected a decode error", err)
	}
}

func TestReplayDetectsTampering(t *testing.T) {
	run := play(t, "stack", 1500, func(i int) []core.Action {
		if i%41 == 0 {
			return []core.Action{core.ActionDrop}
		}
		return nil
	})
	run.Score += 10

	if _, err := Replay(run); !errors.Is(err, ErrMismatch) {
		t.Errorf("Replay() of a tampered run = %v, expected ErrMismatch", err)
	}
}

func TestReplayUnknownGame(t *testing.T) {
	if _, err := Replay(storage.Run{GameID: "nope"}); err == nil {
		t.Error("Replay() of an unknown game should fail")
	}
}

func TestFrames(t *testing.T) {
	run := storage.Run{
		Ticks: 4,
		Inputs: []storage.InputEvent{
			{Tick: 1, Actions: []string{"Drop"}},
			{Tick: 3, Actions: []string{"Left", "Pause"}},
		},
	}

	frames, err := Frames(run)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("len(frames) = %d, expected 4", len(frames))
	}
	if !frames[0].Empty() || !frames[2].Empty() {
		t.Error("ticks without input should be empty")
	}
	if !frames[1].Has(core.ActionDrop) {
		t.Error("tick 1 should carry Drop")
	}
	if !frames[3].Has(core.ActionLeft) || !frames[3].Has(core.ActionPause) {
		t.Error("tick 3 should carry Left and Pause")
	}

	bad := []storage.Run{
		{Ticks: 2, Inputs: []storage.InputEvent{{Tick: 5, Actions: []string{"Drop"}}}},
		{Ticks: 2, Inputs: []storage.InputEvent{{Tick: 0, Actions: []string{"Fly"}}}},
	}
	for _, r := range bad {
		if _, err := Frames(r); err == nil {
			t.Errorf("Frames(%+v) should fail", r.Inputs)
		}
	}
}

func TestRecorderRestart(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	g, err := registry.Create("stack")
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(cfg)
	rec := NewRecorder(g, cfg)

	in := core.NewInputFrame()
	in.Set(core.ActionDrop)
	rec.Record(in)
	rec.Record(core.NewInputFrame())

	cfg.Seed = 2
	rec.Restart(cfg)
	rec.Record(core.NewInputFrame())

	run, err := rec.Run(0)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Ticks != 1 || len(run.Inputs) != 0 || run.Seed != 2 {
		t.Errorf("after Restart run = %+v", run)
	}
}
