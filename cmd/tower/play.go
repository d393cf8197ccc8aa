package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Enter/Up/Click - Start the match, drop the block
  Left/Right (A/D)     - Move the collector paddle
  P/Esc                - Pause
  R                    - Restart (after game over)
  B                    - Leave (when paused or over)
  Q/Ctrl+C             - Quit
  Ctrl+S               - Save a text screenshot

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Every finished run is journaled with its seed and inputs; see 'tower runs'.

Examples:
  tower play stack
  tower play stack_camera --difficulty hard
  tower play collector --difficulty fixed
  tower play stack --config ./my-stack.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	mustKnowGame(gameID)

	logger, closeLog, err := newLogger("tower", true)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	applyGameFlags(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		fatalf("creating game: %v", err)
	}

	store := openJournal(false)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, terminalConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
