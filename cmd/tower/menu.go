package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Browse journaled runs
  Q            - Quit

Examples:
  tower menu
  tower menu --fps 30
  tower menu --db ./runs.db --difficulty easy`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("tower", true)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	store := openJournal(false)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsRuns:
			back, err := tui.RunRunsBoard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return
			}

		default:
			playFromMenu(res.GameID, store, logger, cfg)
		}
	}
}

// playFromMenu runs one game picked in the menu. Each game gets a fresh
// seed unless --seed pinned one.
func playFromMenu(gameID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) {
	applyGameFlags(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := tui.Run(game, store, logger, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
