// tower is a terminal tower-stacking game with a falling-pickup side game.
//
// Usage:
//
//	tower list              - List available games
//	tower play <game>       - Play a game
//	tower menu              - Start menu to pick games interactively
//	tower serve             - Serve games over SSH and/or WebSocket
//	tower runs [game]       - Show journaled runs
//	tower replay <id>       - Re-simulate a journaled run and verify it
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set run journal path (default: ~/.tower/runs.db)
//	--log-file <path>    - Write logs to a rotating file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/games/collector"
	"github.com/vovakirdan/tui-tower/internal/games/stack"
	"github.com/vovakirdan/tui-tower/internal/logging"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	// Game config flags shared by play and menu
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Tower - stack blocks in your terminal",
	Long: `Tower is a terminal stacking game. A block swings from wall to wall
while gliding down; drop it onto the tower and whatever overhangs is
sliced off. Miss completely and the tower is finished.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Serve games over SSH and WebSocket
  runs     - View journaled runs
  replay   - Verify a journaled run

Examples:
  tower list
  tower play stack
  tower play stack_camera --difficulty hard
  tower serve --ssh :2222 --ws :8080
  tower replay 12`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds the logger for a command. Full-screen commands own
// the terminal, so they only log when a file is given.
func newLogger(prefix string, fullScreen bool) (*log.Logger, func() error, error) {
	if fullScreen && flagLogFile == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	opts := logging.Options{Level: flagLogLevel, File: flagLogFile, Prefix: prefix}
	if fullScreen {
		opts.Output = io.Discard
	}
	return logging.New(opts)
}

// applyGameFlags hands --config and --difficulty to the game packages
// before a game is created.
func applyGameFlags(gameID string) {
	switch gameID {
	case stack.IDStack, stack.IDStackCamera:
		stack.SetConfigPath(flagConfig)
		stack.SetDifficultyPreset(flagDifficulty)
	case collector.ID:
		collector.SetConfigPath(flagConfig)
		collector.SetDifficultyPreset(flagDifficulty)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func mustKnowGame(gameID string) {
	if !registry.Exists(gameID) {
		fatalf("unknown game %q\nRun 'tower list' to see available games.", gameID)
	}
}

// openJournal opens the run journal at --db. Games are still playable
// without one, so unless required a failure only warns.
func openJournal(required bool) *storage.Store {
	store, err := storage.Open(flagDBPath)
	switch {
	case err == nil:
		return store
	case required:
		fatalf("opening run journal: %v", err)
	default:
		fmt.Fprintf(os.Stderr, "Warning: runs will not be journaled: %v\n", err)
	}
	return nil
}
