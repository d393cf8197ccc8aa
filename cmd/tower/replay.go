package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run and verify its score",
	Long: `Load a run from the journal, feed its recorded inputs back into a
fresh game with the same seed, tick rate, screen size and game config,
and check that the final score matches. Runs journaled without a config
use --config and --difficulty instead.

Examples:
  tower runs
  tower replay 12`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fatalf("invalid run id %q", args[0])
	}

	logger, closeLog, err := newLogger("tower", false)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	store := openJournal(true)
	defer store.Close()

	run, err := store.RunByID(id)
	switch {
	case err != nil:
		fatalf("loading run: %v", err)
	case run == nil:
		fatalf("run %d not found", id)
	}

	applyGameFlags(run.GameID)
	logger.Debug("replaying", "id", run.ID, "game", run.GameID, "seed", run.Seed, "ticks", run.Ticks)

	res, err := replay.Replay(*run)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		fmt.Printf("Run %d (%s): MISMATCH - journal says %d, replay scored %d\n", run.ID, run.GameID, run.Score, res.Score)
		os.Exit(2)
	case err != nil:
		fatalf("replaying run: %v", err)
	}

	fmt.Printf("Run %d (%s): verified - score %d over %d ticks (seed %d, %s, %dx%d @ %d fps)\n",
		run.ID, run.GameID, res.Score, res.Ticks, run.Seed, run.DifficultyName(), run.ScreenW, run.ScreenH, run.TickRate)
}
