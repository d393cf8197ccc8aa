package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show journaled runs",
	Long: `List the most recent finished runs, newest first, optionally for
one game only. Each run can be re-simulated with 'tower replay <id>'.

--clear deletes the listed game's runs, or the whole journal when no
game is given.

Examples:
  tower runs
  tower runs stack --limit 5
  tower runs collector --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete journaled runs instead of listing them")
}

func runRuns(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		mustKnowGame(gameID)
	}

	store := openJournal(true)
	defer store.Close()

	if flagRunsClear {
		n, err := store.CountRuns(gameID)
		if err != nil {
			fatalf("%v", err)
		}
		if err := store.ClearRuns(gameID); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return
	}

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		fatalf("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'tower play <id>' to journal it.")
		return
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.GameID,
			r.DifficultyName(),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(len(r.Inputs)),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	printTable([]string{"ID", "Game", "Difficulty", "Score", "Ticks", "Inputs", "Date"}, rows)

	if total, err := store.CountRuns(gameID); err == nil && total > len(runs) {
		fmt.Printf("Showing %d of %d runs.\n", len(runs), total)
	}
}
