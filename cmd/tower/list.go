package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every registered game and, when the run journal can be
opened, how many runs of it are journaled.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// The journal is optional here; listing works without it.
	store, err := storage.Open(flagDBPath)
	if err == nil {
		defer store.Close()
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		runs := "-"
		if store != nil {
			if n, err := store.CountRuns(g.ID); err == nil {
				runs = strconv.Itoa(n)
			}
		}
		rows = append(rows, []string{g.ID, g.Title, runs})
	}

	printTable([]string{"ID", "Title", "Runs"}, rows)
	fmt.Println("Run 'tower play <id>' to play a game.")
}
