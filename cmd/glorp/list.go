package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	// Play counts are best-effort; the list works without a database
	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
		store.Close()
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "----")
	for _, g := range games {
		best := "-"
		if st, ok := stats[g.ID]; ok {
			best = fmt.Sprintf("%d (%d runs)", st.HighScore, st.GamesCount)
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'glorp play <id>' to play a mode.")
}
