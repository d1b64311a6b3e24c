package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game|level]",
	Short: "Show high scores",
	Long: `Display the top 10 campaign scores for a game mode, or the best runs
of a single level when given a level ID. Without an argument, shows the
campaign scores and a per-level summary.

Examples:
  glorp scores
  glorp scores glorp_zen --all
  glorp scores boom
  glorp scores glorp_zen --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every campaign score instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores and level runs of a game mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		id := "glorp"
		if len(args) > 0 {
			id = args[0]
		}
		if err := clearScores(store, id); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", id)
		return nil
	}

	if len(args) == 0 {
		if err := printModeScores(store, "glorp", "Glorp"); err != nil {
			return err
		}
		return printLevelSummary(store)
	}

	id := args[0]
	if title, ok := modeTitle(id); ok {
		return printModeScores(store, id, title)
	}
	return printLevelRuns(store, id)
}

func modeTitle(id string) (string, bool) {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title, true
		}
	}
	return "", false
}

// clearScores wipes one game mode's history. Level IDs are refused so a typo
// cannot silently clear nothing.
func clearScores(store *storage.Store, gameID string) error {
	if _, ok := modeTitle(gameID); !ok {
		return fmt.Errorf("%w: %q", registry.ErrUnknownGame, gameID)
	}
	if err := store.ClearScores(gameID); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}
	return nil
}

func modeScores(store *storage.Store, gameID string) ([]storage.ScoreEntry, error) {
	if flagScoresAll {
		return store.AllScores(gameID)
	}
	return store.TopScores(gameID, 10)
}

func printModeScores(store *storage.Store, gameID, title string) error {
	scores, err := modeScores(store, gameID)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Finish a run of 'glorp play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printLevelSummary(store *storage.Store) error {
	lvls, err := levels.Campaign().LoadAll()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Levels")
	fmt.Println()
	fmt.Printf("  %-14s  %-8s  %-6s  %-8s  %s\n", "Level", "Attempts", "Clears", "Best", "Fastest")
	for _, l := range lvls {
		st, err := store.GetLevelStats(l.ID)
		if err != nil {
			return fmt.Errorf("retrieving level stats: %w", err)
		}
		fastest := "-"
		if st.Completed > 0 {
			fastest = fmt.Sprintf("%.1fs", st.Fastest.Seconds())
		}
		fmt.Printf("  %-14s  %-8d  %-6d  %-8d  %s\n", l.ID, st.Attempts, st.Completed, st.BestScore, fastest)
	}
	return nil
}

func printLevelRuns(store *storage.Store, levelID string) error {
	runs, err := store.LevelRuns(levelID, 10)
	if err != nil {
		return fmt.Errorf("retrieving level runs: %w", err)
	}

	fmt.Printf("Recent runs - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded for this level.")
		return nil
	}

	fmt.Printf("  %-6s  %-6s  %-8s  %-6s  %-5s  %s\n", "Result", "Score", "Time", "Glorps", "Power", "Date")
	for _, r := range runs {
		result := "fail"
		if r.Completed {
			result = "clear"
		}
		fmt.Printf("  %-6s  %-6d  %-8s  %-6d  %-5d  %s\n",
			result, r.Score, fmt.Sprintf("%.1fs", r.Duration.Seconds()), r.Glorps, r.PowerLeft,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestLevelRun(levelID); err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Best: %d in %.1fs\n", best.Score, best.Duration.Seconds())
	}
	return nil
}
