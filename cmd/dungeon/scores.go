package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs of a game",
	Long: `Display the best runs for the specified game, or the most recent runs
of every game when no game is given.

Examples:
  dungeon scores dungeon
  dungeon scores trackout --limit 20
  dungeon scores`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			return fmt.Errorf("retrieving runs: %w", err)
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return nil
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'dungeon list' to see available games", gameID)
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dungeon play %s' to set the first high score!\n", gameID)
		return nil
	}
	printRuns(runs, false)

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f  Played: %s\n",
			stats.HighScore, stats.RunsCount, stats.AvgScore, stats.TotalTime.Truncate(time.Second))
	}
	return nil
}

func printRuns(runs []storage.Run, withGame bool) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-8s  %-8s  %-5s  %s\n", "Rank", "Game", "Score", "Frames", "Time", "End", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-8s  %-8s  %-5s  %s\n", "----", "----", "-----", "------", "----", "---", "----")
	for i, r := range runs {
		game := r.GameID
		if !withGame {
			game = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-8d  %-8d  %-8s  %-5s  %s\n",
			i+1, game, r.Score, r.Frames, r.Duration.Truncate(time.Second), r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
