package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of finished games",
	Long: `Summarise every game recorded in the local database and list the
most recent ones.

Examples:
  vibesnake stats
  vibesnake stats --recent 5`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent games to list")
}

func runStats(_ *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr, "vibesnake")
	if err != nil {
		return err
	}
	defer a.Close()

	if a.db == nil {
		return errors.New("database unavailable, no statistics recorded")
	}

	stats, err := a.db.Stats()
	if err != nil {
		return err
	}

	fmt.Println("Vibe Snake - Statistics")
	fmt.Println()
	if stats.GamesCount == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	fmt.Printf("  Games played:  %d\n", stats.GamesCount)
	fmt.Printf("  Best score:    %d\n", stats.HighScore)
	fmt.Printf("  Average score: %.1f\n", stats.AvgScore)
	fmt.Printf("  Total score:   %d\n", stats.TotalScore)
	fmt.Printf("  Longest snake: %d\n", stats.MaxLength)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:   %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	if flagRecent <= 0 {
		return nil
	}
	games, err := a.db.RecentGames(flagRecent)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %-20s  %-8s  %-6s  %s\n", "Date", "Score", "Length", "Ticks")
	fmt.Printf("  %-20s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----")
	for _, g := range games {
		fmt.Printf("  %-20s  %-8d  %-6d  %d\n", g.CreatedAt.Local().Format("2006-01-02 15:04:05"), g.Score, g.Length, g.Ticks)
	}
	return nil
}
