package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/platform/tui"
	"github.com/vovakirdan/vibe-snake/internal/remote"
)

var (
	flagPlain      bool
	flagScoresPull bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the highscore table",
	Long: `Display the top 10 highscores.

With --pull the GitHub copy is merged into the local table first.

Examples:
  vibesnake scores
  vibesnake scores --plain
  vibesnake scores --pull`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the table instead of opening the viewer")
	scoresCmd.Flags().BoolVar(&flagScoresPull, "pull", false, "Merge the remote table before showing")
}

func runScores(_ *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr, "vibesnake")
	if err != nil {
		return err
	}
	defer a.Close()

	title := "HIGH SCORES"
	if flagScoresPull && a.syncer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Remote.Timeout())
		defer cancel()
		pulled := a.syncer.Pull(ctx, a.scores.Load())
		a.scores.Update(func(current highscore.Table) highscore.Table {
			return remote.Merge(current, pulled)
		})
		title = "HIGH SCORES (merged with GitHub)"
	}

	scores := a.scores.Load()
	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printScores(scores)
		return nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(scores, title, width, height)
}

func printScores(scores highscore.Table) {
	fmt.Println("High Scores - Vibe Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'vibesnake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-15s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-15s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, e := range scores {
		date := e.Date
		if t := e.Time(); !t.IsZero() {
			date = t.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-15s  %-8d  %s\n", i+1, e.Name, e.Score, date)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
}
