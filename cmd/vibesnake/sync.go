package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/remote"
)

var flagPullOnly bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge the local table with the GitHub copy",
	Long: `Fetch the shared highscore file, merge it with the local table and
write the result to both places.

A token is read from the environment variable named by remote.token_env
(default VIBESNAKE_GITHUB_TOKEN). With --pull-only only the local table is
updated.

Examples:
  vibesnake sync --pull-only
  VIBESNAKE_GITHUB_TOKEN=ghp_... vibesnake sync`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&flagPullOnly, "pull-only", false, "Only merge the remote table into the local one")
}

func runSync(_ *cobra.Command, _ []string) error {
	a, err := newApp(os.Stderr, "vibesnake")
	if err != nil {
		return err
	}
	defer a.Close()

	if a.syncer == nil {
		return errors.New("remote sync is disabled in the config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*a.cfg.Remote.Timeout())
	defer cancel()

	if !a.client.HasToken() {
		return fmt.Errorf("no GitHub token: set $%s", a.cfg.Remote.TokenEnv)
	}

	local := a.scores.Load()
	if flagPullOnly {
		table, _, err := a.client.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		merged := a.mergeLocal(table)
		fmt.Printf("Pulled %d remote entries, %d entries locally.\n", len(table), len(merged))
		return nil
	}

	pushed, err := a.syncer.Push(ctx, local)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	merged := a.mergeLocal(pushed)
	fmt.Printf("Synced %d entries with %s/%s.\n", len(merged), a.cfg.Remote.Owner, a.cfg.Remote.Repo)
	return nil
}

// mergeLocal merges t into the local table and returns the result.
func (a *app) mergeLocal(t highscore.Table) highscore.Table {
	return a.scores.Update(func(current highscore.Table) highscore.Table {
		return remote.Merge(current, t)
	})
}
