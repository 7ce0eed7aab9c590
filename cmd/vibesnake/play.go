package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vibe-snake/internal/platform/tui"
	"github.com/vovakirdan/vibe-snake/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space          - Start / restart after game over
  Arrows / WASD  - Turn
  Mouse drag     - Swipe to turn, click to start
  Enter          - Save your name after a new highscore
  Tab            - Show the highscore table
  Ctrl+S         - Save a text screenshot
  Q/Ctrl+C       - Quit

Logs are written to ~/.vibesnake/vibesnake.log.

Examples:
  vibesnake play
  vibesnake play --seed 42
  vibesnake play --config ./small-board.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := newFileLoggedApp("vibesnake")
	if err != nil {
		return err
	}
	defer a.Close()

	rc := a.cfg.Runtime()
	rc.Seed = a.seed()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	sess := session.New(session.Options{
		ID:             fmt.Sprintf("local-%d", os.Getpid()),
		GridSize:       rc.GridSize,
		Seed:           rc.Seed,
		SwipeThreshold: a.cfg.Input.SwipeThreshold,
	}, a.deps())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess.StartSync(ctx)

	a.logger.Info("starting game", "grid", rc.GridSize, "tick", rc.TickInterval, "seed", rc.Seed)
	runErr := tui.Run(sess, tui.Options{
		TickInterval:  rc.TickInterval,
		Width:         rc.ScreenW,
		Height:        rc.ScreenH,
		ScreenshotDir: filepath.Join(vibesnakeDir(), "screenshots"),
	})

	// Let a push started just before quitting finish.
	deadline := time.Now().Add(a.cfg.Remote.Timeout())
	for sess.SyncPending() && time.Now().Before(deadline) {
		sess.PollSync()
		time.Sleep(50 * time.Millisecond)
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
