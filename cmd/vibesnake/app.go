package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vibe-snake/internal/config"
	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/remote"
	"github.com/vovakirdan/vibe-snake/internal/session"
	"github.com/vovakirdan/vibe-snake/internal/storage"
)

// app holds everything a command needs: config, logger, storage and the
// optional remote copy of the highscore table.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	db      *storage.Store // nil when the database could not be opened
	scores  *highscore.Store
	client  *remote.Client // nil when remote sync is disabled
	syncer  *remote.Syncer
	logFile *os.File
}

// newApp loads the config and opens storage. Logs go to logOut.
func newApp(logOut io.Writer, prefix string) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}

	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	a := &app{cfg: cfg, logger: logger}

	// Fall back to an in-memory table so the game still works.
	var kv highscore.KV
	db, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not persist", "path", cfg.Storage.DBPath, "error", err)
		kv = highscore.NewMemoryKV()
	} else {
		a.db = db
		kv = db
	}
	a.scores = highscore.NewStore(kv, logger)

	if cfg.Remote.Enabled {
		a.client = remote.NewClient(remote.Config{
			APIBase:       cfg.Remote.APIBase,
			Owner:         cfg.Remote.Owner,
			Repo:          cfg.Remote.Repo,
			Path:          cfg.Remote.Path,
			Branch:        cfg.Remote.Branch,
			Token:         cfg.Remote.Token(),
			CommitMessage: cfg.Remote.CommitMessage,
		}, &http.Client{Timeout: cfg.Remote.Timeout()})
		a.syncer = remote.NewSyncer(a.client, logger)
	}
	return a, nil
}

// newFileLoggedApp is newApp for commands that own the terminal. Logs are
// appended to vibesnake.log next to the config.
func newFileLoggedApp(prefix string) (*app, error) {
	path := logFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}

	a, err := newApp(f, prefix)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.logFile = f
	return a, nil
}

// deps returns the shared dependencies for game sessions.
func (a *app) deps() session.Deps {
	d := session.Deps{
		Scores: a.scores,
		Syncer: a.syncer,
		Logger: a.logger,
	}
	if a.db != nil {
		d.History = a.db
	}
	return d
}

// seed returns the configured seed or one derived from the clock.
func (a *app) seed() int64 {
	if a.cfg.Game.Seed != 0 {
		return a.cfg.Game.Seed
	}
	return time.Now().UnixNano()
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func vibesnakeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vibesnake"
	}
	return filepath.Join(home, ".vibesnake")
}

func logFilePath() string {
	return filepath.Join(vibesnakeDir(), "vibesnake.log")
}

// expandHome resolves a leading ~/ against the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
