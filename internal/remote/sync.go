package remote

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
)

// Remote is the contract of the remote highscore copy.
type Remote interface {
	Fetch(ctx context.Context) (highscore.Table, string, error)
	Put(ctx context.Context, t highscore.Table, revision string) error
}

var _ Remote = (*Client)(nil)

// Op names a sync operation.
type Op string

const (
	OpPull Op = "pull"
	OpPush Op = "push"
)

// Result is delivered by the asynchronous sync calls.
// On failure Table holds the local table that was passed in.
type Result struct {
	Op    Op
	Table highscore.Table
	Err   error
}

// Syncer merges the local table with the remote copy.
type Syncer struct {
	remote Remote
	logger *log.Logger
}

// NewSyncer creates a syncer. A nil logger discards output.
func NewSyncer(r Remote, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Syncer{remote: r, logger: logger}
}

func (s *Syncer) logFailure(op Op, err error) {
	if errors.Is(err, ErrNoToken) {
		s.logger.Debug("no GitHub token available, using local highscores only", "op", op)
		return
	}
	s.logger.Warn("highscore sync failed", "op", op, "error", err)
}

// Pull fetches the remote table and merges it into local. Any failure
// returns local unchanged.
func (s *Syncer) Pull(ctx context.Context, local highscore.Table) highscore.Table {
	remoteTable, _, err := s.remote.Fetch(ctx)
	if err != nil {
		s.logFailure(OpPull, err)
		return local
	}
	return Merge(local, remoteTable)
}

// Push merges local with the current remote table and writes the result
// back using the revision read just before. On error the returned table is
// local and nothing is retried.
func (s *Syncer) Push(ctx context.Context, local highscore.Table) (highscore.Table, error) {
	remoteTable, revision, err := s.remote.Fetch(ctx)
	switch {
	case err == nil:
	case IsNotFound(err):
		// First write creates the file.
		remoteTable, revision = nil, ""
	default:
		s.logFailure(OpPush, err)
		return local, err
	}

	merged := Merge(local, remoteTable)
	if err := s.remote.Put(ctx, merged, revision); err != nil {
		s.logFailure(OpPush, err)
		return local, err
	}

	s.logger.Info("highscores pushed", "entries", len(merged))
	return merged, nil
}

// PullAsync runs Pull in a detached goroutine. The channel is buffered, so
// the goroutine finishes even if nobody ever receives.
func (s *Syncer) PullAsync(ctx context.Context, local highscore.Table) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- Result{Op: OpPull, Table: s.Pull(ctx, local)}
	}()
	return out
}

// PushAsync runs Push in a detached goroutine; see PullAsync.
func (s *Syncer) PushAsync(ctx context.Context, local highscore.Table) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		t, err := s.Push(ctx, local)
		out <- Result{Op: OpPush, Table: t, Err: err}
	}()
	return out
}
