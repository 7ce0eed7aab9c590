// Package session ties one game to its input mapper, the shared highscore
// store and optional remote sync. Every front end (terminal, SSH, WebSocket)
// drives exactly one Session per player.
//
// A Session is not safe for concurrent use: the owning event loop is its
// only mutator. Remote sync runs in the background and its results are
// folded in by PollSync on the owner's goroutine.
package session

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vibe-snake/internal/core"
	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/input"
	"github.com/vovakirdan/vibe-snake/internal/remote"
	"github.com/vovakirdan/vibe-snake/internal/snake"
	"github.com/vovakirdan/vibe-snake/internal/storage"
)

// History records finished games.
type History interface {
	RecordGame(g storage.GameRecord) (int64, error)
}

var _ History = (*storage.Store)(nil)

// Options configures a session.
type Options struct {
	ID             string
	GridSize       int
	Seed           int64
	SwipeThreshold float64
}

// Deps are the collaborators shared between sessions.
type Deps struct {
	Scores  *highscore.Store // required
	Syncer  *remote.Syncer   // nil disables remote sync
	History History          // nil disables game history
	Logger  *log.Logger
}

// Session is one player's game.
type Session struct {
	id      string
	game    *snake.Game
	mapper  *input.Mapper
	scores  *highscore.Store
	syncer  *remote.Syncer
	history History
	logger  *log.Logger

	snap      snake.Snapshot
	table     highscore.Table
	overlay   bool
	lastEntry *highscore.Entry
	pending   []<-chan remote.Result
}

// New creates a session in the not-started phase with the current local
// highscores loaded.
func New(opts Options, deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", opts.ID)

	game := snake.New(opts.GridSize, opts.Seed)
	return &Session{
		id:      opts.ID,
		game:    game,
		mapper:  input.NewMapper(opts.SwipeThreshold),
		scores:  deps.Scores,
		syncer:  deps.Syncer,
		history: deps.History,
		logger:  logger,
		snap:    game.Snapshot(),
		table:   deps.Scores.Load(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns the latest game state.
func (s *Session) Snapshot() snake.Snapshot { return s.snap }

// Highscores returns the cached highscore table.
func (s *Session) Highscores() highscore.Table { return s.table }

// Overlay reports whether the name-entry overlay is shown.
func (s *Session) Overlay() bool { return s.overlay }

// LastEntry returns the entry stored by the most recent SubmitName of the
// current game, for highlighting.
func (s *Session) LastEntry() (highscore.Entry, bool) {
	if s.lastEntry == nil {
		return highscore.Entry{}, false
	}
	return *s.lastEntry, true
}

// StartSync pulls the remote table in the background. The merged result is
// applied by a later PollSync.
func (s *Session) StartSync(ctx context.Context) {
	if s.syncer == nil {
		return
	}
	s.pending = append(s.pending, s.syncer.PullAsync(ctx, s.scores.Load()))
}

// SyncPending reports whether background sync calls are still outstanding.
func (s *Session) SyncPending() bool {
	return len(s.pending) > 0
}

// PollSync applies every finished background sync without blocking.
// It reports whether the cached highscore table changed.
func (s *Session) PollSync() bool {
	changed := false
	remaining := s.pending[:0]
	for _, ch := range s.pending {
		select {
		case r := <-ch:
			if s.applySync(r) {
				changed = true
			}
		default:
			remaining = append(remaining, ch)
		}
	}
	clear(s.pending[len(remaining):])
	s.pending = remaining
	return changed
}

// applySync folds a sync result into the local store. The remote table is
// merged with what is stored now, so entries inserted while the call was in
// flight survive.
func (s *Session) applySync(r remote.Result) bool {
	if r.Err != nil {
		return false
	}
	before := s.table
	s.table = s.scores.Update(func(current highscore.Table) highscore.Table {
		return remote.Merge(current, r.Table)
	})
	return !sameTable(before, s.table)
}

func sameTable(a, b highscore.Table) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HandleKey maps and applies a key code. The returned intent tells the
// caller whether a name submit was requested.
func (s *Session) HandleKey(code string) input.Intent {
	return s.Apply(s.mapper.MapKey(code, s.snap.Phase))
}

// HandleSwipe maps and applies a drag vector.
func (s *Session) HandleSwipe(dx, dy float64) input.Intent {
	return s.Apply(s.mapper.MapSwipe(dx, dy, s.snap.Phase))
}

// HandleTap maps and applies a tap on the board.
func (s *Session) HandleTap() input.Intent {
	return s.Apply(s.mapper.MapTap(s.snap.Phase))
}

// HandleButton maps and applies an on-screen direction button.
func (s *Session) HandleButton(d core.Direction) input.Intent {
	return s.Apply(s.mapper.MapButton(d, s.snap.Phase))
}

// Apply performs an intent on the game. KindSubmit is returned untouched;
// the caller owns the typed name and answers with SubmitName.
func (s *Session) Apply(in input.Intent) input.Intent {
	switch in.Kind {
	case input.KindStart:
		s.snap = s.game.Start()
	case input.KindRestart:
		s.snap = s.game.Restart()
		s.lastEntry = nil
	case input.KindTurn:
		s.snap = s.game.SetDirection(in.Dir)
	}
	return in
}

// Tick advances the game one step and handles the transition to game over.
func (s *Session) Tick() snake.Snapshot {
	wasOver := s.snap.Over
	s.snap = s.game.Tick()
	if s.snap.Over && !wasOver {
		s.gameOver()
	}
	return s.snap
}

func (s *Session) gameOver() {
	s.logger.Info("game over", "score", s.snap.Score, "length", s.snap.Length(), "ticks", s.snap.Tick)

	if s.history != nil {
		_, err := s.history.RecordGame(storage.GameRecord{
			SessionID: s.id,
			Score:     s.snap.Score,
			Length:    s.snap.Length(),
			Ticks:     s.snap.Tick,
		})
		if err != nil {
			s.logger.Warn("failed to record game", "error", err)
		}
	}

	s.table = s.scores.Load()
	if s.snap.Score > 0 && s.table.Qualifies(s.snap.Score) {
		s.setOverlay(true)
	}
}

func (s *Session) setOverlay(on bool) {
	s.overlay = on
	s.mapper.SetOverlay(on)
}

// SubmitName closes the overlay and stores the finished game's score under
// name. Qualification is checked again against the stored table; on success
// the new table is pushed to the remote copy in the background.
func (s *Session) SubmitName(ctx context.Context, name string) (highscore.Entry, bool) {
	if !s.overlay {
		return highscore.Entry{}, false
	}
	s.setOverlay(false)

	entry, ok := s.scores.Insert(name, s.snap.Score)
	s.table = s.scores.Load()
	if !ok {
		s.logger.Info("score no longer qualifies", "score", s.snap.Score)
		return highscore.Entry{}, false
	}
	s.lastEntry = &entry

	if s.syncer != nil {
		s.pending = append(s.pending, s.syncer.PushAsync(ctx, s.table))
	}
	return entry, true
}

// Reset discards the current game, closing any open overlay.
func (s *Session) Reset() snake.Snapshot {
	s.setOverlay(false)
	s.lastEntry = nil
	s.snap = s.game.Reset()
	return s.snap
}
