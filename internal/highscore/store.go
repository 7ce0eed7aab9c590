package highscore

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Store manages the persisted highscore table.
//
// Read failures and malformed data are logged and treated as an empty table;
// write failures are logged and otherwise ignored. Nothing here ever stops
// play.
type Store struct {
	kv     KV
	logger *log.Logger
	now    func() time.Time

	// mu serialises read-modify-write cycles when several sessions share
	// one store (SSH and WebSocket servers).
	mu sync.Mutex
}

// NewStore creates a store over kv. A nil logger discards output.
func NewStore(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source used to stamp new entries.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load returns the persisted table, or an empty table if it is absent or
// unreadable.
func (s *Store) Load() Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Table {
	data, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error("failed to load highscores", "error", err)
		return Table{}
	}
	if !ok || len(data) == 0 {
		return Table{}
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		s.logger.Error("failed to decode highscores", "error", err)
		return Table{}
	}
	if t == nil {
		t = Table{}
	}
	return t
}

func (s *Store) save(t Table) {
	if t == nil {
		t = Table{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		s.logger.Error("failed to encode highscores", "error", err)
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.logger.Error("failed to save highscores", "error", err)
	}
}

// IsQualifying reports whether score would currently enter the table.
func (s *Store) IsQualifying(score int) bool {
	return s.Load().Qualifies(score)
}

// Insert adds a new entry if score qualifies against the table as stored
// right now. Qualification and insertion happen under one lock, so a caller
// never inserts based on a stale check. It returns the stored entry and true,
// or false with the table untouched.
func (s *Store) Insert(name string, score int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	if !current.Qualifies(score) {
		return Entry{}, false
	}

	entry := Entry{
		Name:  NormalizeName(name),
		Score: score,
		Date:  FormatDate(s.now()),
	}
	s.save(append(current, entry).Ranked())

	s.logger.Info("highscore recorded", "name", entry.Name, "score", entry.Score)
	return entry, true
}

// Replace overwrites the table. The table is re-ranked before it is written.
func (s *Store) Replace(t Table) Table {
	return s.Update(func(Table) Table { return t })
}

// Update runs fn on the current table and persists its ranked result under
// the store lock. Used to fold remote tables into whatever is stored now.
func (s *Store) Update(fn func(current Table) Table) Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := fn(s.load()).Ranked()
	s.save(ranked)
	return ranked
}
