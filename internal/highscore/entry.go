// Package highscore keeps the local top-10 table: qualification, insertion
// and persistence through a small key-value interface.
package highscore

import (
	"slices"
	"strings"
	"time"
)

const (
	// Capacity is the number of entries kept in the table.
	Capacity = 10

	// MaxNameLength is the longest stored player name, in runes.
	MaxNameLength = 15

	// AnonymousName replaces empty names.
	AnonymousName = "Anonymous"

	// StorageKey is the key-value slot holding the JSON table.
	StorageKey = "vibeSnakeHighscores"

	// DateLayout renders ISO-8601 UTC timestamps with millisecond precision,
	// e.g. 2024-01-01T00:00:00.000Z.
	DateLayout = "2006-01-02T15:04:05.000Z"
)

// Entry is one row of the highscore table. The JSON shape is also the wire
// format of the remote copy.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Time parses the entry date. It returns the zero time if the date is not
// ISO-8601.
func (e Entry) Time() time.Time {
	if t, err := time.Parse(time.RFC3339Nano, e.Date); err == nil {
		return t
	}
	return time.Time{}
}

// Table is an ordered list of entries, highest score first.
type Table []Entry

// Lowest returns the last entry's score and whether the table is non-empty.
func (t Table) Lowest() (int, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1].Score, true
}

// Qualifies reports whether score would enter the table: there is room left,
// or it beats the current last place outright.
func (t Table) Qualifies(score int) bool {
	if score < 0 {
		return false
	}
	if len(t) < Capacity {
		return true
	}
	lowest, _ := t.Lowest()
	return score > lowest
}

// Ranked returns a copy sorted by score descending and cut to Capacity.
// Equal scores keep their relative order.
func (t Table) Ranked() Table {
	out := slices.Clone(t)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out
}

// NormalizeName trims surrounding space, cuts the name to MaxNameLength runes
// and substitutes AnonymousName for an empty result.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLength {
		name = strings.TrimSpace(string(r[:MaxNameLength]))
	}
	if name == "" {
		return AnonymousName
	}
	return name
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
