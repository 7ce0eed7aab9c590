package snake

import (
	"slices"

	"github.com/vovakirdan/vibe-snake/internal/core"
)

// Phase is the lifecycle phase of a game.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseGameOver   Phase = "game_over"
)

// Snapshot is an immutable copy of everything a renderer needs for one frame.
// Mutating a Snapshot never affects the Game it came from.
type Snapshot struct {
	Tick      uint64         `json:"tick"`
	GridSize  int            `json:"gridSize"`
	Snake     []core.Point   `json:"snake"` // Head first
	Food      core.Point     `json:"food"`
	Score     int            `json:"score"`
	Direction core.Direction `json:"-"`
	DirName   string         `json:"direction"`
	Started   bool           `json:"started"`
	Over      bool           `json:"over"`
	Phase     Phase          `json:"phase"`
}

// Snapshot returns the current state as an immutable value.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		GridSize:  g.gridSize,
		Snake:     slices.Clone(g.snake),
		Food:      g.food,
		Score:     g.score,
		Direction: g.nextDir,
		DirName:   g.nextDir.String(),
		Started:   g.started,
		Over:      g.over,
		Phase:     g.Phase(),
	}
}

// Head returns the first snake cell.
func (s Snapshot) Head() core.Point {
	return s.Snake[0]
}

// Length returns the number of snake cells.
func (s Snapshot) Length() int {
	return len(s.Snake)
}

// Running reports whether ticks currently advance the game.
func (s Snapshot) Running() bool {
	return s.Phase == PhaseRunning
}

// CellAt classifies a grid cell for rendering.
func (s Snapshot) CellAt(p core.Point) CellKind {
	for i, seg := range s.Snake {
		if seg == p {
			if i == 0 {
				return CellHead
			}
			return CellBody
		}
	}
	if p == s.Food {
		return CellFood
	}
	return CellEmpty
}

// CellKind classifies what occupies a grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellHead
	CellBody
	CellFood
)
