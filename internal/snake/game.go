// Package snake implements the tick-driven Snake state machine on a toroidal
// grid. It has no knowledge of rendering, input devices or persistence.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/vibe-snake/internal/core"
)

const (
	// FoodAward is the score added for every food eaten.
	FoodAward = 10

	// MaxFoodAttempts caps random food sampling. After that many misses the
	// last candidate is used even if the snake occupies it.
	MaxFoodAttempts = 1000

	// DefaultGridSize matches the classic 100×100 board.
	DefaultGridSize = 100
)

// Game is the Snake state machine. A Game is owned by a single session and is
// not safe for concurrent use.
type Game struct {
	rng      *rand.Rand
	gridSize int
	tick     uint64

	// Snake state
	snake     []core.Point // Head at index 0
	direction core.Direction
	nextDir   core.Direction // Applied on the next tick
	food      core.Point
	score     int

	// Lifecycle flags
	started bool
	over    bool
}

// New creates a game on an n×n grid seeded with seed.
// Grid sizes below 2 fall back to DefaultGridSize.
func New(gridSize int, seed int64) *Game {
	if gridSize < 2 {
		gridSize = DefaultGridSize
	}
	g := &Game{
		rng:      rand.New(rand.NewSource(seed)),
		gridSize: gridSize,
	}
	g.reset()
	return g
}

// GridSize returns the board edge length.
func (g *Game) GridSize() int {
	return g.gridSize
}

// reset restores the initial layout: a one-cell snake in the middle heading
// right and food a quarter of the way in.
func (g *Game) reset() {
	mid := g.gridSize / 2
	g.snake = []core.Point{{X: mid, Y: mid}}
	g.direction = core.DirRight
	g.nextDir = core.DirRight
	g.food = core.Point{X: g.gridSize / 4, Y: g.gridSize / 4}
	g.score = 0
	g.tick = 0
	g.started = false
	g.over = false
}

// Phase reports the lifecycle phase derived from the flags.
func (g *Game) Phase() Phase {
	switch {
	case g.over:
		return PhaseGameOver
	case g.started:
		return PhaseRunning
	default:
		return PhaseNotStarted
	}
}

// Start moves a fresh game into the running phase. It does nothing if the
// game is already running or over.
func (g *Game) Start() Snapshot {
	if g.Phase() == PhaseNotStarted {
		g.started = true
	}
	return g.Snapshot()
}

// Restart discards a finished game and returns to a fresh, not yet started
// board. It does nothing unless the game is over.
func (g *Game) Restart() Snapshot {
	if g.over {
		g.reset()
	}
	return g.Snapshot()
}

// Reset unconditionally returns to a fresh, not yet started board.
func (g *Game) Reset() Snapshot {
	g.reset()
	return g.Snapshot()
}

// SetDirection queues a direction change for the next tick. Reversing onto
// the direction the snake last moved in is ignored, as is any change while
// the game is not running.
func (g *Game) SetDirection(d core.Direction) Snapshot {
	if g.Phase() != PhaseRunning {
		return g.Snapshot()
	}
	if d != g.direction.Opposite() {
		g.nextDir = d
	}
	return g.Snapshot()
}

// Tick advances the snake by one cell. Outside the running phase it is a no-op.
func (g *Game) Tick() Snapshot {
	if g.Phase() != PhaseRunning {
		return g.Snapshot()
	}
	g.tick++
	g.moveSnake()
	return g.Snapshot()
}

// moveSnake applies the queued direction and moves the head one cell.
func (g *Game) moveSnake() {
	g.direction = g.nextDir
	newHead := core.Advance(g.snake[0], g.direction, g.gridSize)

	// The rejected move is discarded; the body stays as it was.
	if g.isSnakeAt(newHead) {
		g.over = true
		return
	}

	grown := make([]core.Point, 0, len(g.snake)+1)
	grown = append(grown, newHead)
	grown = append(grown, g.snake...)

	if newHead == g.food {
		g.snake = grown
		g.score += FoodAward
		g.food = g.spawnFood()
		return
	}

	g.snake = grown[:len(grown)-1]
}

// spawnFood samples random cells until one is free of the snake. After
// MaxFoodAttempts misses the last sample is returned regardless, so a full
// board degrades instead of hanging.
func (g *Game) spawnFood() core.Point {
	var candidate core.Point
	for range MaxFoodAttempts {
		candidate = core.Point{
			X: g.rng.Intn(g.gridSize),
			Y: g.rng.Intn(g.gridSize),
		}
		if !g.isSnakeAt(candidate) {
			return candidate
		}
	}
	return candidate
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Phase: %s\n", g.tick, g.score, g.Phase())
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Next: %s\n", len(g.snake), g.direction, g.nextDir)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", g.snake[0].X, g.snake[0].Y, g.food.X, g.food.Y)
	return b.String()
}
