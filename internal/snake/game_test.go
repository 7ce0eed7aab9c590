package snake

import (
	"slices"
	"testing"

	"github.com/vovakirdan/vibe-snake/internal/core"
)

func newRunningGame(t *testing.T, n int, seed int64) *Game {
	t.Helper()
	g := New(n, seed)
	if snap := g.Start(); !snap.Running() {
		t.Fatalf("Start() phase = %s, expected running", snap.Phase)
	}
	return g
}

func TestInitialState(t *testing.T) {
	g := New(100, 1)
	snap := g.Snapshot()

	if snap.Phase != PhaseNotStarted || snap.Started || snap.Over {
		t.Errorf("new game should be not started, got phase %s", snap.Phase)
	}
	if len(snap.Snake) != 1 || snap.Head() != (core.Point{X: 50, Y: 50}) {
		t.Errorf("initial snake = %v, expected [(50,50)]", snap.Snake)
	}
	if snap.Food != (core.Point{X: 25, Y: 25}) {
		t.Errorf("initial food = %v, expected (25,25)", snap.Food)
	}
	if snap.Direction != core.DirRight {
		t.Errorf("initial direction = %s, expected RIGHT", snap.Direction)
	}
	if snap.Score != 0 {
		t.Errorf("initial score = %d, expected 0", snap.Score)
	}
}

func TestInvalidGridSizeFallsBack(t *testing.T) {
	if g := New(1, 1); g.GridSize() != DefaultGridSize {
		t.Errorf("GridSize() = %d, expected %d", g.GridSize(), DefaultGridSize)
	}
}

func TestTickIgnoredUntilStarted(t *testing.T) {
	g := New(20, 1)
	before := g.Snapshot()

	after := g.Tick()
	if !slices.Equal(before.Snake, after.Snake) || after.Tick != 0 {
		t.Error("Tick before Start should be a no-op")
	}
}

func TestStartIsNoOpWhenRunningOrOver(t *testing.T) {
	g := newRunningGame(t, 20, 1)
	g.Tick()
	if snap := g.Start(); snap.Tick != 1 || !snap.Running() {
		t.Error("Start while running should not reset anything")
	}

	g.over = true
	if snap := g.Start(); snap.Phase != PhaseGameOver {
		t.Errorf("Start while over should keep game over, got %s", snap.Phase)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	for _, d := range core.Directions {
		t.Run(d.String(), func(t *testing.T) {
			g := newRunningGame(t, 20, 7)
			g.direction = d
			g.nextDir = d
			g.Tick() // now moving in d

			snap := g.SetDirection(d.Opposite())
			if snap.Direction != d {
				t.Errorf("direction after reversing %s = %s, expected unchanged", d, snap.Direction)
			}
			if after := g.Tick(); after.Over {
				t.Error("ignored reversal should not cause a collision")
			}
		})
	}
}

func TestReversalCheckedAgainstMovedDirection(t *testing.T) {
	g := newRunningGame(t, 20, 7)
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}

	// Two quick turns within one tick must not fold the snake onto its neck.
	g.SetDirection(core.DirUp)
	g.SetDirection(core.DirLeft)
	if snap := g.Snapshot(); snap.Direction != core.DirUp {
		t.Errorf("queued direction = %s, expected UP", snap.Direction)
	}
}

func TestSetDirectionIgnoredWhenNotRunning(t *testing.T) {
	g := New(20, 1)
	if snap := g.SetDirection(core.DirUp); snap.Direction != core.DirRight {
		t.Errorf("direction before start = %s, expected RIGHT", snap.Direction)
	}
}

func TestMoveKeepsLength(t *testing.T) {
	g := newRunningGame(t, 20, 3)
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	g.food = core.Point{X: 15, Y: 15}

	snap := g.Tick()
	if snap.Length() != 3 {
		t.Errorf("length after plain move = %d, expected 3", snap.Length())
	}
	want := []core.Point{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	if !slices.Equal(snap.Snake, want) {
		t.Errorf("snake = %v, expected %v", snap.Snake, want)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, expected 0", snap.Score)
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := newRunningGame(t, 20, 222)
	head := g.snake[0]
	g.food = core.Point{X: head.X + 1, Y: head.Y}
	before := g.Snapshot()

	snap := g.Tick()
	if snap.Length() != before.Length()+1 {
		t.Errorf("length after eating = %d, expected %d", snap.Length(), before.Length()+1)
	}
	if snap.Score != before.Score+FoodAward {
		t.Errorf("score after eating = %d, expected %d", snap.Score, before.Score+FoodAward)
	}
	if snap.CellAt(snap.Food) != CellFood {
		t.Errorf("regenerated food %v landed on the snake", snap.Food)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newRunningGame(t, 20, 111)
	g.snake = []core.Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = core.DirUp
	g.nextDir = core.DirRight
	before := g.Snapshot()

	snap := g.Tick()
	if snap.Phase != PhaseGameOver || !snap.Over {
		t.Fatalf("phase after self collision = %s, expected game over", snap.Phase)
	}
	if !slices.Equal(snap.Snake, before.Snake) {
		t.Errorf("snake changed on collision: %v -> %v", before.Snake, snap.Snake)
	}

	// Further ticks are no-ops.
	if again := g.Tick(); again.Tick != snap.Tick {
		t.Error("Tick after game over should be a no-op")
	}
}

func TestWrapAroundMove(t *testing.T) {
	g := newRunningGame(t, 10, 5)
	g.snake = []core.Point{{X: 9, Y: 3}}
	g.food = core.Point{X: 5, Y: 5}

	snap := g.Tick()
	if snap.Head() != (core.Point{X: 0, Y: 3}) {
		t.Errorf("head after wrap = %v, expected (0,3)", snap.Head())
	}
	if snap.Over {
		t.Error("wrapping should not end the game")
	}
}

func TestRestart(t *testing.T) {
	g := newRunningGame(t, 20, 9)
	head := g.snake[0]
	g.food = core.Point{X: head.X + 1, Y: head.Y}
	g.Tick()

	// Restart is ignored while running.
	if snap := g.Restart(); snap.Score != FoodAward {
		t.Error("Restart while running should be ignored")
	}

	g.over = true
	snap := g.Restart()
	if snap.Phase != PhaseNotStarted {
		t.Errorf("phase after restart = %s, expected not started", snap.Phase)
	}
	if snap.Score != 0 || snap.Length() != 1 || snap.Direction != core.DirRight {
		t.Errorf("restart did not reinitialise the board: %+v", snap)
	}
	if snap.Food != (core.Point{X: 5, Y: 5}) {
		t.Errorf("food after restart = %v, expected (5,5)", snap.Food)
	}
}

func TestResetFromAnyPhase(t *testing.T) {
	g := newRunningGame(t, 20, 9)
	g.Tick()
	if snap := g.Reset(); snap.Phase != PhaseNotStarted || snap.Tick != 0 {
		t.Errorf("Reset from running left phase %s tick %d", snap.Phase, snap.Tick)
	}
}

func TestFoodSpawnAvoidsSnake(t *testing.T) {
	g := New(6, 999)
	// Cover everything except one cell.
	g.snake = g.snake[:0]
	for y := range 6 {
		for x := range 6 {
			if x == 4 && y == 2 {
				continue
			}
			g.snake = append(g.snake, core.Point{X: x, Y: y})
		}
	}

	for i := 0; i < 20; i++ {
		if food := g.spawnFood(); food != (core.Point{X: 4, Y: 2}) {
			t.Fatalf("spawnFood() = %v, expected the only free cell (4,2)", food)
		}
	}
}

func TestFoodSpawnFullBoardTerminates(t *testing.T) {
	g := New(3, 5)
	g.snake = g.snake[:0]
	for y := range 3 {
		for x := range 3 {
			g.snake = append(g.snake, core.Point{X: x, Y: y})
		}
	}

	food := g.spawnFood()
	if food.X < 0 || food.X >= 3 || food.Y < 0 || food.Y >= 3 {
		t.Errorf("spawnFood() on a full board returned out-of-range %v", food)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New(15, 12345)
		g.Start()
		turns := map[int]core.Direction{3: core.DirDown, 8: core.DirLeft, 14: core.DirUp}
		var snap Snapshot
		for i := 0; i < 60; i++ {
			if d, ok := turns[i]; ok {
				g.SetDirection(d)
			}
			g.food = core.Advance(g.snake[0], g.nextDir, g.gridSize) // keep eating
			snap = g.Tick()
		}
		return snap
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Head() != b.Head() || a.Food != b.Food || a.Phase != b.Phase {
		t.Errorf("same seed produced different games: %+v vs %+v", a, b)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	g := New(20, 1)
	snap := g.Snapshot()
	snap.Snake[0] = core.Point{X: 0, Y: 0}

	if g.Snapshot().Head() != (core.Point{X: 10, Y: 10}) {
		t.Error("mutating a snapshot changed the game")
	}
}

func TestCellAt(t *testing.T) {
	g := newRunningGame(t, 20, 1)
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}}
	g.food = core.Point{X: 9, Y: 9}
	snap := g.Snapshot()

	tests := []struct {
		p    core.Point
		want CellKind
	}{
		{core.Point{X: 5, Y: 5}, CellHead},
		{core.Point{X: 4, Y: 5}, CellBody},
		{core.Point{X: 9, Y: 9}, CellFood},
		{core.Point{X: 0, Y: 0}, CellEmpty},
	}
	for _, tc := range tests {
		if got := snap.CellAt(tc.p); got != tc.want {
			t.Errorf("CellAt(%v) = %v, expected %v", tc.p, got, tc.want)
		}
	}
}
