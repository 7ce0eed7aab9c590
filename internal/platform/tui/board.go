package tui

import (
	"fmt"

	"github.com/vovakirdan/vibe-snake/internal/core"
	"github.com/vovakirdan/vibe-snake/internal/snake"
)

const (
	hudHeight = 2 // Status line + separator
	cellWidth = 2 // Terminal columns per grid cell, keeps cells roughly square
)

// Viewport is the window of the torus that fits on screen. When the grid is
// larger than the terminal the window follows the head and wraps around the
// edges.
type Viewport struct {
	OriginX, OriginY int // Grid cell shown at the top-left corner
	Cols, Rows       int // Visible grid cells
}

// NewViewport computes the visible window for a board of n cells on a
// screen area of width×height characters, centred on head.
func NewViewport(head core.Point, n, width, height int) Viewport {
	cols := min(n, max(width/cellWidth, 1))
	rows := min(n, max(height, 1))
	return Viewport{
		OriginX: viewOrigin(head.X, n, cols),
		OriginY: viewOrigin(head.Y, n, rows),
		Cols:    cols,
		Rows:    rows,
	}
}

func viewOrigin(head, n, size int) int {
	if size >= n {
		return 0
	}
	return core.Wrap(head-size/2, n)
}

// Cell maps a visible position to the grid cell shown there.
func (v Viewport) Cell(vx, vy, n int) core.Point {
	return core.Point{X: (v.OriginX + vx) % n, Y: (v.OriginY + vy) % n}
}

// Full reports whether the whole grid is visible.
func (v Viewport) Full(n int) bool {
	return v.Cols >= n && v.Rows >= n
}

// DrawBoard renders the HUD, the board and the phase banner into dst.
func DrawBoard(dst *core.Screen, snap snake.Snapshot) {
	dst.Clear()
	drawHUD(dst, snap)

	// Frame around the board, sized to the visible window.
	areaW := dst.Width() - 2
	areaH := dst.Height() - hudHeight - 2
	if areaW < cellWidth || areaH < 1 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorRed)
		return
	}

	n := snap.GridSize
	vp := NewViewport(snap.Head(), n, areaW, areaH)
	frameW := vp.Cols*cellWidth + 2
	frameH := vp.Rows + 2
	frame := core.NewRect((dst.Width()-frameW)/2, hudHeight, frameW, frameH)
	borderColor := core.ColorGray
	if !vp.Full(n) {
		// Open edges: the board continues beyond the frame.
		borderColor = core.ColorCyan
	}
	dst.DrawBox(frame, borderColor)

	for vy := range vp.Rows {
		for vx := range vp.Cols {
			r, c := cellGlyph(snap.CellAt(vp.Cell(vx, vy, n)))
			if r == 0 {
				continue
			}
			x := frame.X + 1 + vx*cellWidth
			y := frame.Y + 1 + vy
			for i := range cellWidth {
				dst.SetColored(x+i, y, r, c)
			}
		}
	}

	switch snap.Phase {
	case snake.PhaseNotStarted:
		drawBanner(dst, "VIBE SNAKE", "Press SPACE, tap or swipe to start")
	case snake.PhaseGameOver:
		drawBanner(dst, "GAME OVER", fmt.Sprintf("Score: %d  -  SPACE to play again", snap.Score))
	}
}

func cellGlyph(k snake.CellKind) (rune, core.Color) {
	switch k {
	case snake.CellHead:
		return '█', core.ColorBrightGreen
	case snake.CellBody:
		return '▓', core.ColorGreen
	case snake.CellFood:
		return '●', core.ColorBrightRed
	default:
		return 0, core.ColorDefault
	}
}

// drawHUD draws the top status bar.
func drawHUD(dst *core.Screen, snap snake.Snapshot) {
	hud := fmt.Sprintf(" Vibe Snake  Score: %d  Length: %d  Direction: %s", snap.Score, snap.Length(), snap.DirName)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// drawBanner draws a centered two-line box over the board.
func drawBanner(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
