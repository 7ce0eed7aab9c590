// Package input translates raw device events (keys, swipes, taps and on-screen
// buttons) into game intents, one intent per event.
package input

import (
	"github.com/vovakirdan/vibe-snake/internal/core"
	"github.com/vovakirdan/vibe-snake/internal/snake"
)

// DefaultSwipeThreshold is the minimum displacement on the dominant axis for
// a drag to count as a swipe.
const DefaultSwipeThreshold = 50.0

// Kind is the semantic category of an intent.
type Kind int

const (
	KindNone    Kind = iota
	KindStart        // Begin a fresh game
	KindRestart      // Leave game over for a fresh board
	KindTurn         // Change direction (see Intent.Dir)
	KindSubmit       // Confirm the name-entry overlay
)

// String returns a human-readable name for the intent kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStart:
		return "Start"
	case KindRestart:
		return "Restart"
	case KindTurn:
		return "Turn"
	case KindSubmit:
		return "Submit"
	default:
		return "Unknown"
	}
}

// Intent is what a raw event means to the game.
type Intent struct {
	Kind Kind
	Dir  core.Direction // Only meaningful for KindTurn
}

// None is the empty intent.
var None = Intent{Kind: KindNone}

// Turn builds a direction-change intent.
func Turn(d core.Direction) Intent {
	return Intent{Kind: KindTurn, Dir: d}
}

type keyRole int

const (
	roleNone keyRole = iota
	roleLifecycle
	roleSubmit
	roleDir
)

type keyBinding struct {
	role keyRole
	dir  core.Direction
}

// keyBindings accepts both browser KeyboardEvent.code values and Bubble Tea
// key names so every surface can share one table.
var keyBindings = map[string]keyBinding{
	"Space": {role: roleLifecycle},
	" ":     {role: roleLifecycle},
	"space": {role: roleLifecycle},

	"Enter": {role: roleSubmit},
	"enter": {role: roleSubmit},

	"ArrowUp": {role: roleDir, dir: core.DirUp},
	"KeyW":    {role: roleDir, dir: core.DirUp},
	"up":      {role: roleDir, dir: core.DirUp},
	"w":       {role: roleDir, dir: core.DirUp},

	"ArrowDown": {role: roleDir, dir: core.DirDown},
	"KeyS":      {role: roleDir, dir: core.DirDown},
	"down":      {role: roleDir, dir: core.DirDown},
	"s":         {role: roleDir, dir: core.DirDown},

	"ArrowLeft": {role: roleDir, dir: core.DirLeft},
	"KeyA":      {role: roleDir, dir: core.DirLeft},
	"left":      {role: roleDir, dir: core.DirLeft},
	"a":         {role: roleDir, dir: core.DirLeft},

	"ArrowRight": {role: roleDir, dir: core.DirRight},
	"KeyD":       {role: roleDir, dir: core.DirRight},
	"right":      {role: roleDir, dir: core.DirRight},
	"d":          {role: roleDir, dir: core.DirRight},
}

// Mapper turns device events into intents for the current game phase.
// While the name-entry overlay is shown only its submit key gets through.
type Mapper struct {
	swipeThreshold float64
	overlay        bool
}

// NewMapper creates a mapper. A non-positive threshold selects
// DefaultSwipeThreshold.
func NewMapper(swipeThreshold float64) *Mapper {
	if swipeThreshold <= 0 {
		swipeThreshold = DefaultSwipeThreshold
	}
	return &Mapper{swipeThreshold: swipeThreshold}
}

// SetOverlay marks the name-entry overlay as shown or hidden.
func (m *Mapper) SetOverlay(active bool) {
	m.overlay = active
}

// Overlay reports whether the name-entry overlay is active.
func (m *Mapper) Overlay() bool {
	return m.overlay
}

// SwipeThreshold returns the configured swipe threshold.
func (m *Mapper) SwipeThreshold() float64 {
	return m.swipeThreshold
}

// MapKey translates a key code.
func (m *Mapper) MapKey(code string, phase snake.Phase) Intent {
	b, ok := keyBindings[code]
	if !ok {
		return None
	}

	if m.overlay {
		if b.role == roleSubmit {
			return Intent{Kind: KindSubmit}
		}
		return None
	}

	switch b.role {
	case roleLifecycle:
		return lifecycle(phase)
	case roleDir:
		if phase == snake.PhaseRunning {
			return Turn(b.dir)
		}
	}
	return None
}

// MapSwipe translates a drag vector. The axis with the larger displacement
// wins; ties and drags at or below the threshold are ignored.
func (m *Mapper) MapSwipe(dx, dy float64, phase snake.Phase) Intent {
	if m.overlay {
		return None
	}

	d, ok := m.swipeDirection(dx, dy)
	if !ok {
		return None
	}

	switch phase {
	case snake.PhaseNotStarted:
		return Intent{Kind: KindStart}
	case snake.PhaseRunning:
		return Turn(d)
	}
	return None
}

func (m *Mapper) swipeDirection(dx, dy float64) (core.Direction, bool) {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax == ay:
		return core.DirRight, false
	case ax > ay:
		if ax <= m.swipeThreshold {
			return core.DirRight, false
		}
		if dx > 0 {
			return core.DirRight, true
		}
		return core.DirLeft, true
	default:
		if ay <= m.swipeThreshold {
			return core.DirRight, false
		}
		if dy > 0 {
			return core.DirDown, true
		}
		return core.DirUp, true
	}
}

// MapTap translates a tap on the board.
func (m *Mapper) MapTap(phase snake.Phase) Intent {
	if m.overlay {
		return None
	}
	return lifecycle(phase)
}

// MapButton translates an on-screen directional button.
func (m *Mapper) MapButton(d core.Direction, phase snake.Phase) Intent {
	if m.overlay {
		return None
	}
	switch phase {
	case snake.PhaseNotStarted:
		return Intent{Kind: KindStart}
	case snake.PhaseRunning:
		return Turn(d)
	}
	return None
}

// lifecycle picks start or restart depending on the phase.
func lifecycle(phase snake.Phase) Intent {
	switch phase {
	case snake.PhaseNotStarted:
		return Intent{Kind: KindStart}
	case snake.PhaseGameOver:
		return Intent{Kind: KindRestart}
	}
	return None
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
