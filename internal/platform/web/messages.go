package web

import (
	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/snake"
)

// Client message types.
const (
	MsgKey    = "key"
	MsgSwipe  = "swipe"
	MsgTap    = "tap"
	MsgButton = "button"
	MsgName   = "name"
	MsgReset  = "reset"
)

// Server message types.
const (
	MsgHello      = "hello"
	MsgState      = "state"
	MsgHighscores = "highscores"
	MsgError      = "error"
)

// ClientMessage is one input event sent by the browser.
type ClientMessage struct {
	Type      string  `json:"type"`
	Code      string  `json:"code,omitempty"`      // key: KeyboardEvent.code
	DX        float64 `json:"dx,omitempty"`        // swipe
	DY        float64 `json:"dy,omitempty"`        // swipe
	Direction string  `json:"direction,omitempty"` // button: UP, DOWN, LEFT, RIGHT
	Name      string  `json:"name,omitempty"`      // name, or key Enter under the overlay
}

// Frame is the per-tick view of one game.
type Frame struct {
	Game    snake.Snapshot `json:"game"`
	Overlay bool           `json:"overlay"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type       string           `json:"type"`
	SessionID  string           `json:"sessionId,omitempty"`
	State      *Frame           `json:"state,omitempty"`
	Highscores highscore.Table  `json:"highscores,omitempty"`
	Entry      *highscore.Entry `json:"entry,omitempty"`
	Message    string           `json:"message,omitempty"`
}
