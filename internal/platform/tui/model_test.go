package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/session"
	"github.com/vovakirdan/vibe-snake/internal/snake"
)

func newTestModel(t *testing.T, gridSize int) (Model, *session.Session) {
	t.Helper()
	sess := session.New(session.Options{ID: "tui-test", GridSize: gridSize, Seed: 1}, session.Deps{
		Scores: highscore.NewStore(highscore.NewMemoryKV(), nil),
	})
	return NewModel(sess, Options{TickInterval: time.Millisecond, Width: 80, Height: 24}), sess
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestModelStartsAndMoves(t *testing.T) {
	m, sess := newTestModel(t, 10)

	m = update(t, m, spaceKey)
	if sess.Snapshot().Phase != snake.PhaseRunning {
		t.Fatalf("space should start the game, phase = %s", sess.Snapshot().Phase)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	update(t, m, TickMsg(time.Now()))
	if head := sess.Snapshot().Head(); head.X != 5 || head.Y != 6 {
		t.Errorf("head = %v, expected (5,6) after turning down", head)
	}
}

func TestModelMouseSwipe(t *testing.T) {
	m, sess := newTestModel(t, 10)
	m = update(t, m, spaceKey)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 10, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg(time.Now()))

	if head := sess.Snapshot().Head(); head.X != 5 || head.Y != 4 {
		t.Errorf("head = %v, expected (5,4) after swiping up", head)
	}
}

func TestModelClickStarts(t *testing.T) {
	m, sess := newTestModel(t, 10)

	m = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if sess.Snapshot().Phase != snake.PhaseRunning {
		t.Error("a click should act as a tap and start the game")
	}
}

func TestModelNameEntryFlow(t *testing.T) {
	m, sess := newTestModel(t, 2)

	// Same route as the session tests: right, up onto the food, up into the tail.
	m = update(t, m, spaceKey)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	if !sess.Overlay() {
		t.Fatal("overlay should open after a qualifying game")
	}
	if !strings.Contains(m.View(), "NEW HIGHSCORE") {
		t.Error("view should show the name dialog")
	}

	// Letters go to the name, not to the game or the quit binding.
	m = update(t, m, keyRunes("q"))
	m = update(t, m, keyRunes("Zed"))
	if m.quitting {
		t.Fatal("q should be typed into the name while the overlay is open")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sess.Overlay() {
		t.Error("enter should close the overlay")
	}
	if !m.ShowingScores() {
		t.Error("board should open after a successful submit")
	}
	table := sess.Highscores()
	if len(table) != 1 || table[0].Name != "qZed" || table[0].Score != 10 {
		t.Errorf("Highscores() = %v", table)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ShowingScores() {
		t.Error("esc should close the board")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, 10)

	next, cmd := m.Update(keyRunes("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelToggleScores(t *testing.T) {
	m, _ := newTestModel(t, 10)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.ShowingScores() {
		t.Fatal("tab should open the board")
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty board message missing")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ShowingScores() {
		t.Error("tab should close the board")
	}
}
