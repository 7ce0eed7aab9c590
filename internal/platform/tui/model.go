package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vibe-snake/internal/core"
	"github.com/vovakirdan/vibe-snake/internal/session"
)

// A terminal cell is treated as this many pointer units wide and tall when a
// mouse drag is converted into a swipe vector.
const (
	mouseUnitX = 10
	mouseUnitY = 20
)

// Options configures the game model.
type Options struct {
	TickInterval  time.Duration
	Width         int
	Height        int
	ScreenshotDir string // Empty disables ctrl+s
}

type dragStart struct {
	x, y int
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	sess       *session.Session
	screen     *core.Screen
	opts       Options
	keys       GameKeyMap
	nameKeys   NameEntryKeyMap
	help       help.Model
	name       NameEntry
	board      ScoreboardModel
	showScores bool
	drag       *dragStart
	quitting   bool
}

// NewModel creates a new Bubble Tea model driving sess.
func NewModel(sess *session.Session, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = core.DefaultConfig().TickInterval
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}

	return Model{
		sess:     sess,
		screen:   core.NewScreen(opts.Width, opts.Height-1),
		opts:     opts,
		keys:     DefaultGameKeyMap(),
		nameKeys: DefaultNameEntryKeyMap(),
		help:     help.New(),
		name:     NewNameEntry(),
		board:    NewScoreboardModel(sess.Highscores(), opts.Width, opts.Height),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.sess.Overlay() {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sess.Overlay() {
		switch {
		case key.Matches(msg, m.nameKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.nameKeys.Submit):
			m.submitName()
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	if m.showScores {
		switch {
		case key.Matches(msg, m.board.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.board.keys.Back):
			m.showScores = false
			return m, nil
		case key.Matches(msg, m.board.keys.Up), key.Matches(msg, m.board.keys.Down):
			updated, cmd := m.board.Update(msg)
			if board, ok := updated.(ScoreboardModel); ok {
				m.board = board
			}
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Scores):
		m.refreshBoard()
		m.showScores = true
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	m.sess.HandleKey(msg.String())
	return m, nil
}

// handleMouse turns a left-button drag into a swipe and a click into a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || m.showScores {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.drag = &dragStart{x: msg.X, y: msg.Y}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		dx := float64(msg.X-m.drag.x) * mouseUnitX
		dy := float64(msg.Y-m.drag.y) * mouseUnitY
		m.drag = nil
		if dx == 0 && dy == 0 {
			m.sess.HandleTap()
		} else {
			m.sess.HandleSwipe(dx, dy)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Width = msg.Width
	m.opts.Height = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.board.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOverlay := m.sess.Overlay()
	snap := m.sess.Tick()

	if m.sess.PollSync() {
		m.refreshBoard()
	}

	cmds := []tea.Cmd{tickCmd(m.opts.TickInterval)}
	if m.sess.Overlay() && !wasOverlay {
		m.showScores = false
		cmds = append(cmds, m.name.Open(snap.Score))
	}
	return m, tea.Batch(cmds...)
}

// submitName stores the typed name and shows the updated table.
func (m *Model) submitName() {
	_, ok := m.sess.SubmitName(context.Background(), m.name.Value())
	m.name.Close()
	m.refreshBoard()
	m.showScores = ok
}

func (m *Model) refreshBoard() {
	if e, ok := m.sess.LastEntry(); ok {
		m.board.SetScores(m.sess.Highscores(), &e)
		return
	}
	m.board.SetScores(m.sess.Highscores(), nil)
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	DrawBoard(m.screen, m.sess.Snapshot())

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("vibesnake_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showScores {
		return m.board.Render()
	}

	var body string
	var helpView string
	if m.sess.Overlay() {
		body = lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, m.name.View())
		helpView = m.help.View(m.nameKeys)
	} else {
		DrawBoard(m.screen, m.sess.Snapshot())
		body = RenderScreen(m.screen)
		helpView = m.help.View(m.keys)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return body + "\n" + helpStyle.Render(helpView)
}

// ShowingScores reports whether the highscore board is open.
func (m Model) ShowingScores() bool {
	return m.showScores
}

// Run starts the Bubble Tea program for sess on the local terminal.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
