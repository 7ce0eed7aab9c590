package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(1, 3)
	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
)

// NameEntry is the overlay shown after a qualifying game.
type NameEntry struct {
	input textinput.Model
	score int
}

// NewNameEntry creates a hidden name entry.
func NewNameEntry() NameEntry {
	ti := textinput.New()
	ti.Placeholder = highscore.AnonymousName
	ti.CharLimit = highscore.MaxNameLength
	ti.Width = highscore.MaxNameLength + 1
	ti.Prompt = "> "
	return NameEntry{input: ti}
}

// Open clears the input and focuses it for a new score.
func (n *NameEntry) Open(score int) tea.Cmd {
	n.score = score
	n.input.SetValue("")
	return n.input.Focus()
}

// Close blurs the input.
func (n *NameEntry) Close() {
	n.input.Blur()
}

// Value returns the typed name, untrimmed.
func (n NameEntry) Value() string {
	return n.input.Value()
}

// Update forwards messages to the text input.
func (n NameEntry) Update(msg tea.Msg) (NameEntry, tea.Cmd) {
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

// View renders the dialog box.
func (n NameEntry) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render("NEW HIGHSCORE!"),
		"",
		fmt.Sprintf("Score: %d", n.score),
		"Enter your name:",
		n.input.View(),
	)
	return dialogStyle.Render(body)
}
