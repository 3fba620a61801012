// Package tui provides the Bubble Tea frontend: the game screen, the scores
// table and the SSH server that serves the game screen to remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// highlightDuration is how long changed cells stay marked after a move.
const highlightDuration = 700 * time.Millisecond

// fadeMsg clears the highlight of move seq, unless a newer move replaced it.
type fadeMsg struct {
	seq int
}

// fadeCmd returns a Bubble Tea command that expires the highlight of move seq.
func fadeCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return fadeMsg{seq: seq}
	})
}
