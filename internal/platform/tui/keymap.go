package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Undo    key.Binding
	Reset   key.Binding
	Ladder  key.Binding
	Fixture key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Undo, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
// Disabled debug bindings are hidden by the help model.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Undo, k.Reset},
		{k.Ladder, k.Fixture},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings. The debug board keys are only
// enabled when debug is true.
func DefaultKeyMap(debug bool) KeyMap {
	k := KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d/l", "right"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Ladder: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "debug ladder"),
		),
		Fixture: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "debug fixture"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	k.Ladder.SetEnabled(debug)
	k.Fixture.SetEnabled(debug)
	return k
}
