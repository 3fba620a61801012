package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// eventBuffer collects session notifications for the current key press.
type eventBuffer struct {
	cells      []engine.Cell
	highRaised bool
	genFailed  bool
}

func (b *eventBuffer) reset() {
	*b = eventBuffer{}
}

func (b *eventBuffer) CellChanged(row, col int, _ uint32) {
	b.cells = append(b.cells, engine.Cell{Row: row, Col: col})
}

func (b *eventBuffer) ScoreChanged(int) {}

func (b *eventBuffer) HighScoreChanged(int) {
	b.highRaised = true
}

func (b *eventBuffer) GenerationFailed() {
	b.genFailed = true
}

// Options configures a Model.
type Options struct {
	Runtime core.RuntimeConfig
	Debug   bool // enables the debug board keys
	Theme   Theme
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one game of 2048.
type Model struct {
	sess   *session.Session
	events *eventBuffer
	screen *core.Screen
	theme  Theme
	keys   KeyMap
	help   help.Model
	logger *log.Logger

	config core.RuntimeConfig

	view     boardView
	seq      int // incremented per handled key, used to expire highlights
	quitting bool
}

// NewModel creates a model and starts a new game. store and opts are
// passed to session.New; the model adds its own renderer.
func NewModel(store session.HighScoreStore, opts []session.Option, o Options) Model {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Theme.styles == nil {
		o.Theme = NewTheme(nil)
	}

	events := &eventBuffer{}
	all := append([]session.Option{session.WithLogger(o.Logger)}, opts...)
	all = append(all, session.WithRenderer(events))
	if o.Runtime.Seed != 0 {
		all = append(all, session.WithSeed(o.Runtime.Seed))
	}

	m := Model{
		sess:   session.New(store, all...),
		events: events,
		screen: core.NewScreen(viewWidth, viewHeight),
		theme:  o.Theme,
		keys:   DefaultKeyMap(o.Debug),
		help:   help.New(),
		logger: o.Logger,
		config: o.Runtime,
	}
	m.help.Width = o.Runtime.ScreenW

	m.sess.Reset()
	m.events.reset()
	m.view = m.snapshot(engine.Board{}, false)
	return m
}

// Session returns the game session driven by the model.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("2048")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case fadeMsg:
		if msg.seq == m.seq {
			m.view.Highlight = nil
			m.view.Gained = 0
			m.view.NewBest = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.sess.Finish(); err != nil {
			m.logger.Warn("could not record game", "error", err)
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.apply(func() { m.sess.Handle(session.CommandUp) })
	case key.Matches(msg, m.keys.Down):
		return m.apply(func() { m.sess.Handle(session.CommandDown) })
	case key.Matches(msg, m.keys.Left):
		return m.apply(func() { m.sess.Handle(session.CommandLeft) })
	case key.Matches(msg, m.keys.Right):
		return m.apply(func() { m.sess.Handle(session.CommandRight) })

	case key.Matches(msg, m.keys.Undo):
		return m.apply(func() { m.sess.Restore() })
	case key.Matches(msg, m.keys.Reset):
		return m.apply(func() { m.sess.Reset() })

	case key.Matches(msg, m.keys.Ladder):
		return m.apply(func() { m.loadDebug(session.DebugLadder) })
	case key.Matches(msg, m.keys.Fixture):
		return m.apply(func() { m.loadDebug(session.DebugFixture) })
	}

	return m, nil
}

func (m Model) loadDebug(name string) {
	if _, err := m.sess.LoadDebugBoard(name); err != nil {
		m.logger.Error("debug board", "error", err)
	}
}

// apply runs one session operation and rebuilds the view from the events
// it produced.
func (m Model) apply(op func()) (tea.Model, tea.Cmd) {
	before := m.sess.State()
	m.events.reset()
	op()

	m.view = m.snapshot(before.Board, m.events.highRaised && m.sess.State().HighScore > before.HighScore)
	m.view.Gained = max(m.sess.State().Score-before.Score, 0)
	m.view.Full = m.events.genFailed

	m.seq++
	return m, fadeCmd(m.seq, highlightDuration)
}

// snapshot builds the view from the session state. Only cells reported by
// the session whose value differs from prev are highlighted.
func (m Model) snapshot(prev engine.Board, newBest bool) boardView {
	state := m.sess.State()
	v := boardView{
		Board:     state.Board,
		Score:     state.Score,
		HighScore: state.HighScore,
		NewBest:   newBest,
		Over:      m.sess.Over(),
		Highlight: make(map[engine.Cell]bool),
	}
	for _, c := range m.events.cells {
		if state.Board[c.Row][c.Col] != prev[c.Row][c.Col] {
			v.Highlight[c] = true
		}
	}
	return v
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.config.ScreenW, m.config.ScreenH
	if w > 0 && h > 0 && (w < viewWidth || h < viewHeight+1) {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			m.theme.Style(core.ColorWarning, true).Render("Window too small")+"\n"+
				m.theme.Style(core.ColorMuted, false).Render("Please resize terminal"))
	}

	renderBoard(m.screen, m.view)
	content := lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen, m.theme),
		m.theme.Style(core.ColorMuted, false).Render(m.help.View(m.keys)),
	)

	if w <= 0 || h <= 0 {
		return content
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(store session.HighScoreStore, opts []session.Option, o Options) error {
	model := NewModel(store, opts, o)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
