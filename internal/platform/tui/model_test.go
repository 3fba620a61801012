package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var fixtureBoard = engine.Board{
	{0, 32, 32, 32},
	{0, 0, 32, 32},
	{32, 32, 32, 32},
	{0, 0, 0, 32},
}

type memRecorder struct {
	games []session.GameResult
}

func (r *memRecorder) RecordGame(g session.GameResult) error {
	r.games = append(r.games, g)
	return nil
}

func newTestModel(t *testing.T, debug bool, opts ...session.Option) Model {
	t.Helper()
	opts = append([]session.Option{session.WithSeed(1)}, opts...)
	return NewModel(nil, opts, Options{
		Debug:  debug,
		Logger: log.New(io.Discard),
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestNewModelStartsGame(t *testing.T) {
	m := newTestModel(t, false)

	if got := m.Session().State().Board.TileCount(); got != 1 {
		t.Errorf("new game should have 1 tile, got %d", got)
	}
	if len(m.view.Highlight) != 0 {
		t.Error("new game should start without highlights")
	}
}

func TestModelDebugKeys(t *testing.T) {
	m := newTestModel(t, false)
	before := m.Session().State().Board

	m, _ = update(t, m, runes("1"))
	if m.Session().State().Board != before {
		t.Error("debug key must be ignored without --debug")
	}

	m = newTestModel(t, true)
	m, _ = update(t, m, runes("1"))
	if m.Session().State().Board != fixtureBoard {
		t.Errorf("fixture not loaded:\n%v", m.Session().State().Board)
	}

	m, _ = update(t, m, runes("0"))
	if m.Session().State().Board[3][3] != 32768 {
		t.Errorf("ladder not loaded:\n%v", m.Session().State().Board)
	}
}

func TestModelMoveUpdatesView(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, runes("1"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if cmd == nil {
		t.Error("move should schedule the highlight fade")
	}

	// Rows become [64 32 0 0], [64 0 0 0], [64 64 0 0], [32 0 0 0] plus one spawn
	board := m.Session().State().Board
	if board[0][0] != 64 || board[0][1] != 32 || board[2][1] != 64 || board[3][0] != 32 {
		t.Errorf("unexpected board after left:\n%v", board)
	}
	if board.TileCount() != 7 {
		t.Errorf("TileCount = %d, want 6 merged tiles + 1 spawn", board.TileCount())
	}

	if m.view.Score != 256 || m.view.Gained != 256 {
		t.Errorf("score = %d gained = %d, want 256/256", m.view.Score, m.view.Gained)
	}
	if !m.view.NewBest || m.view.HighScore != 256 {
		t.Errorf("high score should be raised: %+v", m.view)
	}
	if !m.view.Highlight[engine.Cell{Row: 0, Col: 0}] {
		t.Error("merged cell should be highlighted")
	}
	// (3,0) went 0 -> 32 and (0,1) stayed 32
	if m.view.Highlight[engine.Cell{Row: 0, Col: 1}] {
		t.Error("unchanged cell must not be highlighted")
	}
}

func TestModelFadeClearsHighlight(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	// A stale fade is ignored
	m, _ = update(t, m, fadeMsg{seq: m.seq - 1})
	if len(m.view.Highlight) == 0 {
		t.Fatal("stale fade should not clear the highlight")
	}

	m, _ = update(t, m, fadeMsg{seq: m.seq})
	if len(m.view.Highlight) != 0 || m.view.Gained != 0 || m.view.NewBest {
		t.Errorf("fade should clear transient marks: %+v", m.view)
	}
}

func TestModelUndo(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runes("u"))

	state := m.Session().State()
	if state.Board != fixtureBoard || state.Score != 0 {
		t.Errorf("undo should restore the fixture, got score %d\n%v", state.Score, state.Board)
	}
	if m.view.Score != 0 {
		t.Errorf("view score = %d, want 0", m.view.Score)
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, runes("r"))

	state := m.Session().State()
	if state.Board.TileCount() != 1 || state.Score != 0 {
		t.Errorf("reset should start a new game: %+v", state)
	}
}

func TestModelQuitRecordsGame(t *testing.T) {
	rec := &memRecorder{}
	m := newTestModel(t, true, session.WithRecorder(rec))
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
	if len(rec.games) != 1 || rec.games[0].Score != 256 {
		t.Errorf("recorded games = %+v", rec.games)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("small window should show a resize hint")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	view := m.View()
	for _, want := range []string{"2048", "Score: 256", "Best: 256", "64"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	m, _ = update(t, m, runes("?"))
	if m.help.ShowAll {
		t.Error("? should collapse the help")
	}
}
