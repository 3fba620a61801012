package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// rowText returns line y of the screen as plain text.
func rowText(s *core.Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

func TestRenderBoardLayout(t *testing.T) {
	s := core.NewScreen(viewWidth, viewHeight)
	renderBoard(s, boardView{
		Board:     engine.Board{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 2048, 0}, {0, 0, 0, 0}},
		Score:     12,
		HighScore: 40,
		Highlight: map[engine.Cell]bool{{Row: 0, Col: 0}: true},
	})

	if !strings.Contains(rowText(s, 0), "2048") {
		t.Errorf("title row = %q", rowText(s, 0))
	}
	if !strings.HasPrefix(rowText(s, 1), "Score: 12") || !strings.HasSuffix(rowText(s, 1), "Best: 40") {
		t.Errorf("HUD row = %q", rowText(s, 1))
	}

	frame := core.NewRect(0, hudHeight, boardWidth, boardHeight)
	if c := s.GetCell(frame.X, frame.Y); c.Color != core.ColorFrame {
		t.Errorf("frame corner = %+v", c)
	}

	first := tileRect(frame, 0, 0)
	_, cy := first.Center()
	if !strings.Contains(rowText(s, cy), "2") {
		t.Errorf("tile row = %q", rowText(s, cy))
	}
	if c := s.GetCell(first.X+1, first.Y); c.Color != core.ColorTile2 {
		t.Errorf("tile (0,0) color = %d, want ColorTile2", c.Color)
	}
	if s.Get(first.X, first.Y) != '•' {
		t.Error("highlighted tile should carry a marker")
	}

	big := tileRect(frame, 2, 2)
	_, by := big.Center()
	if got := rowText(s, by)[big.X:big.Right()]; strings.TrimSpace(got) != "2048" {
		t.Errorf("tile (2,2) text = %q", got)
	}
	if c := s.GetCell(big.X, big.Y); c.Color != core.ColorTile2048 || c.Rune == '•' {
		t.Errorf("tile (2,2) cell = %+v", c)
	}

	empty := tileRect(frame, 3, 3)
	if c := s.GetCell(empty.X, empty.Y); c.Color != core.ColorEmpty {
		t.Errorf("empty tile color = %d", c.Color)
	}

	if strings.TrimSpace(rowText(s, viewHeight-1)) != "" {
		t.Errorf("status line should be empty, got %q", rowText(s, viewHeight-1))
	}
}

func TestRenderBoardStatus(t *testing.T) {
	s := core.NewScreen(viewWidth, viewHeight)

	renderBoard(s, boardView{Over: true})
	if !strings.Contains(rowText(s, viewHeight-1), "No moves left") {
		t.Errorf("status = %q", rowText(s, viewHeight-1))
	}

	renderBoard(s, boardView{Full: true})
	if !strings.Contains(rowText(s, viewHeight-1), "Board full") {
		t.Errorf("status = %q", rowText(s, viewHeight-1))
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawStyledText(0, 0, "abc", core.ColorAccent, true)
	s.DrawText(4, 0, "def")
	s.DrawRect(core.NewRect(0, 1, 10, 1), ' ', core.ColorTile8)
	s.DrawText(2, 1, "8")

	out := RenderScreen(s, NewTheme(nil))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "abc") || !strings.Contains(lines[0], "def") || !strings.Contains(lines[1], "8") {
		t.Errorf("rendered text lost: %q", out)
	}
}

func TestThemeCoversTiles(t *testing.T) {
	theme := NewTheme(nil)
	for v := uint32(2); v <= 32768; v <<= 1 {
		if _, ok := theme.styles[core.TileColor(v)]; !ok {
			t.Errorf("no style for tile %d", v)
		}
	}
	if _, ok := theme.styles[core.ColorTileSuper]; !ok {
		t.Error("no style for oversized tiles")
	}
}

func TestKeyMap(t *testing.T) {
	keys := DefaultKeyMap(false)

	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, keys.Up},
		{runes("w"), keys.Up},
		{runes("k"), keys.Up},
		{tea.KeyMsg{Type: tea.KeyDown}, keys.Down},
		{runes("s"), keys.Down},
		{tea.KeyMsg{Type: tea.KeyLeft}, keys.Left},
		{runes("a"), keys.Left},
		{runes("h"), keys.Left},
		{tea.KeyMsg{Type: tea.KeyRight}, keys.Right},
		{runes("l"), keys.Right},
		{runes("u"), keys.Undo},
		{runes("r"), keys.Reset},
		{runes("q"), keys.Quit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q should match %v", tt.msg.String(), tt.binding.Help())
		}
	}

	if key.Matches(runes("0"), keys.Ladder) {
		t.Error("debug keys should be disabled by default")
	}
	if !key.Matches(runes("0"), DefaultKeyMap(true).Ladder) {
		t.Error("debug keys should be enabled with debug")
	}
}
