package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// tileBackgrounds is the classic 2048 palette.
var tileBackgrounds = map[core.Color]string{
	core.ColorEmpty:     "#CCC0B2",
	core.ColorTile2:     "#EEE4DA",
	core.ColorTile4:     "#EDE0C8",
	core.ColorTile8:     "#F2B179",
	core.ColorTile16:    "#F59563",
	core.ColorTile32:    "#F67C5F",
	core.ColorTile64:    "#F65E3B",
	core.ColorTile128:   "#EDCF72",
	core.ColorTile256:   "#EDCC61",
	core.ColorTile512:   "#EDC850",
	core.ColorTile1024:  "#EDC53F",
	core.ColorTile2048:  "#EDC22E",
	core.ColorTile4096:  "#6ECC13",
	core.ColorTile8192:  "#64C00B",
	core.ColorTile16384: "#54A802",
	core.ColorTile32768: "#489002",
	core.ColorTileSuper: "#5989F7",
}

const (
	darkText  = "#776E65"
	lightText = "#F9F6F2"
	frameBg   = "#BBADA0"
)

// Theme maps palette slots to lipgloss styles for one renderer. SSH
// sessions each get their own renderer so colors match the client terminal.
type Theme struct {
	styles map[core.Color]lipgloss.Style
	base   lipgloss.Style
}

// NewTheme builds the theme for r. A nil renderer uses the default one.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	t := Theme{
		styles: map[core.Color]lipgloss.Style{
			core.ColorFrame:   r.NewStyle().Background(lipgloss.Color(frameBg)).Foreground(lipgloss.Color(darkText)),
			core.ColorText:    r.NewStyle().Foreground(lipgloss.Color("15")),
			core.ColorMuted:   r.NewStyle().Foreground(lipgloss.Color("245")),
			core.ColorAccent:  r.NewStyle().Foreground(lipgloss.Color("#EDC22E")),
			core.ColorWarning: r.NewStyle().Foreground(lipgloss.Color("#F65E3B")),
		},
		base: r.NewStyle(),
	}

	for slot, bg := range tileBackgrounds {
		fg := lightText
		if slot == core.ColorEmpty || slot == core.ColorTile2 || slot == core.ColorTile4 {
			fg = darkText
		}
		t.styles[slot] = r.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(fg))
	}
	return t
}

// Style returns the style for a cell.
func (t Theme) Style(c core.Color, bold bool) lipgloss.Style {
	style, ok := t.styles[c]
	if !ok {
		style = t.base
	}
	if bold {
		style = style.Bold(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bold != start.Bold {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.Style(start.Color, start.Bold).Render(run.String()))
		}
	}
	return sb.String()
}
