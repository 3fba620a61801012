package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	tileWidth  = 7
	tileHeight = 3
	tileGap    = 1
	hudHeight  = 3

	boardWidth  = engine.Size*tileWidth + (engine.Size+1)*tileGap
	boardHeight = engine.Size*tileHeight + (engine.Size+1)*tileGap

	viewWidth  = boardWidth
	viewHeight = hudHeight + boardHeight + 1 // +1 for the status line
)

// boardView is everything the game screen shows.
type boardView struct {
	Board     engine.Board
	Score     int
	HighScore int
	Gained    int  // score gained by the last move
	NewBest   bool // the last move raised the high score
	Over      bool // no move can change the board
	Full      bool // the last spawn found no empty cell
	Highlight map[engine.Cell]bool
}

// renderBoard draws v into dst, which must be viewWidth x viewHeight.
func renderBoard(dst *core.Screen, v boardView) {
	dst.Clear()
	renderHUD(dst, v)

	frame := core.NewRect(0, hudHeight, boardWidth, boardHeight)
	dst.DrawRect(frame, ' ', core.ColorFrame)

	for row := range engine.Size {
		for col := range engine.Size {
			drawTile(dst, tileRect(frame, row, col), v.Board[row][col], v.Highlight[engine.Cell{Row: row, Col: col}])
		}
	}

	renderStatus(dst, v, frame.Bottom())
}

func renderHUD(dst *core.Screen, v boardView) {
	title := "2048"
	dst.DrawStyledText(core.CenterIn(core.NewRect(0, 0, viewWidth, 1), title), 0, title, core.ColorAccent, true)

	score := fmt.Sprintf("Score: %d", v.Score)
	dst.DrawStyledText(0, 1, score, core.ColorText, true)
	if v.Gained > 0 {
		dst.DrawStyledText(len(score)+1, 1, fmt.Sprintf("+%d", v.Gained), core.ColorAccent, false)
	}

	best := fmt.Sprintf("Best: %d", v.HighScore)
	color := core.ColorMuted
	if v.NewBest {
		color = core.ColorAccent
	}
	dst.DrawStyledText(viewWidth-len(best), 1, best, color, v.NewBest)
}

func tileRect(frame core.Rect, row, col int) core.Rect {
	return core.NewRect(
		frame.X+tileGap+col*(tileWidth+tileGap),
		frame.Y+tileGap+row*(tileHeight+tileGap),
		tileWidth,
		tileHeight,
	)
}

func drawTile(dst *core.Screen, r core.Rect, value uint32, highlight bool) {
	color := core.TileColor(value)
	dst.DrawRect(r, ' ', color)

	if value != 0 {
		text := strconv.FormatUint(uint64(value), 10)
		_, cy := r.Center()
		dst.DrawStyledText(core.CenterIn(r, text), cy, text, color, true)
	}

	if highlight {
		dst.SetCell(r.X, r.Y, core.Cell{Rune: '•', Color: color, Bold: true})
	}
}

func renderStatus(dst *core.Screen, v boardView, y int) {
	var msg string
	switch {
	case v.Over:
		msg = "No moves left (u undo, r new)"
	case v.Full:
		msg = "Board full"
	default:
		return
	}
	dst.DrawStyledText(core.Clamp(core.CenterIn(core.NewRect(0, y, viewWidth, 1), msg), 0, viewWidth), y, msg, core.ColorWarning, true)
}
