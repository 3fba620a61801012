package session

import "github.com/vovakirdan/tui-2048/internal/engine"

// Snapshot is a copy of the board and score taken before a move.
type Snapshot struct {
	Board engine.Board
	Score int
}

// History holds a single snapshot for one level of undo.
// The zero value restores to an empty board with score 0.
type History struct {
	snap Snapshot
}

// Save stores a copy of board and score, replacing the previous snapshot.
func (h *History) Save(board engine.Board, score int) {
	// engine.Board is an array, so assignment copies every cell.
	h.snap = Snapshot{Board: board, Score: score}
}

// Restore returns the stored snapshot. Calling it again without an
// intervening Save returns the same snapshot.
func (h *History) Restore() Snapshot {
	return h.snap
}
