package session

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Debug board names.
const (
	DebugLadder  = "ladder"  // 0, 2, 4, ... 32768 in row-major order
	DebugFixture = "fixture" // runs of 32s for checking merge rules by hand
)

var debugBoards = map[string]func() engine.Board{
	DebugLadder: func() engine.Board {
		var b engine.Board
		for i := range engine.Size * engine.Size {
			b[i/engine.Size][i%engine.Size] = 1 << i
		}
		b[0][0] = 0
		return b
	},
	DebugFixture: func() engine.Board {
		return engine.Board{
			{0, 32, 32, 32},
			{0, 0, 32, 32},
			{32, 32, 32, 32},
			{0, 0, 0, 32},
		}
	},
}

// DebugBoards returns the names of the available debug boards.
func DebugBoards() []string {
	names := make([]string, 0, len(debugBoards))
	for name := range debugBoards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDebugBoard replaces the board with a named diagnostic layout. The
// score is left alone and no tile is spawned. The previous board is kept as
// the undo snapshot.
func (s *Session) LoadDebugBoard(name string) ([]Event, error) {
	build, ok := debugBoards[name]
	if !ok {
		return nil, fmt.Errorf("session: unknown debug board %q", name)
	}

	s.history.Save(s.board, s.score.Score())

	next := build()
	var events []Event
	for row := range engine.Size {
		for col := range engine.Size {
			if next[row][col] != s.board[row][col] {
				events = append(events, cellChanged(row, col, next[row][col]))
			}
		}
	}
	s.board = next

	s.logger.Debug("debug board loaded", "name", name)
	Dispatch(s.renderer, events)
	return events, nil
}
