package engine

// CellChange records the new value of a cell altered by a move.
type CellChange struct {
	Row   int
	Col   int
	Value uint32
}

// MoveOutcome is the result of applying one move to a board.
type MoveOutcome struct {
	Board   Board        // Board after sliding and merging (before any spawn)
	Changes []CellChange // Cells whose value differs from the input, row-major
	Score   int          // Sum of the values produced by merges
	Merges  int          // Number of merges performed
	Changed bool         // True if at least one cell changed
}

// Apply slides and merges all tiles of b in direction dir.
// The input board is not modified. An invalid direction returns the board
// unchanged.
func Apply(dir Direction, b Board) MoveOutcome {
	out := MoveOutcome{Board: b}
	if !dir.Valid() {
		return out
	}

	for line := range Size {
		// Lift the line into canonical orientation, compact, write back.
		var values [Size]uint32
		for pos := range Size {
			row, col := dir.cell(line, pos)
			values[pos] = b[row][col]
		}

		score, merges := compactLine(&values)
		out.Score += score
		out.Merges += merges

		for pos := range Size {
			row, col := dir.cell(line, pos)
			out.Board[row][col] = values[pos]
		}
	}

	for row := range Size {
		for col := range Size {
			if out.Board[row][col] != b[row][col] {
				out.Changes = append(out.Changes, CellChange{Row: row, Col: col, Value: out.Board[row][col]})
			}
		}
	}
	out.Changed = len(out.Changes) > 0

	return out
}

// compactLine slides and merges a line toward index 0 in place.
// Tiles are swept near-to-far: each one travels through empty cells until
// it hits the edge or another tile, and merges with that tile if the values
// are equal and the tile has not already been produced by a merge in this
// pass. In a run of three equal tiles the two nearest the edge merge and the
// third stays behind them.
// Returns the score gained and the number of merges.
func compactLine(line *[Size]uint32) (score, merges int) {
	var merged [Size]bool

	for pos := 1; pos < Size; pos++ {
		if line[pos] == 0 {
			continue
		}

		cur := pos
		for cur > 0 {
			next := cur - 1
			if line[next] == 0 {
				// Slide into the free cell and keep going
				line[next], line[cur] = line[cur], 0
				cur = next
				continue
			}
			if line[next] == line[cur] && !merged[next] {
				line[next] *= 2
				line[cur] = 0
				merged[next] = true
				score += int(line[next])
				merges++
			}
			break
		}
	}

	return score, merges
}
