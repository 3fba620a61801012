// Package engine implements the 2048 board transition rules: sliding and
// merging tiles in one of four directions and spawning new tiles.
// It has no dependencies on rendering, input or persistence.
package engine

import (
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// Board is a 4x4 grid of tile values indexed [row][col].
// 0 means empty. Normal play only produces powers of two >= 2, but nothing
// here enforces that: debug boards are allowed to hold other values.
type Board [Size][Size]uint32

// Cell addresses a single board position.
type Cell struct {
	Row, Col int
}

// Get returns the value at (row, col).
func (b Board) Get(row, col int) uint32 {
	return b[row][col]
}

// Set stores value at (row, col).
func (b *Board) Set(row, col int, value uint32) {
	b[row][col] = value
}

// IsCellEmpty reports whether (row, col) holds no tile.
func (b Board) IsCellEmpty(row, col int) bool {
	return b[row][col] == 0
}

// AnyEmptyCell reports whether at least one cell is empty.
func (b Board) AnyEmptyCell() bool {
	for row := range Size {
		for col := range Size {
			if b[row][col] == 0 {
				return true
			}
		}
	}
	return false
}

// EmptyCells returns all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for row := range Size {
		for col := range Size {
			if b[row][col] == 0 {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}
	return cells
}

// Sum returns the sum of all tile values.
func (b Board) Sum() uint64 {
	var sum uint64
	for row := range Size {
		for col := range Size {
			sum += uint64(b[row][col])
		}
	}
	return sum
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	n := 0
	for row := range Size {
		for col := range Size {
			if b[row][col] != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the highest tile value on the board.
func (b Board) MaxTile() uint32 {
	var maxVal uint32
	for row := range Size {
		for col := range Size {
			maxVal = max(maxVal, b[row][col])
		}
	}
	return maxVal
}

// CanMove reports whether any direction would change the board: either a
// cell is empty or two orthogonal neighbours hold the same value.
func (b Board) CanMove() bool {
	for row := range Size {
		for col := range Size {
			val := b[row][col]
			if val == 0 {
				return true
			}
			if col < Size-1 && b[row][col+1] == val {
				return true
			}
			if row < Size-1 && b[row+1][col] == val {
				return true
			}
		}
	}
	return false
}

// String formats the board as four space-separated rows.
func (b Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range Size {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(uint64(b[row][col]), 10))
		}
	}
	return sb.String()
}
