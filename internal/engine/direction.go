package engine

import "strings"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all move directions.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection maps a direction name (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Vector returns the unit vector of motion as (dRow, dCol).
// Exactly one component is non-zero.
func (d Direction) Vector() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// cell maps a canonical line coordinate to a board coordinate.
// In canonical space every move compacts toward pos 0; line selects the
// row (horizontal moves) or column (vertical moves). The accumulation edge
// is index 0 when the vector component is negative and Size-1 when it is
// positive.
func (d Direction) cell(line, pos int) (row, col int) {
	dRow, dCol := d.Vector()
	if dRow != 0 {
		return edgeIndex(dRow, pos), line
	}
	return line, edgeIndex(dCol, pos)
}

// edgeIndex converts a distance from the accumulation edge into an index
// along the axis of motion.
func edgeIndex(sign, pos int) int {
	if sign < 0 {
		return pos
	}
	return Size - 1 - pos
}
