package grid

import "fmt"

// Position addresses a cell by row and column. It is comparable and is used
// as a map key wherever cells need identity.
type Position struct {
	Row, Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Adjacent reports whether a and b share an edge (4-connectivity).
func Adjacent(a, b Position) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr*dr+dc*dc == 1
}

// offsets in search priority order: Up, Down, Left, Right.
var offsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
