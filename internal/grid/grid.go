package grid

// Cell is the state of a single board square.
type Cell struct {
	Wall    bool
	Visited bool
}

// Grid is a fixed-size board with optional start and end markers.
// The zero value is not usable; construct with New or Parse.
type Grid struct {
	rows, cols int
	cells      []Cell
	start, end Position
	hasStart   bool
	hasEnd     bool
}

// New returns an open rows×cols grid with no start or end.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrInvalidSize
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) index(p Position) int { return p.Row*g.cols + p.Col }

// Cell returns a copy of the cell at p. Out-of-bounds positions yield the zero Cell.
func (g *Grid) Cell(p Position) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.cells[g.index(p)]
}

func (g *Grid) IsWall(p Position) bool    { return g.Cell(p).Wall }
func (g *Grid) IsVisited(p Position) bool { return g.Cell(p).Visited }

// Start returns the start position and whether one is set.
func (g *Grid) Start() (Position, bool) { return g.start, g.hasStart }

// End returns the end position and whether one is set.
func (g *Grid) End() (Position, bool) { return g.end, g.hasEnd }

func (g *Grid) isStart(p Position) bool { return g.hasStart && g.start == p }
func (g *Grid) isEnd(p Position) bool   { return g.hasEnd && g.end == p }

// IsEndpoint reports whether p is the start or the end.
func (g *Grid) IsEndpoint(p Position) bool { return g.isStart(p) || g.isEnd(p) }

// SetStart moves the start marker to p. It is a no-op, returning false, when
// p is off the board, a wall, or the current end.
func (g *Grid) SetStart(p Position) bool {
	if !g.InBounds(p) || g.IsWall(p) || g.isEnd(p) {
		return false
	}
	g.start, g.hasStart = p, true
	return true
}

// SetEnd moves the end marker to p under the same rules as SetStart.
func (g *Grid) SetEnd(p Position) bool {
	if !g.InBounds(p) || g.IsWall(p) || g.isStart(p) {
		return false
	}
	g.end, g.hasEnd = p, true
	return true
}

// ToggleWall flips the wall flag at p. Endpoints are never walled.
func (g *Grid) ToggleWall(p Position) bool {
	if !g.InBounds(p) || g.IsEndpoint(p) {
		return false
	}
	c := &g.cells[g.index(p)]
	c.Wall = !c.Wall
	return true
}

// SetWall forces the wall flag at p to on. It reports whether the cell changed.
func (g *Grid) SetWall(p Position, on bool) bool {
	if !g.InBounds(p) || g.IsEndpoint(p) {
		return false
	}
	c := &g.cells[g.index(p)]
	if c.Wall == on {
		return false
	}
	c.Wall = on
	return true
}

// MarkVisited sets the visited flag at p.
func (g *Grid) MarkVisited(p Position) {
	if g.InBounds(p) {
		g.cells[g.index(p)].Visited = true
	}
}

// ClearPath resets every visited flag. Walls and endpoints are untouched.
func (g *Grid) ClearPath() {
	for i := range g.cells {
		g.cells[i].Visited = false
	}
}

// ClearWalls removes every wall and then clears the path.
func (g *Grid) ClearWalls() {
	for i := range g.cells {
		g.cells[i].Wall = false
	}
	g.ClearPath()
}

// Neighbors returns the in-bounds cells adjacent to p in the order
// Up, Down, Left, Right. Walls are included; callers filter them.
func (g *Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		n := Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// WallCount returns the number of walled cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Wall {
			n++
		}
	}
	return n
}

// VisitedCount returns the number of visited cells.
func (g *Grid) VisitedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Visited {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}
