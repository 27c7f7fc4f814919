package session

import "github.com/san-kum/gridwalk/internal/grid"

// Editor applies edit commands to a grid according to the current mode.
type Editor struct {
	grid     *grid.Grid
	mode     Mode
	locked   bool
	stroking bool
}

// NewEditor returns an editor in start mode.
func NewEditor(g *grid.Grid) *Editor {
	return &Editor{grid: g, mode: ModeStart}
}

func (e *Editor) Mode() Mode       { return e.mode }
func (e *Editor) Locked() bool     { return e.locked }
func (e *Editor) Stroking() bool   { return e.stroking }
func (e *Editor) Grid() *grid.Grid { return e.grid }

// Select switches the edit mode. Unknown modes are ignored.
func (e *Editor) Select(m Mode) error {
	if e.locked {
		return ErrEditingLocked
	}
	if m.valid() {
		e.mode = m
		e.stroking = false
	}
	return nil
}

// ApplyAt performs a single click at p: set start, set end, or toggle a wall.
// Marks from a previous run are cleared first. It reports whether the grid
// changed; rejected edits are not errors.
func (e *Editor) ApplyAt(p grid.Position) (bool, error) {
	if e.locked {
		return false, ErrEditingLocked
	}
	e.grid.ClearPath()
	switch e.mode {
	case ModeStart:
		return e.grid.SetStart(p), nil
	case ModeEnd:
		return e.grid.SetEnd(p), nil
	case ModeWall:
		return e.grid.ToggleWall(p), nil
	}
	return false, nil
}

// BeginStroke starts a drag at p. Only wall mode paints; the first cell
// behaves like a click, so a stroke can also erase the wall it starts on.
func (e *Editor) BeginStroke(p grid.Position) (bool, error) {
	if e.locked {
		return false, ErrEditingLocked
	}
	if e.mode != ModeWall {
		return false, nil
	}
	e.stroking = true
	return e.ApplyAt(p)
}

// ContinueStroke extends a drag over p. Strokes only ever add walls.
func (e *Editor) ContinueStroke(p grid.Position) (bool, error) {
	if e.locked {
		return false, ErrEditingLocked
	}
	if !e.stroking || e.mode != ModeWall {
		return false, nil
	}
	return e.grid.SetWall(p, true), nil
}

// EndStroke finishes a drag. It is always allowed.
func (e *Editor) EndStroke() { e.stroking = false }

func (e *Editor) lock() {
	e.locked = true
	e.stroking = false
}

func (e *Editor) unlock() { e.locked = false }
