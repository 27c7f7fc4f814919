package playback

import (
	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/search"
)

// Mark is how a renderer should draw a cell during or after playback.
type Mark int

const (
	MarkNone Mark = iota
	MarkVisited
	MarkPath
	MarkCurrent
)

// Overlay accumulates the visible effect of played events. It implements Sink.
type Overlay struct {
	visited    map[grid.Position]bool
	path       map[grid.Position]bool
	current    grid.Position
	hasCurrent bool
	reached    bool
	applied    int
}

func NewOverlay() *Overlay {
	return &Overlay{
		visited: make(map[grid.Position]bool),
		path:    make(map[grid.Position]bool),
	}
}

// Apply records ev. The most recent event's cell becomes the current cell.
func (o *Overlay) Apply(ev search.Event) {
	switch ev.Kind {
	case search.Visit:
		o.visited[ev.Pos] = true
	case search.ReachGoal:
		o.reached = true
	case search.PathStep:
		o.path[ev.Pos] = true
	}
	o.current, o.hasCurrent = ev.Pos, true
	o.applied++
}

// Settle drops the current-cell highlight once playback has finished.
func (o *Overlay) Settle() { o.hasCurrent = false }

// Reset clears everything.
func (o *Overlay) Reset() {
	clear(o.visited)
	clear(o.path)
	o.hasCurrent, o.reached, o.applied = false, false, 0
}

// At returns the mark for p; path beats visited, current beats both.
func (o *Overlay) At(p grid.Position) Mark {
	switch {
	case o.hasCurrent && o.current == p:
		return MarkCurrent
	case o.path[p]:
		return MarkPath
	case o.visited[p]:
		return MarkVisited
	}
	return MarkNone
}

func (o *Overlay) Current() (grid.Position, bool) { return o.current, o.hasCurrent }
func (o *Overlay) Reached() bool                  { return o.reached }
func (o *Overlay) Applied() int                   { return o.applied }
func (o *Overlay) VisitedCount() int              { return len(o.visited) }
func (o *Overlay) PathCount() int                 { return len(o.path) }
