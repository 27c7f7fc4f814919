package search

import (
	"fmt"

	"github.com/san-kum/gridwalk/internal/grid"
)

// EventKind tags a traversal step.
type EventKind int

const (
	// Visit marks a cell popped from the stack (never the start).
	Visit EventKind = iota
	// ReachGoal marks the pop of the end cell.
	ReachGoal
	// PathStep marks one cell of the reconstructed path, end excluded.
	PathStep
)

var eventKindNames = [...]string{"visit", "reach_goal", "path_step"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	for i, n := range eventKindNames {
		if n == s {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: event %q", ErrUnknownKind, s)
}

// Event is one step of a run, in emission order.
type Event struct {
	Kind EventKind
	Pos  grid.Position
	// Depth is the stack size when the event was emitted. Path steps carry 0.
	Depth int
}

// OutcomeKind is the terminal state of a run.
type OutcomeKind int

const (
	NoStartOrEnd OutcomeKind = iota
	PathFound
	NoPathFound
	// Cancelled is only produced by playback when its context ends early.
	Cancelled
)

var outcomeKindNames = [...]string{"no_start_or_end", "path_found", "no_path_found", "cancelled"}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeKindNames) {
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
	return outcomeKindNames[k]
}

// ParseOutcomeKind is the inverse of OutcomeKind.String.
func ParseOutcomeKind(s string) (OutcomeKind, error) {
	for i, n := range outcomeKindNames {
		if n == s {
			return OutcomeKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: outcome %q", ErrUnknownKind, s)
}

// Outcome is produced exactly once per run. Path runs start to end,
// excluding the start and including the end; it is set only for PathFound.
type Outcome struct {
	Kind OutcomeKind
	Path []grid.Position
}

// Message is a short user-facing description of the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case NoStartOrEnd:
		return "set a start and an end cell first"
	case PathFound:
		return fmt.Sprintf("path found: %d steps to the end", len(o.Path))
	case NoPathFound:
		return "no path found"
	case Cancelled:
		return "run cancelled"
	}
	return o.Kind.String()
}

// ParentMap maps a discovered cell to the cell that discovered it.
type ParentMap map[grid.Position]grid.Position

// Result is everything a run produced.
type Result struct {
	Events  []Event
	Outcome Outcome
	Parents ParentMap
	// Visited is the number of cells marked visited, start included.
	Visited int
	// Gap is set when path reconstruction hit a missing parent and the path
	// was truncated.
	Gap bool
}
