package search

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/gridwalk/internal/grid"
)

// Option configures Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Run searches g from its start to its end. It clears and then sets the
// grid's visited flags; walls and endpoints are not touched.
//
// With no start or no end the outcome is NoStartOrEnd, no events are
// produced and g is left as it was.
func Run(g *grid.Grid, opts ...Option) *Result {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, fn := range opts {
		fn(&o)
	}

	start, okStart := g.Start()
	end, okEnd := g.End()
	if !okStart || !okEnd {
		return &Result{Outcome: Outcome{Kind: NoStartOrEnd}}
	}

	g.ClearPath()
	res := &Result{
		Events:  make([]Event, 0, g.Rows()*g.Cols()),
		Parents: make(ParentMap),
	}

	stack := []grid.Position{start}
	g.MarkVisited(start)
	found := false

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur != start {
			res.Events = append(res.Events, Event{Kind: Visit, Pos: cur, Depth: len(stack)})
		}
		if cur == end {
			res.Events = append(res.Events, Event{Kind: ReachGoal, Pos: cur, Depth: len(stack)})
			found = true
			break
		}

		for _, n := range g.Neighbors(cur) {
			if g.IsWall(n) || g.IsVisited(n) {
				continue
			}
			g.MarkVisited(n)
			res.Parents[n] = cur
			stack = append(stack, n)
		}
	}
	res.Visited = g.VisitedCount()

	if !found {
		res.Outcome = Outcome{Kind: NoPathFound}
		o.logger.Debug("search exhausted", "start", start, "end", end, "visited", res.Visited)
		return res
	}

	path, err := Reconstruct(res.Parents, start, end)
	if err != nil {
		res.Gap = true
		o.logger.Warn("path truncated", "err", err, "kept", len(path))
	}
	for _, p := range path {
		if p != end {
			res.Events = append(res.Events, Event{Kind: PathStep, Pos: p})
		}
	}
	res.Outcome = Outcome{Kind: PathFound, Path: path}
	o.logger.Debug("path found", "start", start, "end", end, "length", len(path), "events", len(res.Events))
	return res
}

// Reconstruct walks parents back from end to start and returns the path in
// start-to-end order, start excluded and end included.
//
// If a cell has no parent before start is reached, the cells collected so
// far are returned along with ErrReconstructionGap.
func Reconstruct(parents ParentMap, start, end grid.Position) ([]grid.Position, error) {
	var path []grid.Position
	cur := end
	for cur != start {
		if len(path) > len(parents) {
			reverse(path)
			return path, ErrParentCycle
		}
		path = append(path, cur)
		prev, ok := parents[cur]
		if !ok {
			reverse(path)
			return path, fmt.Errorf("%w: no parent for %s", ErrReconstructionGap, cur)
		}
		cur = prev
	}
	reverse(path)
	return path, nil
}

func reverse(p []grid.Position) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
