package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/search"
)

func parse(t *testing.T, lines ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(lines)
	require.NoError(t, err)
	return g
}

func TestRun_NoStartOrEnd(t *testing.T) {
	g := parse(t, "S..", "...")
	g.MarkVisited(grid.Pos(1, 1))

	res := search.Run(g)
	assert.Equal(t, search.NoStartOrEnd, res.Outcome.Kind)
	assert.Empty(t, res.Events)
	assert.True(t, g.IsVisited(grid.Pos(1, 1)), "grid untouched on precondition failure")

	res = search.Run(parse(t, "..E"))
	assert.Equal(t, search.NoStartOrEnd, res.Outcome.Kind)
}

func TestRun_OpenThreeByThree(t *testing.T) {
	g := parse(t,
		"S..",
		"...",
		"..E",
	)
	res := search.Run(g)

	require.Equal(t, search.PathFound, res.Outcome.Kind)
	assert.Equal(t, []grid.Position{
		grid.Pos(0, 1), grid.Pos(0, 2), grid.Pos(1, 2), grid.Pos(2, 2),
	}, res.Outcome.Path)
	assert.Equal(t, []search.Event{
		{Kind: search.Visit, Pos: grid.Pos(0, 1), Depth: 1},
		{Kind: search.Visit, Pos: grid.Pos(0, 2), Depth: 2},
		{Kind: search.Visit, Pos: grid.Pos(1, 2), Depth: 2},
		{Kind: search.Visit, Pos: grid.Pos(2, 2), Depth: 2},
		{Kind: search.ReachGoal, Pos: grid.Pos(2, 2), Depth: 2},
		{Kind: search.PathStep, Pos: grid.Pos(0, 1)},
		{Kind: search.PathStep, Pos: grid.Pos(0, 2)},
		{Kind: search.PathStep, Pos: grid.Pos(1, 2)},
	}, res.Events)
	assert.False(t, res.Gap)

	// clearing walls on an open board and solving again changes nothing
	first := res.Events
	g.ClearWalls()
	res = search.Run(g)
	assert.Equal(t, search.PathFound, res.Outcome.Kind)
	assert.Equal(t, first, res.Events)
}

func TestRun_RowFullyWalled(t *testing.T) {
	g := parse(t,
		"S..",
		"###",
		"..E",
	)
	res := search.Run(g)

	assert.Equal(t, search.NoPathFound, res.Outcome.Kind)
	assert.Nil(t, res.Outcome.Path)
	assert.Equal(t, 3, res.Visited)
	for c := 0; c < 3; c++ {
		assert.True(t, g.IsVisited(grid.Pos(0, c)))
		assert.False(t, g.IsVisited(grid.Pos(2, c)))
	}
	for _, ev := range res.Events {
		assert.Equal(t, search.Visit, ev.Kind)
	}
}

func TestRun_CorridorVisitsOnlyOpenNeighbourFirst(t *testing.T) {
	g := parse(t, "S", ".", "E")
	res := search.Run(g)

	require.NotEmpty(t, res.Events)
	assert.Equal(t, search.Event{Kind: search.Visit, Pos: grid.Pos(1, 0), Depth: 0}, res.Events[0])
	assert.Equal(t, []grid.Position{grid.Pos(1, 0), grid.Pos(2, 0)}, res.Outcome.Path)
}

func TestRun_LastPushedNeighbourExploredFirst(t *testing.T) {
	// From the centre, Up/Down/Left/Right are pushed in that order, so Right
	// is popped first.
	g := parse(t,
		"...",
		".S.",
		"...",
	)
	g.SetEnd(grid.Pos(0, 0))
	res := search.Run(g)

	require.NotEmpty(t, res.Events)
	assert.Equal(t, grid.Pos(1, 2), res.Events[0].Pos)
}

func TestRun_StartNeverVisitedEvent(t *testing.T) {
	g := parse(t, "S.E")
	res := search.Run(g)
	start, _ := g.Start()
	for _, ev := range res.Events {
		if ev.Kind == search.Visit {
			assert.NotEqual(t, start, ev.Pos)
		}
	}
}

func TestRun_AdjacentEndpoints(t *testing.T) {
	res := search.Run(parse(t, "SE"))
	assert.Equal(t, search.PathFound, res.Outcome.Kind)
	assert.Equal(t, []grid.Position{grid.Pos(0, 1)}, res.Outcome.Path)
	for _, ev := range res.Events {
		assert.NotEqual(t, search.PathStep, ev.Kind, "end is never a path step")
	}
}

func TestRun_Deterministic(t *testing.T) {
	g := parse(t,
		"S...#....",
		".##.#.##.",
		".#..#..#.",
		".#.###.#.",
		"...#...#E",
	)
	a := search.Run(g)
	g.ClearPath()
	b := search.Run(g)

	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, a.Outcome, b.Outcome)
}

// reachable computes the 4-connected open region around from.
func reachable(g *grid.Grid, from grid.Position) map[grid.Position]bool {
	seen := map[grid.Position]bool{from: true}
	queue := []grid.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if !g.IsWall(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) *grid.Grid {
	g, _ := grid.New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				g.ToggleWall(grid.Pos(r, c))
			}
		}
	}
	start := grid.Pos(rng.Intn(rows), rng.Intn(cols))
	end := start
	for end == start {
		end = grid.Pos(rng.Intn(rows), rng.Intn(cols))
	}
	g.SetWall(start, false)
	g.SetWall(end, false)
	g.SetStart(start)
	g.SetEnd(end)
	return g
}

func TestRun_RandomGridProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		g := randomGrid(rng, 2+rng.Intn(9), 2+rng.Intn(9), 0.3)
		start, _ := g.Start()
		end, _ := g.End()
		region := reachable(g, start)

		res := search.Run(g)

		if !region[end] {
			require.Equal(t, search.NoPathFound, res.Outcome.Kind, "grid %d:\n%s", i, g)
			for r := 0; r < g.Rows(); r++ {
				for c := 0; c < g.Cols(); c++ {
					p := grid.Pos(r, c)
					assert.Equal(t, region[p], g.IsVisited(p), "grid %d cell %s", i, p)
				}
			}
			continue
		}

		require.Equal(t, search.PathFound, res.Outcome.Kind, "grid %d:\n%s", i, g)
		require.False(t, res.Gap)
		path := res.Outcome.Path
		require.NotEmpty(t, path)
		assert.Equal(t, end, path[len(path)-1])

		seen := map[grid.Position]bool{}
		prev := start
		for _, p := range path {
			assert.True(t, grid.Adjacent(prev, p), "grid %d: %s -> %s", i, prev, p)
			assert.False(t, g.IsWall(p))
			assert.False(t, seen[p], "repeated %s", p)
			seen[p] = true
			prev = p
		}
	}
}

func TestRun_EachCellVisitedOnce(t *testing.T) {
	g := parse(t,
		"S....",
		".....",
		".....",
		"....E",
	)
	res := search.Run(g)

	counts := map[grid.Position]int{}
	for _, ev := range res.Events {
		if ev.Kind == search.Visit {
			counts[ev.Pos]++
		}
	}
	for p, n := range counts {
		assert.Equal(t, 1, n, "cell %s", p)
	}
}

func TestReconstruct(t *testing.T) {
	parents := search.ParentMap{
		grid.Pos(0, 1): grid.Pos(0, 0),
		grid.Pos(1, 1): grid.Pos(0, 1),
	}
	path, err := search.Reconstruct(parents, grid.Pos(0, 0), grid.Pos(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []grid.Position{grid.Pos(0, 1), grid.Pos(1, 1)}, path)
}

func TestReconstruct_Gap(t *testing.T) {
	parents := search.ParentMap{
		grid.Pos(2, 2): grid.Pos(2, 1),
	}
	path, err := search.Reconstruct(parents, grid.Pos(0, 0), grid.Pos(2, 2))
	assert.ErrorIs(t, err, search.ErrReconstructionGap)
	assert.Equal(t, []grid.Position{grid.Pos(2, 1), grid.Pos(2, 2)}, path)
}

func TestReconstruct_Cycle(t *testing.T) {
	parents := search.ParentMap{
		grid.Pos(0, 1): grid.Pos(0, 2),
		grid.Pos(0, 2): grid.Pos(0, 1),
	}
	_, err := search.Reconstruct(parents, grid.Pos(0, 0), grid.Pos(0, 1))
	assert.ErrorIs(t, err, search.ErrParentCycle)
}

func TestKindNames(t *testing.T) {
	for _, k := range []search.EventKind{search.Visit, search.ReachGoal, search.PathStep} {
		got, err := search.ParseEventKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := search.ParseOutcomeKind("lost")
	assert.ErrorIs(t, err, search.ErrUnknownKind)
}
