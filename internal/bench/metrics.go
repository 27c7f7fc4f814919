package bench

import "github.com/san-kum/gridwalk/internal/search"

// Metric observes the events of one run.
type Metric interface {
	Name() string
	Observe(ev search.Event)
	Value() float64
	Reset()
}

// MaxDepth is the deepest stack seen at any visit.
type MaxDepth struct{ max int }

func NewMaxDepth() Metric { return &MaxDepth{} }

func (m *MaxDepth) Name() string { return "max_depth" }

func (m *MaxDepth) Observe(ev search.Event) {
	if ev.Kind == search.Visit {
		m.max = max(m.max, ev.Depth)
	}
}

func (m *MaxDepth) Value() float64 { return float64(m.max) }
func (m *MaxDepth) Reset()         { m.max = 0 }

// Backtracks counts visits made after the stack shrank, i.e. after the
// search ran into a dead end.
type Backtracks struct {
	last  int
	count int
}

func NewBacktracks() Metric { return &Backtracks{} }

func (b *Backtracks) Name() string { return "backtracks" }

func (b *Backtracks) Observe(ev search.Event) {
	if ev.Kind != search.Visit {
		return
	}
	if b.last > 0 && ev.Depth < b.last {
		b.count++
	}
	b.last = ev.Depth
}

func (b *Backtracks) Value() float64 { return float64(b.count) }

func (b *Backtracks) Reset() {
	b.last = 0
	b.count = 0
}

// Efficiency is path cells over visited cells; 1 means the search never
// wandered off the final path. Runs without a path score 0.
type Efficiency struct {
	visits  int
	path    int
	reached bool
}

func NewEfficiency() Metric { return &Efficiency{} }

func (e *Efficiency) Name() string { return "efficiency" }

func (e *Efficiency) Observe(ev search.Event) {
	switch ev.Kind {
	case search.Visit:
		e.visits++
	case search.ReachGoal:
		e.reached = true
	case search.PathStep:
		e.path++
	}
}

func (e *Efficiency) Value() float64 {
	if !e.reached || e.visits == 0 {
		return 0
	}
	// PathStep covers every path cell but the end, which is a visit too.
	return float64(e.path+1) / float64(e.visits)
}

func (e *Efficiency) Reset() {
	e.visits = 0
	e.path = 0
	e.reached = false
}

// DefaultMetrics builds a fresh set of the metrics above.
func DefaultMetrics() []Metric {
	return []Metric{NewMaxDepth(), NewBacktracks(), NewEfficiency()}
}
