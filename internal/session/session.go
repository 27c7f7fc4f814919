package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
	"github.com/san-kum/gridwalk/internal/search"
)

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayer sets the controller used by Solve.
func WithPlayer(p *playback.Controller) Option {
	return func(s *Session) {
		if p != nil {
			s.player = p
		}
	}
}

// WithSlider sets the initial speed slider value.
func WithSlider(v int) Option {
	return func(s *Session) { s.slider = min(max(v, SliderMin), SliderMax) }
}

// Session owns a grid and serialises edits against runs.
type Session struct {
	mu     sync.Mutex
	grid   *grid.Grid
	editor *Editor
	slider int
	active *Run
	last   *Run
	runs   int
	player *playback.Controller
	logger *slog.Logger
}

func New(g *grid.Grid, opts ...Option) *Session {
	s := &Session{
		grid:   g,
		editor: NewEditor(g),
		slider: DefaultSlider,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(s)
	}
	if s.player == nil {
		s.player = playback.New(playback.WithLogger(s.logger))
	}
	return s
}

func (s *Session) Grid() *grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Mode()
}

func (s *Session) Slider() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slider
}

// Delay is the per-step playback delay for the current slider value.
func (s *Session) Delay() time.Duration { return DelayForSlider(s.Slider()) }

// Running reports whether a run is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// LastRun is the most recently finished run, or nil before the first.
func (s *Session) LastRun() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// edit runs fn under the lock unless a run is active.
func (s *Session) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return ErrRunInProgress
	}
	return fn()
}

func (s *Session) SelectMode(m Mode) error {
	return s.edit(func() error { return s.editor.Select(m) })
}

// EditAt applies the current mode at p and reports whether the grid changed.
func (s *Session) EditAt(p grid.Position) (bool, error) {
	var changed bool
	err := s.edit(func() (err error) {
		changed, err = s.editor.ApplyAt(p)
		return err
	})
	return changed, err
}

func (s *Session) BeginStroke(p grid.Position) (bool, error) {
	var changed bool
	err := s.edit(func() (err error) {
		changed, err = s.editor.BeginStroke(p)
		return err
	})
	return changed, err
}

func (s *Session) ContinueStroke(p grid.Position) (bool, error) {
	var changed bool
	err := s.edit(func() (err error) {
		changed, err = s.editor.ContinueStroke(p)
		return err
	})
	return changed, err
}

func (s *Session) EndStroke() {
	s.mu.Lock()
	s.editor.EndStroke()
	s.mu.Unlock()
}

func (s *Session) ClearWalls() error {
	return s.edit(func() error {
		s.grid.ClearWalls()
		return nil
	})
}

// Reset replaces the grid with an empty one of the same size and returns
// the editor to start mode.
func (s *Session) Reset() error {
	return s.edit(func() error {
		g, err := grid.New(s.grid.Rows(), s.grid.Cols())
		if err != nil {
			return err
		}
		s.grid = g
		s.editor = NewEditor(g)
		s.logger.Debug("grid reset", "rows", g.Rows(), "cols", g.Cols())
		return nil
	})
}

// Load replaces the grid with g, keeping the current mode.
func (s *Session) Load(g *grid.Grid) error {
	return s.edit(func() error {
		mode := s.editor.Mode()
		s.grid = g
		s.editor = NewEditor(g)
		s.editor.mode = mode
		return nil
	})
}

func (s *Session) SetSlider(v int) error {
	return s.edit(func() error {
		s.slider = min(max(v, SliderMin), SliderMax)
		return nil
	})
}

// Begin computes a run against the current grid and locks editing until
// Run.Finish. Without a start or end it returns a nil Run, the
// NoStartOrEnd outcome and no error, leaving controls unlocked.
func (s *Session) Begin() (*Run, search.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return nil, search.Outcome{}, ErrRunInProgress
	}

	res := search.Run(s.grid, search.WithLogger(s.logger))
	if res.Outcome.Kind == search.NoStartOrEnd {
		s.logger.Info("run refused", "reason", res.Outcome.Kind)
		return nil, res.Outcome, nil
	}

	s.runs++
	delay := DelayForSlider(s.slider)
	r := &Run{
		ID:     s.runs,
		Result: res,
		Delay:  delay,
		Cursor: playback.NewCursor(playback.Steps(res.Events, delay)),
		s:      s,
	}
	s.active = r
	s.editor.lock()
	s.logger.Info("run started", "run", r.ID, "events", len(res.Events), "delay", delay)
	return r, res.Outcome, nil
}

// Solve runs a search and plays it to sink, blocking until playback ends.
func (s *Session) Solve(ctx context.Context, sink playback.Sink) (search.Outcome, error) {
	r, outcome, err := s.Begin()
	if err != nil || r == nil {
		return outcome, err
	}
	defer r.Finish()
	return s.player.Drive(ctx, r.Cursor, outcome, sink)
}

// Run is the context of one active search run.
type Run struct {
	ID     int
	Result *search.Result
	Delay  time.Duration
	Cursor *playback.Cursor

	s    *Session
	once sync.Once
}

// Outcome is the run's terminal outcome as computed by the engine.
func (r *Run) Outcome() search.Outcome { return r.Result.Outcome }

// Finish releases the session. Calling it more than once is harmless.
func (r *Run) Finish() {
	r.once.Do(func() {
		s := r.s
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.active == r {
			s.active = nil
			s.editor.unlock()
		}
		s.last = r
		s.logger.Info("run finished", "run", r.ID, "outcome", r.Result.Outcome.Kind, "played", r.Cursor.Played())
	})
}
