package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/search"
)

var ErrInvalidConfig = errors.New("bench: invalid config")

type Config struct {
	Rows        int
	Cols        int
	WallDensity float64 // probability that a cell is a wall, in [0, 1]
	Runs        int
	Seed        int64 // run i uses Seed+i
	Workers     int   // <= 0 means GOMAXPROCS
}

func (c Config) validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1 || c.Rows*c.Cols < 2:
		return fmt.Errorf("%w: board %dx%d has no room for two endpoints", ErrInvalidConfig, c.Rows, c.Cols)
	case c.WallDensity < 0 || c.WallDensity > 1:
		return fmt.Errorf("%w: wall density %v", ErrInvalidConfig, c.WallDensity)
	case c.Runs < 1:
		return fmt.Errorf("%w: runs %d", ErrInvalidConfig, c.Runs)
	}
	return nil
}

// Trial is the result of one random board.
type Trial struct {
	Seed       int64
	Outcome    search.OutcomeKind
	PathLength int
	Visited    int
	Walls      int
	Metrics    map[string]float64
	Elapsed    time.Duration
}

// RandomGrid builds a rows×cols board with start top-left, end bottom-right
// and every other cell a wall with probability density.
func RandomGrid(rows, cols int, density float64, rng *rand.Rand) (*grid.Grid, error) {
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}
	start, end := grid.Pos(0, 0), grid.Pos(rows-1, cols-1)
	g.SetStart(start)
	g.SetEnd(end)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				g.SetWall(grid.Pos(r, c), true)
			}
		}
	}
	return g, nil
}

type Ensemble struct {
	cfg     Config
	metrics func() []Metric
	logger  *slog.Logger
}

type Option func(*Ensemble)

// WithMetrics sets the factory for each run's metric set. Each worker
// gets its own set.
func WithMetrics(f func() []Metric) Option {
	return func(e *Ensemble) { e.metrics = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Ensemble) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEnsemble(cfg Config, opts ...Option) (*Ensemble, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Ensemble{
		cfg:     cfg,
		metrics: DefaultMetrics,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run solves cfg.Runs boards on a bounded worker pool. Results are in seed
// order regardless of scheduling.
func (e *Ensemble) Run(ctx context.Context) ([]Trial, error) {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, e.cfg.Runs)

	trials := make([]Trial, e.cfg.Runs)
	errs := make([]error, e.cfg.Runs)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics := e.metrics()
			for idx := range jobs {
				trials[idx], errs[idx] = e.trial(e.cfg.Seed+int64(idx), metrics)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < e.cfg.Runs; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	e.logger.Debug("ensemble done", "runs", e.cfg.Runs, "workers", workers)
	return trials, nil
}

func (e *Ensemble) trial(seed int64, metrics []Metric) (Trial, error) {
	rng := rand.New(rand.NewSource(seed))
	g, err := RandomGrid(e.cfg.Rows, e.cfg.Cols, e.cfg.WallDensity, rng)
	if err != nil {
		return Trial{}, err
	}

	began := time.Now()
	res := search.Run(g)
	elapsed := time.Since(began)

	t := Trial{
		Seed:       seed,
		Outcome:    res.Outcome.Kind,
		PathLength: len(res.Outcome.Path),
		Visited:    res.Visited,
		Walls:      g.WallCount(),
		Metrics:    make(map[string]float64, len(metrics)),
		Elapsed:    elapsed,
	}
	for _, m := range metrics {
		m.Reset()
		for _, ev := range res.Events {
			m.Observe(ev)
		}
		t.Metrics[m.Name()] = m.Value()
	}
	return t, nil
}
