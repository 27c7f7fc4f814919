package playback

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/gridwalk/internal/search"
)

// Sink receives events as they are played.
type Sink interface {
	Apply(ev search.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(search.Event)

func (f SinkFunc) Apply(ev search.Event) { f(ev) }

// Sleeper pauses for d or until ctx is done, whichever is first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Option func(*Controller)

// WithSleeper replaces the wall clock, mostly for tests.
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) {
		if s != nil {
			c.sleep = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller plays a run's events against a Sink with timed pauses.
type Controller struct {
	sleep  Sleeper
	logger *slog.Logger
}

func New(opts ...Option) *Controller {
	c := &Controller{
		sleep:  Sleep,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Play replays res to sink. A NoStartOrEnd outcome returns at once with no
// pauses. Otherwise each step is applied and then followed by its pause.
//
// If ctx ends before the last step the outcome is Cancelled and the context
// error is returned; steps already applied stay applied.
func (c *Controller) Play(ctx context.Context, res *search.Result, delay time.Duration, sink Sink) (search.Outcome, error) {
	if res.Outcome.Kind == search.NoStartOrEnd {
		return res.Outcome, nil
	}
	cur := NewCursor(Steps(res.Events, delay))
	return c.Drive(ctx, cur, res.Outcome, sink)
}

// Drive plays the remainder of cur. outcome is returned unchanged unless
// playback is cancelled.
func (c *Controller) Drive(ctx context.Context, cur *Cursor, outcome search.Outcome, sink Sink) (search.Outcome, error) {
	started := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return c.cancelled(cur, err)
		}
		step, ok := cur.Next()
		if !ok {
			break
		}
		sink.Apply(step.Event)
		if err := c.sleep(ctx, step.Delay); err != nil {
			if cur.Done() {
				break
			}
			return c.cancelled(cur, err)
		}
	}
	c.logger.Debug("playback finished", "steps", cur.Len(), "outcome", outcome.Kind, "elapsed", time.Since(started))
	return outcome, nil
}

func (c *Controller) cancelled(cur *Cursor, err error) (search.Outcome, error) {
	c.logger.Info("playback cancelled", "played", cur.Played(), "remaining", cur.Remaining())
	return search.Outcome{Kind: search.Cancelled}, err
}
