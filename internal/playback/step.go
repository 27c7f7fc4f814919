package playback

import (
	"time"

	"github.com/san-kum/gridwalk/internal/search"
)

// MinPathDelay is the floor for the pause after a path step.
const MinPathDelay = 10 * time.Millisecond

// Step is one event plus the pause that follows it.
type Step struct {
	Event search.Event
	Delay time.Duration
}

// DelayFor returns the pause that follows an event of kind k when the
// per-step delay is delay.
func DelayFor(k search.EventKind, delay time.Duration) time.Duration {
	switch k {
	case search.Visit:
		return delay
	case search.PathStep:
		return max(MinPathDelay, delay/2)
	}
	return 0
}

// Steps pairs every event with its pause, preserving order.
func Steps(events []search.Event, delay time.Duration) []Step {
	out := make([]Step, len(events))
	for i, ev := range events {
		out[i] = Step{Event: ev, Delay: DelayFor(ev.Kind, delay)}
	}
	return out
}

// Cursor hands out steps in order. It is not safe for concurrent use.
type Cursor struct {
	steps []Step
	next  int
}

func NewCursor(steps []Step) *Cursor { return &Cursor{steps: steps} }

// Next returns the next step, or false once every step has been handed out.
func (c *Cursor) Next() (Step, bool) {
	if c.next >= len(c.steps) {
		return Step{}, false
	}
	s := c.steps[c.next]
	c.next++
	return s, true
}

func (c *Cursor) Done() bool     { return c.next >= len(c.steps) }
func (c *Cursor) Remaining() int { return len(c.steps) - c.next }
func (c *Cursor) Len() int       { return len(c.steps) }

// Played is the number of steps already handed out.
func (c *Cursor) Played() int { return c.next }
