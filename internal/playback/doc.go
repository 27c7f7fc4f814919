// Package playback replays a search run step by step with timed delays.
//
// A run's events become a list of [Step] values, each carrying the pause
// that follows it: the configured delay for visits, half of it (but never
// less than [MinPathDelay]) for path steps, none for reaching the goal.
// A [Cursor] hands steps out strictly in order. [Controller.Play] drives a
// cursor to completion against a [Sink], sleeping between steps; an
// interactive front end can instead pull steps from the cursor on its own
// clock.
//
// Playback never reorders, merges or drops steps.
package playback
