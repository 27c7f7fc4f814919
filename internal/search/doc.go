// Package search runs an iterative depth-first search over a grid and
// records every animation-visible step as an [Event].
//
// [Run] is synchronous: it computes the whole event sequence and the
// final [Outcome] against the grid as it is at call time. Playback of the
// sequence is a separate concern (see package playback).
//
// The traversal uses an explicit LIFO stack, marks cells visited when they
// are discovered rather than when they are popped, and pushes neighbours in
// the order Up, Down, Left, Right. The next cell explored is therefore the
// last pushed neighbour. Output is deterministic for a fixed grid.
//
// DFS does not find shortest paths.
package search
