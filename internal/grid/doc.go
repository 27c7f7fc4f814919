// Package grid holds the editable board a search runs over.
//
// A [Grid] is a fixed ROWS×COLS matrix of [Cell] values plus at most one
// start and one end [Position]. The grid enforces its own invariants:
//
//   - start and end are never the same cell
//   - a wall never sits on start or end
//   - invalid edits are silent no-ops, not errors
//
// [Grid.Neighbors] returns adjacent cells in the fixed order Up, Down,
// Left, Right. Search order depends on it.
//
// # Layouts
//
// Boards can be written as text, one rune per cell:
//
//	S..#
//	.#..
//	...E
//
// where '.' is open, '#' is a wall, 'S' is the start and 'E' the end.
package grid
