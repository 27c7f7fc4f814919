// Package viz is the interactive grid editor and solver, built on Bubble Tea.
//
// The board is drawn two terminal columns per cell. Editing works with the
// keyboard cursor or the mouse; dragging in wall mode paints walls. A solve
// plays the search back one event per tick, with editing locked until the
// run ends or is cancelled.
//
// # Key Bindings
//
//	1/2/3      - Start / End / Wall mode
//	arrows/hjkl - Move cursor
//	Space/Enter - Apply mode at cursor
//	S          - Solve
//	Esc        - Cancel running solve
//	C          - Clear walls
//	R          - Reset board
//	+/-        - Faster / slower playback
//	T          - Cycle color themes
//	Q          - Quit
package viz
