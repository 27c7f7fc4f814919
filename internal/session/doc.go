// Package session ties a grid, its editor and search runs together.
//
// An [Editor] is a three-state mode machine (start, end, wall) that turns a
// click or a drag stroke at a position into the matching grid mutation.
// A [Session] owns the grid, the editor, the playback speed and at most one
// active [Run]. While a run is active every editing command fails with
// [ErrRunInProgress]; [Run.Finish] hands control back.
package session
