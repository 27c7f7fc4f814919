package search

import "errors"

var (
	// ErrReconstructionGap indicates a discovered cell with no parent entry
	// before the walk back from the goal reached the start.
	ErrReconstructionGap = errors.New("search: parent chain broken before reaching start")

	// ErrParentCycle indicates a parent map that loops without reaching the start.
	ErrParentCycle = errors.New("search: parent chain contains a cycle")

	// ErrUnknownKind indicates an event or outcome name that does not parse.
	ErrUnknownKind = errors.New("search: unknown kind")
)
