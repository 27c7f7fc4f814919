package session

import "errors"

var (
	// ErrRunInProgress is returned by commands issued while a run is active.
	ErrRunInProgress = errors.New("session: a run is already in progress")

	// ErrEditingLocked is returned by an Editor that has been locked for a run.
	ErrEditingLocked = errors.New("session: editing is locked")

	// ErrUnknownMode indicates a mode name that does not parse.
	ErrUnknownMode = errors.New("session: unknown edit mode")
)
