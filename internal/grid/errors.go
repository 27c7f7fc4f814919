package grid

import "errors"

var (
	// ErrInvalidSize indicates a grid with fewer than one row or column.
	ErrInvalidSize = errors.New("grid: rows and cols must both be at least 1")

	// ErrEmptyLayout indicates a text layout with no rows or an empty first row.
	ErrEmptyLayout = errors.New("grid: layout is empty")

	// ErrRaggedLayout indicates layout rows of differing widths.
	ErrRaggedLayout = errors.New("grid: layout rows must have the same width")

	// ErrUnknownGlyph indicates a layout rune outside ".#SE".
	ErrUnknownGlyph = errors.New("grid: unknown layout glyph")

	// ErrDuplicateEndpoint indicates a layout with more than one S or E.
	ErrDuplicateEndpoint = errors.New("grid: layout has more than one start or end")
)
