package domain

import "errors"

var (
	// ErrSectionNotFound is returned when a section ID or name does not resolve.
	ErrSectionNotFound = errors.New("section not found")
	// ErrInvalidIndex is returned for positions outside the current sequence.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrItemNotFound is returned when a single-item operation misses.
	// Batch moves ignore unknown items instead.
	ErrItemNotFound = errors.New("item not found")
)
