package store

import "errors"

// Predefined errors for the store layer. Implementations translate backend
// failures into these before anything crosses the interface.
var (
	// ErrNotFound indicates that the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable indicates the backend could not be reached or a
	// connection could not be acquired within the bounded wait.
	ErrUnavailable = errors.New("storage unavailable")
)
