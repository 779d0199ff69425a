package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuantity indicates a cart mutation with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
