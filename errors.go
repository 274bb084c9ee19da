package dataloader

import "errors"

var (
	// ErrNotFound is reported by Load when the batch function succeeded
	// but its result omitted the requested key.
	ErrNotFound = errors.New("dataloader: key not found")

	// ErrLoaderMismatch is reported by GetOrCreate when the name is already
	// bound to a loader with different key or value types.
	ErrLoaderMismatch = errors.New("dataloader: loader already registered with different types")
)
