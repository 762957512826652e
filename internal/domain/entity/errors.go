package entity

import "errors"

var (
	// ErrInvalidKey marks malformed subscription input. It is rejected
	// before storage and surfaced to the front-end for the user to correct.
	ErrInvalidKey = errors.New("invalid flight key")

	// ErrStoreUnavailable marks a persistence-layer failure. It propagates
	// to the caller, which decides whether to retry.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
