package domain

import "errors"

var (
	// ErrLinkNotFound covers absent, inactive and reserved identifiers
	// alike so that callers cannot distinguish a disabled link from one
	// that never existed.
	ErrLinkNotFound = errors.New("link not found")

	// ErrCodeTaken is returned when a caller-supplied custom code is
	// already allocated.
	ErrCodeTaken = errors.New("short code already in use")

	// ErrCodeSpaceExhausted is returned when the generator could not find
	// a free code within its bounded attempts.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique short code")
)
