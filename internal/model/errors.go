package model

import "errors"

// Error kinds. These are sentinels, not types — components
// wrap them with fmt.Errorf("%s: %w", component, ErrX) so callers can test
// with errors.Is while still getting a readable message.
var (
	ErrInvalidMap    = errors.New("invalid map")
	ErrInvalidConfig = errors.New("invalid config")
	ErrTooLarge      = errors.New("evaluation cap exceeded")
	ErrOverlap       = errors.New("individual placement overlap")
	ErrCancelled     = errors.New("cancelled")
)
