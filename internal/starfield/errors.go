package starfield

import "errors"

// Validation errors returned by Screen constructors and setters.
var (
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("starfield: width and height must be positive")

	// ErrInvalidDensity indicates a density outside [0, 1].
	ErrInvalidDensity = errors.New("starfield: density must be within [0, 1]")

	// ErrNegativeDelay indicates a negative inter-frame delay.
	ErrNegativeDelay = errors.New("starfield: delay must not be negative")
)
