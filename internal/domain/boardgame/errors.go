package boardgame

import (
	"errors"
)

// Sentinel error kinds for this package.
var (
	// ErrInvalidDimension is returned when a dimension name is not one of
	// category, mechanic or publisher.
	ErrInvalidDimension = errors.New("invalid dimension")
)
