package wrangle

import (
	"errors"
)

// Sentinel error kinds for this package. Dimension errors come from
// boardgame.ErrInvalidDimension.
var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateHeader = errors.New("duplicate display header")
)
