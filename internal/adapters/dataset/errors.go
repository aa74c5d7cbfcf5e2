package dataset

import (
	"errors"
)

// Sentinel error kinds for this package.
var (
	ErrLoad              = errors.New("dataset load failed")
	ErrUnsupportedSource = errors.New("unsupported dataset source")
	ErrMissingColumn     = errors.New("missing dataset column")
	ErrInvalidTable      = errors.New("invalid table name")
)
