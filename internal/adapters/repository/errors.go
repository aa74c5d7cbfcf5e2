package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotLoaded = errors.New("dataset not loaded")
	ErrNoSource  = errors.New("dataset source not configured")
)
