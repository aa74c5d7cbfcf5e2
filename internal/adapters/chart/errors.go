package chart

import "errors"

// Sentinel error kinds for chart rendering.
var (
	ErrUnknownKind = errors.New("unknown chart kind")
	ErrRender      = errors.New("chart render failed")
)
