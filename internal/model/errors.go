package model

import "errors"

var (
	// ErrMalformedScenario means a scenario document failed its shape checks.
	ErrMalformedScenario = errors.New("malformed scenario")
	// ErrInvalidMapFile means a map preview document lacks usable rows/cols.
	ErrInvalidMapFile = errors.New("invalid map file")
)
