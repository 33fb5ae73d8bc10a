package synergy

import "errors"

// Sentinel kinds for synergy scoring errors.
var (
	ErrDimensionMismatch = errors.New("incompatible vector dimensions")
)
