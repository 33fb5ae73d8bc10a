package arbitrage

import "errors"

// Sentinel kinds for game engine errors.
var (
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrPatternGeneration = errors.New("pattern generation produced no patterns")
)
