package advice

import "errors"

// Sentinel kinds for advice errors.
var (
	ErrGeneration = errors.New("advice generation failed")
)
