package resume

import "errors"

// Sentinel kinds for resume extraction errors.
var (
	ErrNoText = errors.New("no extractable text in document")
)
