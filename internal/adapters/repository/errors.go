package repository

import "errors"

// Sentinel kinds for hall-of-fame errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid hall-of-fame limit")
)
