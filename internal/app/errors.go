package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrQueueFull        = errors.New("analysis queue is full")
)
