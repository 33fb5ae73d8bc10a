// Package repository defines the cross-session hall-of-fame store.
package repository

import "context"

// Entry represents a hall-of-fame row for one mode.
type Entry struct {
	Rank     int
	PlayerID string
	Score    float64
}

// Store tracks each player's best score per game mode.
type Store interface {
	// UpdateBest sets a new best score for the player in mode if it beats
	// the existing one. Returns true when the store updated the score.
	UpdateBest(ctx context.Context, mode, playerID string, score float64) (bool, error)

	// Rank returns the player's current rank and best score within mode.
	// Returns ErrNotFound for unknown players.
	Rank(ctx context.Context, mode, playerID string) (Entry, error)

	// TopN returns up to n entries for mode, ordered score DESC then
	// player ID ASC.
	TopN(ctx context.Context, mode string, n int) ([]Entry, error)

	// Count returns the number of distinct players across all modes.
	Count(ctx context.Context) int
}
