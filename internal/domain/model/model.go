// Package model contains domain models passed between layers.
package model

import "time"

// AnalysisJob is a synergy analysis request queued for async processing.
type AnalysisJob struct {
	AnalysisID string // assigned at submission
	RequestID  string // caller-supplied idempotency key
	ResumeText string
	TeamCount  int
}

// GameRecord summarizes a finished game session for the archive.
type GameRecord struct {
	SessionID         string    `db:"session_id"`
	PlayerID          string    `db:"player_id"`
	Mode              string    `db:"mode"`
	PatternsCompleted int       `db:"patterns_completed"`
	BestScore         float64   `db:"best_score"`
	TotalScore        float64   `db:"total_score"`
	FinishedAt        time.Time `db:"finished_at"`
}
