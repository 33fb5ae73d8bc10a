// Package types contains common types shared between the service and the
// HTTP API.
package types

// Entry represents a hall-of-fame row.
type Entry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

// GameStart is returned when a new game session begins.
type GameStart struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Pattern   string `json:"pattern"`
	Remaining int    `json:"remaining"`
}

// ProgressState mirrors the engine's consciousness gauges for display.
type ProgressState struct {
	PatternsCompleted    int     `json:"patterns_completed"`
	NeuralResonance      float64 `json:"neural_resonance"`
	QuantumCoherence     float64 `json:"quantum_coherence"`
	RealityStability     float64 `json:"reality_stability"`
	TimeCompressionRatio float64 `json:"time_compression_ratio"`
	ExperienceDepth      float64 `json:"experience_depth"`
}

// AttemptResult is the outcome of a pattern attempt.
type AttemptResult struct {
	Correct     bool          `json:"correct"`
	Score       float64       `json:"score"`
	NextPattern string        `json:"next_pattern,omitempty"`
	Completed   bool          `json:"completed"`
	State       ProgressState `json:"state"`
}

// Analysis lifecycle statuses.
const (
	AnalysisPending  = "pending"
	AnalysisComplete = "complete"
	AnalysisFailed   = "failed"
)

// AnalysisReport is the full synergy analysis for one resume.
type AnalysisReport struct {
	AnalysisID string    `json:"analysis_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Candidate  []int     `json:"candidate_vector"`
	Teams      [][]int   `json:"team_profiles"`
	Scores     []float64 `json:"scores"`
	Messages   []string  `json:"messages"`
	Tiers      []string  `json:"tiers"`
	Advice     string    `json:"advice,omitempty"`
}
