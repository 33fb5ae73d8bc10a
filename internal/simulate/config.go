package simulate

import "time"

// Config holds configuration for the game simulation.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumGames    int           // Number of full games to play
	NumPlayers  int           // Size of the simulated player pool
	NumAnalyses int           // Number of resume analyses to submit
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	MissRate    float64       // Probability of a deliberate wrong attempt
	Verbose     bool          // Enable verbose logging
}

// gameStart mirrors the response of POST /games.
type gameStart struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Pattern   string `json:"pattern"`
	Remaining int    `json:"remaining"`
}

// attemptResult mirrors the response of POST /games/{id}/attempts.
type attemptResult struct {
	Correct     bool    `json:"correct"`
	Score       float64 `json:"score"`
	NextPattern string  `json:"next_pattern"`
	Completed   bool    `json:"completed"`
}

// fameEntry mirrors a hall-of-fame row.
type fameEntry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

// submitAck mirrors the response of POST /synergy/analyses.
type submitAck struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Duplicate  bool   `json:"duplicate"`
}

// Stats holds simulation statistics.
type Stats struct {
	GamesStarted      int
	GamesCompleted    int
	GamesFailed       int
	AttemptsMade      int
	AttemptsCorrect   int
	AnalysesSubmitted int
	AnalysesDuplicate int
	FameEntries       int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
