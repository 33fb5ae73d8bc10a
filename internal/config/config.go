// Package config defines service configuration structures and loading hooks.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the analysis idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /halloffame?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// TeamCount sets how many team profiles a synergy analysis generates.
	TeamCount int `koanf:"team_count"`

	// ArchivePath is the SQLite file for the game session archive.
	// Empty disables archiving.
	ArchivePath string `koanf:"archive_path"`

	// OpenAIAPIKey enables AI advice on analyses. Empty disables advice.
	OpenAIAPIKey string `koanf:"openai_api_key"`

	// AdviceModel selects the chat model for advice generation.
	AdviceModel string `koanf:"advice_model"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           1024,
		WorkerCount:         runtime.NumCPU() * 4,
		DedupeSize:          100_000,
		MaxLeaderboardLimit: 100,
		TeamCount:           3,
		ArchivePath:         "",
		OpenAIAPIKey:        "",
		AdviceModel:         "gpt-4o-mini",
	}
}
