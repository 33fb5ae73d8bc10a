// Package simulate drives realistic game and analysis traffic against a
// running instance for load and smoke testing.
package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ascent/pkg/logger"
)

const maxAttemptsPerPattern = 5

var modes = []string{"easy", "moderate", "complex"}

var sampleResumes = []string{
	"Seasoned Python engineer with Data Science and Machine Learning background, strong teamwork.",
	"Management professional focused on Leadership, communication and initiative.",
	"Data Science practitioner, Python daily driver, adaptability under pressure.",
	"Machine Learning researcher with Python tooling and strong communication skills.",
}

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting ascent simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("games", config.NumGames),
		logger.Int("players", config.NumPlayers),
		logger.Int("analyses", config.NumAnalyses),
		logger.Int("workers", config.Workers),
		logger.Float64("missRate", config.MissRate),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := playGames(ctx, config, stats); err != nil {
		return fmt.Errorf("game simulation failed: %w", err)
	}

	if err := submitAnalyses(ctx, config, stats); err != nil {
		return fmt.Errorf("analysis submission failed: %w", err)
	}

	if err := fetchHallOfFame(ctx, config, stats); err != nil {
		return fmt.Errorf("hall of fame retrieval failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	status, err := client.get(ctx, config.BaseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// playGames runs full game sessions concurrently across the worker pool.
func playGames(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	var (
		started   int64
		completed int64
		failed    int64
		attempts  int64
		correct   int64
	)

	gameChan := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID))) //nolint:gosec // simulation traffic

			for gameID := range gameChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&started, 1)
				a, c, err := playOneGame(ctx, client, config, rng, gameID)
				atomic.AddInt64(&attempts, a)
				atomic.AddInt64(&correct, c)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "game failed", logger.Int("game", gameID), logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&completed, 1)
			}
		}(i)
	}

	go func() {
		defer close(gameChan)
		for i := 0; i < config.NumGames; i++ {
			select {
			case <-ctx.Done():
				return
			case gameChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.GamesStarted = int(atomic.LoadInt64(&started))
	stats.GamesCompleted = int(atomic.LoadInt64(&completed))
	stats.GamesFailed = int(atomic.LoadInt64(&failed))
	stats.AttemptsMade = int(atomic.LoadInt64(&attempts))
	stats.AttemptsCorrect = int(atomic.LoadInt64(&correct))

	logger.Get().Info(ctx, "game simulation finished",
		logger.Int("completed", stats.GamesCompleted),
		logger.Int("failed", stats.GamesFailed),
		logger.Int("attempts", stats.AttemptsMade),
	)
	return nil
}

// playOneGame starts a session and plays it to completion, occasionally
// fumbling an attempt on purpose.
func playOneGame(ctx context.Context, client *httpClient, config *Config, rng *rand.Rand, gameID int) (attempts, correct int64, err error) {
	playerID := fmt.Sprintf("player-%03d", rng.Intn(config.NumPlayers))
	mode := modes[gameID%len(modes)]

	var start gameStart
	status, err := client.post(ctx, config.BaseURL+"/games", map[string]string{
		"player_id": playerID,
		"mode":      mode,
	}, &start)
	if err != nil {
		return attempts, correct, err
	}
	if status != http.StatusCreated {
		return attempts, correct, fmt.Errorf("unexpected status starting game: %d", status)
	}

	pattern := start.Pattern
	for {
		input := pattern
		if rng.Float64() < config.MissRate {
			input = pattern + "!"
		}

		var result attemptResult
		status, err := client.post(ctx, config.BaseURL+"/games/"+start.SessionID+"/attempts",
			map[string]string{"input": input}, &result)
		if err != nil {
			return attempts, correct, err
		}
		if status != http.StatusOK {
			return attempts, correct, fmt.Errorf("unexpected status on attempt: %d", status)
		}

		attempts++
		if result.Correct {
			correct++
			if result.Completed {
				return attempts, correct, nil
			}
			pattern = result.NextPattern
			continue
		}

		// A wrong attempt keeps the same pattern; bail out if the
		// server somehow never accepts it.
		if attempts > int64(maxAttemptsPerPattern*10+10) {
			return attempts, correct, fmt.Errorf("session %s stuck", start.SessionID)
		}
	}
}

// submitAnalyses pushes resume analyses through the async pipeline.
func submitAnalyses(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	for i := 0; i < config.NumAnalyses; i++ {
		var ack submitAck
		status, err := client.post(ctx, config.BaseURL+"/synergy/analyses", map[string]string{
			"request_id":  fmt.Sprintf("sim-%d-%d", stats.StartTime.UnixNano(), i),
			"resume_text": sampleResumes[i%len(sampleResumes)],
		}, &ack)
		if err != nil {
			return err
		}

		switch status {
		case http.StatusAccepted:
			stats.AnalysesSubmitted++
		case http.StatusOK:
			stats.AnalysesDuplicate++
		case http.StatusTooManyRequests:
			// Backpressure; slow down and move on.
			time.Sleep(100 * time.Millisecond)
		default:
			return fmt.Errorf("unexpected status submitting analysis: %d", status)
		}
	}

	logger.Get().Info(ctx, "analyses submitted",
		logger.Int("accepted", stats.AnalysesSubmitted),
		logger.Int("duplicate", stats.AnalysesDuplicate),
	)
	return nil
}

// fetchHallOfFame reads the final boards for every mode.
func fetchHallOfFame(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	for _, mode := range modes {
		var entries []fameEntry
		url := fmt.Sprintf("%s/halloffame?mode=%s&limit=10", config.BaseURL, mode)
		status, err := client.get(ctx, url, &entries)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("unexpected status fetching hall of fame: %d", status)
		}

		stats.FameEntries += len(entries)
		if config.Verbose {
			for _, e := range entries {
				logger.Get().Info(ctx, "hall of fame entry",
					logger.String("mode", mode),
					logger.Int("rank", e.Rank),
					logger.String("playerID", e.PlayerID),
					logger.Float64("score", e.Score),
				)
			}
		}
	}
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var gamesPerSecond float64
	if stats.Duration > 0 {
		gamesPerSecond = float64(stats.GamesCompleted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("gamesStarted", stats.GamesStarted),
		logger.Int("gamesCompleted", stats.GamesCompleted),
		logger.Int("gamesFailed", stats.GamesFailed),
		logger.Int("attemptsMade", stats.AttemptsMade),
		logger.Int("attemptsCorrect", stats.AttemptsCorrect),
		logger.Int("analysesSubmitted", stats.AnalysesSubmitted),
		logger.Int("fameEntries", stats.FameEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("gamesPerSecond", gamesPerSecond),
	)
}
