package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/ascent/internal/simulate"
	"github.com/okian/ascent/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumGames    = 100
	defaultNumPlayers  = 20
	defaultNumAnalyses = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultMissRate    = 0.1
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numGames    = flag.Int("games", defaultNumGames, "Number of full games to play")
		numPlayers  = flag.Int("players", defaultNumPlayers, "Size of the simulated player pool")
		numAnalyses = flag.Int("analyses", defaultNumAnalyses, "Number of resume analyses to submit")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		missRate    = flag.Float64("miss", defaultMissRate, "Probability of a deliberate wrong attempt")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:     *baseURL,
		NumGames:    *numGames,
		NumPlayers:  *numPlayers,
		NumAnalyses: *numAnalyses,
		Workers:     *workers,
		Timeout:     *timeout,
		MissRate:    *missRate,
		Verbose:     *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		return
	}
}
