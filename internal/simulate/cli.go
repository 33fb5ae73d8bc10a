package simulate

import "os"

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Ascent Simulation Tool
======================

Drives concurrent game and resume-analysis traffic against a running
ascent instance.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -games int
        Number of full games to play (default 100)
  -players int
        Size of the simulated player pool (default 20)
  -analyses int
        Number of resume analyses to submit (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -miss float
        Probability of a deliberate wrong attempt (default 0.1)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # Heavier run against a remote instance
  go run cmd/simulate/main.go -games 1000 -workers 16 -url http://localhost:8080
`)
}
