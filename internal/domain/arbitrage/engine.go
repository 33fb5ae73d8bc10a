// Package arbitrage implements the pattern-matching game engine: procedural
// pattern generation, attempt verification, session state evolution, and a
// bounded per-mode leaderboard.
package arbitrage

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Scoring and session constants.
const (
	patternsPerSession = 10
	leaderboardSize    = 5
	baseScore          = 50.0
	speedBonusFactor   = 10.0
	perfectAccuracy    = 100.0

	easyMultiplier     = 1.0
	moderateMultiplier = 1.5
	complexMultiplier  = 2.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeed makes pattern generation and visualization jitter deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game content, not security material
	}
}

// Engine runs one game session at a time. It is not safe for concurrent use;
// each active session owns its own instance and the caller serializes access.
type Engine struct {
	rng *rand.Rand

	mode         Mode
	patternIndex int
	batches      map[Mode][]string
	leaderboard  map[Mode][]float64
	state        State
}

// New constructs an Engine with a fresh initial state.
func New(opts ...Option) *Engine {
	e := &Engine{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game content, not security material
		batches:     make(map[Mode][]string),
		leaderboard: make(map[Mode][]float64),
		state:       newState(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// StartGame begins a new session: a fresh 10-pattern batch for mode, a full
// state reset, and the first pattern issued. Any previous batch for the mode
// is discarded. An unknown mode is rejected with no state change.
func (e *Engine) StartGame(mode Mode) (string, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return "", err
	}

	batch := generatePatterns(e.rng, patternsPerSession, mode.complexity())
	if len(batch) == 0 {
		return "", ErrPatternGeneration
	}

	e.batches[mode] = batch
	e.mode = mode
	e.patternIndex = 0
	e.state = newState()

	pattern, ok := e.NextPattern()
	if !ok {
		return "", ErrPatternGeneration
	}
	return pattern, nil
}

// NextPattern issues the next pattern in the active batch, advancing the
// index. ok is false when no game is active or the batch is exhausted.
func (e *Engine) NextPattern() (string, bool) {
	if e.mode == "" {
		return "", false
	}

	batch := e.batches[e.mode]
	if e.patternIndex >= len(batch) {
		return "", false
	}

	pattern := batch[e.patternIndex]
	e.patternIndex++
	return pattern, true
}

// Remaining returns how many patterns of the active batch are still unissued.
func (e *Engine) Remaining() int {
	if e.mode == "" {
		return 0
	}
	return len(e.batches[e.mode]) - e.patternIndex
}

// CheckPattern compares input against the most recently issued pattern and,
// on a match, scores it and evolves the session state. With no active game or
// no issued pattern it returns (false, 0) rather than an error. A mismatch
// mutates nothing.
func (e *Engine) CheckPattern(input string) (bool, float64) {
	if e.mode == "" || e.patternIndex <= 0 {
		return false, 0.0
	}

	batch := e.batches[e.mode]
	if e.patternIndex > len(batch) {
		return false, 0.0
	}

	target := batch[e.patternIndex-1]
	if !strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(target)) {
		return false, 0.0
	}

	base := baseScore * e.mode.multiplier()
	// Speed bonus reads the pre-update compression ratio.
	speedBonus := e.state.TimeCompressionRatio * speedBonusFactor

	e.state.AccuracyHistory = append(e.state.AccuracyHistory, perfectAccuracy)
	e.state.TimingHistory = append(e.state.TimingHistory, speedBonus)
	e.state.PatternsCompleted++
	e.state.advance(1.0, len(batch))

	total := base + speedBonus
	e.recordScore(e.mode, total)

	return true, total
}

// recordScore pushes a score into the mode's leaderboard, keeping the top
// entries sorted descending.
func (e *Engine) recordScore(mode Mode, score float64) {
	scores := append(e.leaderboard[mode], score)
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > leaderboardSize {
		scores = scores[:leaderboardSize]
	}
	e.leaderboard[mode] = scores
}

// Leaderboard returns a defensive copy of the per-mode top scores.
func (e *Engine) Leaderboard() map[Mode][]float64 {
	out := make(map[Mode][]float64, len(Modes()))
	for _, mode := range Modes() {
		out[mode] = append([]float64(nil), e.leaderboard[mode]...)
	}
	return out
}

// Mode returns the active mode, or the empty string when idle.
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns a snapshot of the session's progress record.
func (e *Engine) State() State {
	return e.state.snapshot()
}
