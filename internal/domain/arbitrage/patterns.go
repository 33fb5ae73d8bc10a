package arbitrage

import (
	"fmt"
	"math/rand"
	"strings"
)

// Mode selects pattern complexity and the score multiplier.
type Mode string

// Supported game modes.
const (
	ModeEasy     Mode = "easy"
	ModeModerate Mode = "moderate"
	ModeComplex  Mode = "complex"
)

// Modes lists all supported modes in ascending complexity order.
func Modes() []Mode {
	return []Mode{ModeEasy, ModeModerate, ModeComplex}
}

// ParseMode validates a raw mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeEasy:
		return ModeEasy, nil
	case ModeModerate:
		return ModeModerate, nil
	case ModeComplex:
		return ModeComplex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// complexity returns the tier used by pattern generation: easy patterns carry
// 3 tokens, moderate 4, complex 5.
func (m Mode) complexity() int {
	switch m {
	case ModeModerate:
		return 2
	case ModeComplex:
		return 3
	default:
		return 1
	}
}

// multiplier returns the base-score multiplier for the mode.
func (m Mode) multiplier() float64 {
	switch m {
	case ModeModerate:
		return moderateMultiplier
	case ModeComplex:
		return complexMultiplier
	default:
		return easyMultiplier
	}
}

// Fixed word banks. Token order within a pattern is quantum, action,
// [sequence], [quantum], identifier with the bracketed insertions applied at
// indexes 2 and 3 for the moderate and complex tiers.
var (
	quantumWords    = []string{"quantum", "temporal", "neural", "cosmic", "photon", "wave", "flux", "sync", "pulse", "phase"}
	actionWords     = []string{"leap", "shift", "flow", "drift", "surge", "dive", "bend", "warp", "fold", "loop"}
	sequenceWords   = []string{"sequence", "pattern", "matrix", "field", "stream", "chain", "array", "grid", "mesh", "web"}
	identifierWords = []string{"alpha", "beta", "gamma", "delta", "omega", "prime", "core", "node", "apex", "zero"}
)

// generatePatterns produces count dot-joined token sequences for the given
// complexity tier.
func generatePatterns(rng *rand.Rand, count, complexity int) []string {
	patterns := make([]string, 0, count)

	for i := 0; i < count; i++ {
		words := []string{
			pick(rng, quantumWords),
			pick(rng, actionWords),
			pick(rng, identifierWords),
		}

		if complexity >= 2 {
			words = insertAt(words, 2, pick(rng, sequenceWords))
		}
		if complexity >= 3 {
			words = insertAt(words, 3, pick(rng, quantumWords))
		}

		patterns = append(patterns, strings.Join(words, "."))
	}

	return patterns
}

func pick(rng *rand.Rand, bank []string) string {
	return bank[rng.Intn(len(bank))]
}

func insertAt(words []string, i int, w string) []string {
	words = append(words, "")
	copy(words[i+1:], words[i:])
	words[i] = w
	return words
}
