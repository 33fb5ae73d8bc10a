// Package synergy quantifies how well a candidate's resume aligns with
// synthetic team profiles via cosine similarity over skill/trait vectors.
package synergy

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Tier threshold constants. Analyze uses the 0.8/0.5 pair; QuickTier uses
// 0.7/0.5. Both sets are observable behavior and must not be unified.
const (
	excellentThreshold = 0.8
	goodThreshold      = 0.5
	highThreshold      = 0.7
	moderateThreshold  = 0.5
)

// Default generation constants.
const (
	defaultTeamCount = 3
	profileMaxLevel  = 5
)

// skillCatalog and traitCatalog are fixed, ordered. Vector layout is
// skills first, then traits; length is always len(skills)+len(traits).
var skillCatalog = []string{"Python", "Data Science", "Management", "Machine Learning", "Leadership"}

var traitCatalog = []string{"adaptability", "communication", "initiative", "teamwork"}

// FeatureCount returns the fixed candidate vector length.
func FeatureCount() int {
	return len(skillCatalog) + len(traitCatalog)
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithSeed makes team-profile generation deterministic for tests.
func WithSeed(seed int64) Option {
	return func(s *Scorer) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // non-cryptographic profile sampling
	}
}

// Scorer builds candidate vectors and scores them against team profiles.
// Extraction and scoring are pure; only profile generation draws randomness.
type Scorer struct {
	rng *rand.Rand
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // non-cryptographic profile sampling
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ExtractCandidateSkills counts case-insensitive occurrences of each catalog
// term in resumeText. The result always has FeatureCount components; absent
// terms contribute zero, so empty text yields an all-zero vector.
func (s *Scorer) ExtractCandidateSkills(resumeText string) []int {
	lower := strings.ToLower(resumeText)

	vec := make([]int, 0, FeatureCount())
	for _, skill := range skillCatalog {
		vec = append(vec, strings.Count(lower, strings.ToLower(skill)))
	}
	for _, trait := range traitCatalog {
		vec = append(vec, strings.Count(lower, strings.ToLower(trait)))
	}
	return vec
}

// GenerateTeamProfiles returns numTeams vectors of length numFeatures, each
// component sampled uniformly from [0, profileMaxLevel]. Callers must pass
// the length of the candidate vector they intend to score against; the
// contract is "match caller-supplied length", not a hardcoded catalog size.
func (s *Scorer) GenerateTeamProfiles(numFeatures, numTeams int) [][]int {
	if numTeams <= 0 {
		numTeams = defaultTeamCount
	}

	profiles := make([][]int, numTeams)
	for i := range profiles {
		p := make([]int, numFeatures)
		for j := range p {
			p[j] = s.rng.Intn(profileMaxLevel + 1)
		}
		profiles[i] = p
	}
	return profiles
}

// Scores returns the cosine similarity between the candidate vector and each
// team profile. Any dimension mismatch rejects the whole call before any
// computation.
func (s *Scorer) Scores(candidate []int, teams [][]int) ([]float64, error) {
	for i, team := range teams {
		if len(team) != len(candidate) {
			return nil, fmt.Errorf("%w: candidate has %d features, team %d has %d",
				ErrDimensionMismatch, len(candidate), i+1, len(team))
		}
	}

	scores := make([]float64, len(teams))
	for i, team := range teams {
		scores[i] = cosine(candidate, team)
	}
	return scores, nil
}

// Analyze formats a per-team fit message using the 0.8/0.5 tier boundaries.
// Exactly 0.8 is not an excellent fit and exactly 0.5 is not a good fit.
func (s *Scorer) Analyze(candidate []int, teams [][]int) ([]string, error) {
	scores, err := s.Scores(candidate, teams)
	if err != nil {
		return nil, err
	}

	analysis := make([]string, len(scores))
	for i, score := range scores {
		switch {
		case score > excellentThreshold:
			analysis[i] = fmt.Sprintf("Team %d: Excellent fit. High synergy score of %.2f.", i+1, score)
		case score > goodThreshold:
			analysis[i] = fmt.Sprintf("Team %d: Good fit. Moderate synergy score of %.2f.", i+1, score)
		default:
			analysis[i] = fmt.Sprintf("Team %d: Low synergy score of %.2f. Training or adjustments may be needed.", i+1, score)
		}
	}
	return analysis, nil
}

// QuickTier classifies a score with the presentation-only 0.7/0.5 thresholds.
// This intentionally differs from Analyze's boundaries.
func QuickTier(score float64) string {
	switch {
	case score > highThreshold:
		return "High"
	case score > moderateThreshold:
		return "Moderate"
	default:
		return "Low"
	}
}

// cosine computes cosine similarity for equal-length count vectors.
// A zero vector against anything is defined as 0.
func cosine(a, b []int) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
