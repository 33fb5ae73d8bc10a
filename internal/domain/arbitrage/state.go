package arbitrage

// Initial gauge values applied at construction and on every new game.
const (
	initialResonance   = 0.3
	initialCoherence   = 0.3
	initialStability   = 0.3
	initialCompression = 1.0
	initialDepth       = 0.1
)

// Gauge update coefficients.
const (
	resonanceDecay   = 0.8
	resonanceGain    = 0.2
	coherenceDecay   = 0.7
	coherenceGain    = 0.3
	compressionScale = 2.0
)

// State is the per-session progress record. Gauges stay in [0,1] except
// TimeCompressionRatio, which starts at 1.0 and grows with progress.
type State struct {
	PatternsCompleted    int       `json:"patterns_completed"`
	AccuracyHistory      []float64 `json:"accuracy_history"`
	TimingHistory        []float64 `json:"timing_history"`
	NeuralResonance      float64   `json:"neural_resonance"`
	QuantumCoherence     float64   `json:"quantum_coherence"`
	RealityStability     float64   `json:"reality_stability"`
	TimeCompressionRatio float64   `json:"time_compression_ratio"`
	ExperienceDepth      float64   `json:"experience_depth"`
}

// newState returns the fixed initial state.
func newState() State {
	return State{
		NeuralResonance:      initialResonance,
		QuantumCoherence:     initialCoherence,
		RealityStability:     initialStability,
		TimeCompressionRatio: initialCompression,
		ExperienceDepth:      initialDepth,
	}
}

// advance applies the gauge update rule after a correct match. Later gauges
// read earlier-updated ones within the same call, so the order is fixed:
// resonance, coherence, stability, compression.
func (s *State) advance(accuracy float64, totalPatterns int) {
	s.NeuralResonance = clamp1(s.NeuralResonance*resonanceDecay + accuracy*resonanceGain)

	progress := float64(s.PatternsCompleted) / float64(totalPatterns)
	s.QuantumCoherence = clamp1(s.QuantumCoherence*coherenceDecay + progress*coherenceGain)

	s.RealityStability = clamp1((s.NeuralResonance + s.QuantumCoherence) / 2)

	s.TimeCompressionRatio = 1 + s.QuantumCoherence*compressionScale*progress
}

// snapshot returns a copy with detached history slices.
func (s *State) snapshot() State {
	out := *s
	out.AccuracyHistory = append([]float64(nil), s.AccuracyHistory...)
	out.TimingHistory = append([]float64(nil), s.TimingHistory...)
	return out
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
