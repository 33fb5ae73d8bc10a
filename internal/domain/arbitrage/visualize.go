package arbitrage

// Visualization constants: printable ASCII normalization, per-sample decay
// factors, jitter scale, and the smoothing kernel.
const (
	asciiOffset = 32
	asciiRange  = 95

	secondSampleScale = 0.8
	thirdSampleScale  = 0.6
	jitterScale       = 0.1
)

var smoothingKernel = [3]float64{0.3, 0.4, 0.3}

// Visualization carries presentation data for a pattern sequence. It has no
// bearing on scoring.
type Visualization struct {
	Wave            []float64 `json:"wave"`
	NeuralResonance float64   `json:"neural_resonance"`
	DilationLevel   float64   `json:"dilation_level"`
}

// Visualize maps each character of sequence to three decaying wave samples
// with resonance-scaled Gaussian jitter, then applies a 3-tap valid-mode
// smoothing convolution (output length 3n-2) whenever at least one full
// kernel window exists. The session's current resonance and compression
// ratio are passed through unchanged.
func (e *Engine) Visualize(sequence string) Visualization {
	resonance := e.state.NeuralResonance

	wave := make([]float64, 0, 3*len(sequence))
	for _, ch := range sequence {
		value := float64(int(ch)-asciiOffset) / asciiRange
		jitter := e.rng.NormFloat64() * jitterScale * resonance
		wave = append(wave,
			value+jitter,
			value*secondSampleScale+jitter,
			value*thirdSampleScale+jitter,
		)
	}

	if len(wave) >= len(smoothingKernel) {
		wave = smooth(wave)
	}

	return Visualization{
		Wave:            wave,
		NeuralResonance: resonance,
		DilationLevel:   e.state.TimeCompressionRatio,
	}
}

// smooth convolves the wave with the smoothing kernel in valid mode.
func smooth(wave []float64) []float64 {
	out := make([]float64, len(wave)-len(smoothingKernel)+1)
	for i := range out {
		var acc float64
		for j, k := range smoothingKernel {
			acc += wave[i+j] * k
		}
		out[i] = acc
	}
	return out
}
