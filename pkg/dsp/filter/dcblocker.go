package filter

import "math"

// DCBlocker is a first-order highpass with a cutoff of a few Hz. It strips
// the offset asymmetric clipping leaves behind:
//
//	y[n] = x[n] - x[n-1] + R*y[n-1]
type DCBlocker struct {
	x1, y1      float32
	coefficient float32
}

// NewDCBlocker creates a blocker with the given cutoff.
func NewDCBlocker(sampleRate, cutoffHz float64) *DCBlocker {
	dc := &DCBlocker{}
	dc.SetCutoff(sampleRate, cutoffHz)
	return dc
}

// SetCutoff updates the cutoff frequency.
func (dc *DCBlocker) SetCutoff(sampleRate, cutoffHz float64) {
	r := float32(1.0 - 2.0*math.Pi*cutoffHz/sampleRate)

	// Keep the pole inside the unit circle
	if r < 0.9 {
		r = 0.9
	}
	if r > 0.9999 {
		r = 0.9999
	}
	dc.coefficient = r
}

// Process filters one sample.
func (dc *DCBlocker) Process(input float32) float32 {
	output := input - dc.x1 + dc.coefficient*dc.y1
	dc.x1 = input
	dc.y1 = output
	return output
}

// Reset clears the state.
func (dc *DCBlocker) Reset() {
	dc.x1 = 0
	dc.y1 = 0
}
