package debug

import (
	"fmt"
	"math"
)

// Meter accumulates level statistics over a stream of sample blocks.
type Meter struct {
	ClipThreshold    float64
	SilenceThreshold float64

	peak       float32
	sumSquares float64
	sum        float64
	samples    int
	clipped    int
	nans       int
}

// MeterResult summarises everything a Meter has seen.
type MeterResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	Samples        int
	ClippedSamples int
	NaNCount       int
	Silent         bool
}

// NewMeter creates a meter with the usual clipping and silence thresholds.
func NewMeter() *Meter {
	return &Meter{
		ClipThreshold:    0.99,
		SilenceThreshold: 0.0001,
	}
}

// Add folds one block into the running statistics.
func (m *Meter) Add(block []float64) {
	for _, s := range block {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			m.nans++
			continue
		}
		a := s
		if a < 0 {
			a = -a
		}
		if float32(a) > m.peak {
			m.peak = float32(a)
		}
		if a >= m.ClipThreshold {
			m.clipped++
		}
		m.sum += s
		m.sumSquares += s * s
		m.samples++
	}
}

// Reset clears the statistics.
func (m *Meter) Reset() {
	m.peak, m.sum, m.sumSquares = 0, 0, 0
	m.samples, m.clipped, m.nans = 0, 0, 0
}

// Result returns the statistics so far.
func (m *Meter) Result() MeterResult {
	r := MeterResult{
		Peak:           m.peak,
		Samples:        m.samples,
		ClippedSamples: m.clipped,
		NaNCount:       m.nans,
	}
	if m.samples > 0 {
		r.RMS = float32(math.Sqrt(m.sumSquares / float64(m.samples)))
		r.DC = float32(m.sum / float64(m.samples))
	}
	r.Silent = float64(r.RMS) < m.SilenceThreshold
	return r
}

// Issues describes anything in r worth warning about.
func (r MeterResult) Issues(name string) []string {
	var issues []string
	if r.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d non-finite samples", name, r.NaNCount))
	}
	if r.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d clipped samples", name, r.ClippedSamples))
	}
	if r.Samples > 0 && math.Abs(float64(r.DC)) > 0.01 {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.4f", name, r.DC))
	}
	return issues
}

// LogStats logs r through the logger, warning about any issues.
func (r MeterResult) LogStats(l *Logger, name string) {
	l.Info("%s: %d samples, peak %.3f, rms %.3f", name, r.Samples, r.Peak, r.RMS)
	for _, issue := range r.Issues(name) {
		l.Warn("%s", issue)
	}
}
