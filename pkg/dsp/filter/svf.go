// Package filter provides per-sample filters for tone controls.
package filter

import "math"

// SVF implements a zero-delay-feedback state variable filter for one
// channel. All four responses are computed on every sample.
type SVF struct {
	g float32 // frequency coefficient
	k float32 // damping coefficient (1/Q)

	ic1eq float32
	ic2eq float32
}

// SVFOutputs holds all filter outputs
type SVFOutputs struct {
	Lowpass  float32
	Highpass float32
	Bandpass float32
	Notch    float32
}

// NewSVF creates a filter at frequency with the given Q.
func NewSVF(sampleRate, frequency, q float64) *SVF {
	s := &SVF{}
	s.SetFrequencyAndQ(sampleRate, frequency, q)
	return s
}

// Reset clears the filter state
func (s *SVF) Reset() {
	s.ic1eq = 0
	s.ic2eq = 0
}

// SetFrequency sets the cutoff, clamped below Nyquist.
func (s *SVF) SetFrequency(sampleRate, frequency float64) {
	nyquist := sampleRate * 0.49
	if frequency > nyquist {
		frequency = nyquist
	}
	if frequency < 1 {
		frequency = 1
	}
	// Pre-warp for the bilinear transform
	s.g = float32(math.Tan(math.Pi * frequency / sampleRate))
}

// SetQ sets the filter resonance (Q factor)
func (s *SVF) SetQ(q float64) {
	if q < 0.1 {
		q = 0.1
	}
	s.k = float32(1.0 / q)
}

// SetFrequencyAndQ sets both frequency and Q in one call
func (s *SVF) SetFrequencyAndQ(sampleRate, frequency, q float64) {
	s.SetFrequency(sampleRate, frequency)
	s.SetQ(q)
}

// ProcessSample processes a single sample and returns all outputs
func (s *SVF) ProcessSample(input float32) SVFOutputs {
	g := s.g
	k := s.k
	a1 := 1.0 / (1.0 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	v3 := input - s.ic2eq
	v1 := a1*s.ic1eq + a2*v3
	v2 := s.ic2eq + a2*s.ic1eq + a3*v3

	s.ic1eq = 2.0*v1 - s.ic1eq
	s.ic2eq = 2.0*v2 - s.ic2eq

	return SVFOutputs{
		Lowpass:  v2,
		Bandpass: v1,
		Highpass: input - k*v1 - v2,
		Notch:    input - k*v1,
	}
}

// Tone is a single-knob tilt: 0 is fully dark (lowpass), 1 fully bright
// (highpass blended over the dry signal).
type Tone struct {
	svf        SVF
	sampleRate float64
	amount     float32
}

// NewTone creates a tone control centred at frequency.
func NewTone(sampleRate, frequency float64) *Tone {
	t := &Tone{sampleRate: sampleRate, amount: 0.5}
	t.svf.SetFrequencyAndQ(sampleRate, frequency, 0.707)
	return t
}

// SetAmount sets the tilt in 0..1.
func (t *Tone) SetAmount(amount float32) {
	t.amount = float32(math.Max(0, math.Min(1, float64(amount))))
}

// Reset clears the filter state.
func (t *Tone) Reset() {
	t.svf.Reset()
}

// Process filters one sample.
func (t *Tone) Process(input float32) float32 {
	out := t.svf.ProcessSample(input)
	// Crossfade lowpass -> dry -> dry+highpass
	if t.amount < 0.5 {
		w := t.amount * 2
		return out.Lowpass*(1-w) + input*w
	}
	w := (t.amount - 0.5) * 2
	return input + out.Highpass*w
}
