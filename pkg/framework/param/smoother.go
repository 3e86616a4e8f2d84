package param

import (
	"math"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// LinearSmoothing ramps to the target in a fixed number of samples
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing uses a one-pole filter
	ExponentialSmoothing
)

// Smoother follows a parameter magnitude per sample so that 8-bit steps
// coming from a knob or CC do not produce zipper noise.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	isSmoothing   bool

	step float64
}

// NewSmoother creates a new parameter smoother.
// rate: samples to reach the target for linear, pole (0.9-0.999) for exponential
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     0.0001,
	}
}

// NewSmootherForTime creates a smoother that settles in roughly timeMs.
func NewSmootherForTime(smoothingType SmoothingType, sampleRate, timeMs float64) *Smoother {
	s := NewSmoother(smoothingType, 0)
	s.SetTime(sampleRate, timeMs)
	return s
}

// SetTime derives the rate from a sample rate and settle time.
func (s *Smoother) SetTime(sampleRate, timeMs float64) {
	samples := sampleRate * timeMs / 1000.0
	if samples < 1 {
		samples = 1
	}
	switch s.smoothingType {
	case LinearSmoothing:
		s.rate = samples
	case ExponentialSmoothing:
		// -60dB after timeMs
		s.rate = math.Exp(-6.908 / samples)
	}
}

// SetTarget sets the value to move towards.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}

	s.target = target
	s.isSmoothing = true

	if s.smoothingType == LinearSmoothing && s.rate > 0 {
		s.step = (target - s.current) / s.rate
	}
}

// Next returns the next smoothed value.
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.current = s.target
			s.isSmoothing = false
		}

	case LinearSmoothing:
		if s.rate <= 0 {
			s.current = s.target
			s.isSmoothing = false
			break
		}
		s.current += s.step
		if (s.step > 0 && s.current >= s.target) || (s.step <= 0 && s.current <= s.target) {
			s.current = s.target
			s.isSmoothing = false
		}
	}

	return s.current
}

// Follow sets the target to the magnitude of parameter id and advances
// one sample. Invalid ids leave the target unchanged.
func (s *Smoother) Follow(store *Store, id int) float64 {
	if m, err := store.Magnitude(id); err == nil {
		s.SetTarget(float64(m))
	}
	return s.Next()
}

// Fill writes successive smoothed values into buf.
func (s *Smoother) Fill(buf []float64) {
	for i := range buf {
		buf[i] = s.Next()
	}
}

// IsSmoothing returns true while the value is still moving.
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Current returns the last value produced without advancing.
func (s *Smoother) Current() float64 {
	return s.current
}

// Reset jumps to value immediately.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}

// SetThreshold sets the distance at which smoothing is considered done.
func (s *Smoother) SetThreshold(threshold float64) {
	s.threshold = threshold
}
