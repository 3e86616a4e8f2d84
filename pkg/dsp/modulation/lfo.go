// Package modulation provides low frequency oscillators.
package modulation

import (
	"math"
)

// Waveform represents the LFO waveform shape
type Waveform int

const (
	// WaveformSine produces a sine wave
	WaveformSine Waveform = iota
	// WaveformTriangle produces a triangle wave
	WaveformTriangle
	// WaveformSquare produces a square wave
	WaveformSquare
)

// MinFrequency and MaxFrequency bound the LFO rate in Hz.
const (
	MinFrequency = 0.05
	MaxFrequency = 20.0
)

// LFO is a bipolar low frequency oscillator.
type LFO struct {
	sampleRate float64
	frequency  float64
	phase      float64 // 0..1
	phaseInc   float64
	waveform   Waveform
}

// NewLFO creates a 1 Hz sine LFO.
func NewLFO(sampleRate float64) *LFO {
	l := &LFO{
		sampleRate: sampleRate,
		waveform:   WaveformSine,
	}
	l.SetFrequency(1.0)
	return l
}

// SetFrequency sets the LFO frequency in Hz, clamped to the LFO range.
func (l *LFO) SetFrequency(hz float64) {
	l.frequency = math.Max(MinFrequency, math.Min(MaxFrequency, hz))
	if l.sampleRate > 0 {
		l.phaseInc = l.frequency / l.sampleRate
	}
}

// Frequency returns the rate in Hz.
func (l *LFO) Frequency() float64 {
	return l.frequency
}

// SetWaveform sets the LFO waveform
func (l *LFO) SetWaveform(waveform Waveform) {
	l.waveform = waveform
}

// SetPhase sets the current phase, wrapped to 0..1.
func (l *LFO) SetPhase(phase float64) {
	l.phase = phase - math.Floor(phase)
}

// Phase returns the current phase (0-1)
func (l *LFO) Phase() float64 {
	return l.phase
}

// Reset restarts the cycle.
func (l *LFO) Reset() {
	l.phase = 0
}

// At evaluates the waveform at the current phase plus offset without
// advancing. Used for a second channel running out of phase.
func (l *LFO) At(offset float64) float64 {
	p := l.phase + offset
	p -= math.Floor(p)
	return shape(l.waveform, p)
}

// Next returns the value at the current phase in -1..1 and advances one
// sample.
func (l *LFO) Next() float64 {
	v := shape(l.waveform, l.phase)
	l.phase += l.phaseInc
	if l.phase >= 1.0 {
		l.phase -= 1.0
	}
	return v
}

func shape(w Waveform, p float64) float64 {
	switch w {
	case WaveformTriangle:
		if p < 0.5 {
			return 4.0*p - 1.0
		}
		return 3.0 - 4.0*p
	case WaveformSquare:
		if p < 0.5 {
			return 1.0
		}
		return -1.0
	}
	return math.Sin(2.0 * math.Pi * p)
}

// Unipolar maps a bipolar LFO value to 0..1.
func Unipolar(v float64) float64 {
	return 0.5 * (v + 1.0)
}
