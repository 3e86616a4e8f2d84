// Package distortion provides static waveshaping curves.
package distortion

import (
	"math"
)

// CurveType represents different waveshaping transfer functions
type CurveType int

const (
	// CurveHardClip clips the signal at ±1
	CurveHardClip CurveType = iota
	// CurveSoftClip applies tanh saturation
	CurveSoftClip
	// CurveAsymmetric clips the two half waves differently, like a diode pair
	// with mismatched forward voltages
	CurveAsymmetric
	// CurveFoldback folds the signal back on itself past ±1
	CurveFoldback
)

// Waveshaper applies drive followed by a transfer curve.
type Waveshaper struct {
	curveType CurveType
	drive     float32
	asymmetry float32
}

// NewWaveshaper creates a new waveshaper with the specified curve type
func NewWaveshaper(curveType CurveType) *Waveshaper {
	return &Waveshaper{
		curveType: curveType,
		drive:     1.0,
	}
}

// SetCurveType changes the waveshaping curve
func (w *Waveshaper) SetCurveType(curveType CurveType) {
	w.curveType = curveType
}

// SetDrive sets the input gain, at least 1.
func (w *Waveshaper) SetDrive(drive float32) {
	if drive < 1 {
		drive = 1
	}
	w.drive = drive
}

// Drive returns the current input gain.
func (w *Waveshaper) Drive() float32 {
	return w.drive
}

// SetAsymmetry sets the asymmetric curve's bias in -1..1.
func (w *Waveshaper) SetAsymmetry(asymmetry float32) {
	w.asymmetry = float32(math.Max(-1, math.Min(1, float64(asymmetry))))
}

// Process shapes one sample.
func (w *Waveshaper) Process(input float32) float32 {
	x := float64(input * w.drive)

	switch w.curveType {
	case CurveHardClip:
		return float32(math.Max(-1, math.Min(1, x)))
	case CurveSoftClip:
		return float32(math.Tanh(x))
	case CurveAsymmetric:
		if x >= 0 {
			return float32(math.Tanh(x * (1 + float64(w.asymmetry))))
		}
		return float32(math.Tanh(x * (1 - float64(w.asymmetry))))
	case CurveFoldback:
		return float32(foldback(x))
	}
	return float32(x)
}

func foldback(x float64) float64 {
	// Map to 0..1 over a 4-unit period, then mirror every other half
	normalized := (x + 1.0) / 4.0
	folded := normalized - math.Floor(normalized)
	if folded > 0.5 {
		folded = 1.0 - folded
	}
	return folded*4.0 - 1.0
}
