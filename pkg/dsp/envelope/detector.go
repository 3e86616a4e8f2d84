// Package envelope provides envelope followers for level metering and LED
// feedback.
package envelope

import (
	"math"
)

// DetectorMode defines the envelope detection mode
type DetectorMode int

const (
	// ModePeak follows the rectified signal
	ModePeak DetectorMode = iota
	// ModeRMS follows a sliding-window RMS
	ModeRMS
)

// Detector is a one-pole attack/release envelope follower.
type Detector struct {
	sampleRate float64
	mode       DetectorMode

	attack      float64 // seconds
	release     float64 // seconds
	attackCoef  float64
	releaseCoef float64

	envelope float64

	rmsWindow []float64
	rmsIndex  int
	rmsSum    float64
}

// NewDetector creates a detector with 1ms attack and 100ms release.
func NewDetector(sampleRate float64, mode DetectorMode) *Detector {
	d := &Detector{
		sampleRate: sampleRate,
		mode:       mode,
		attack:     0.001,
		release:    0.100,
	}
	if mode == ModeRMS {
		d.SetRMSWindow(3.0)
	}
	d.updateCoefficients()
	return d
}

// SetAttack sets the attack time in seconds
func (d *Detector) SetAttack(seconds float64) {
	d.attack = math.Max(0.0001, seconds)
	d.updateCoefficients()
}

// SetRelease sets the release time in seconds
func (d *Detector) SetRelease(seconds float64) {
	d.release = math.Max(0.0001, seconds)
	d.updateCoefficients()
}

// SetRMSWindow sets the RMS window length in milliseconds. Allocates.
func (d *Detector) SetRMSWindow(ms float64) {
	n := int(d.sampleRate * ms / 1000.0)
	if n < 1 {
		n = 1
	}
	d.rmsWindow = make([]float64, n)
	d.rmsIndex = 0
	d.rmsSum = 0
}

func (d *Detector) updateCoefficients() {
	d.attackCoef = 1.0 - math.Exp(-1.0/(d.attack*d.sampleRate))
	d.releaseCoef = 1.0 - math.Exp(-1.0/(d.release*d.sampleRate))
}

// Detect processes a single sample and returns the envelope value
func (d *Detector) Detect(input float32) float32 {
	level := math.Abs(float64(input))

	if d.mode == ModeRMS {
		sq := level * level
		d.rmsSum += sq - d.rmsWindow[d.rmsIndex]
		d.rmsWindow[d.rmsIndex] = sq
		d.rmsIndex = (d.rmsIndex + 1) % len(d.rmsWindow)
		level = math.Sqrt(math.Max(0, d.rmsSum/float64(len(d.rmsWindow))))
	}

	if level > d.envelope {
		d.envelope += (level - d.envelope) * d.attackCoef
	} else {
		d.envelope += (level - d.envelope) * d.releaseCoef
	}
	return float32(d.envelope)
}

// Envelope returns the current envelope value
func (d *Detector) Envelope() float32 {
	return float32(d.envelope)
}

// Reset resets the detector state
func (d *Detector) Reset() {
	d.envelope = 0
	for i := range d.rmsWindow {
		d.rmsWindow[i] = 0
	}
	d.rmsSum = 0
	d.rmsIndex = 0
}
