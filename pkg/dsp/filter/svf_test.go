package filter

import (
	"math"
	"testing"
)

func sineRMS(process func(float32) float32, freq, sampleRate float64) float64 {
	var sum float64
	n := int(sampleRate / 10)
	for i := 0; i < n; i++ {
		out := process(float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)))
		// Skip the settling period
		if i >= n/2 {
			sum += float64(out) * float64(out)
		}
	}
	return math.Sqrt(sum / float64(n-n/2))
}

func TestSVFResponses(t *testing.T) {
	const sr = 48000.0

	tests := []struct {
		name   string
		freq   float64
		pick   func(SVFOutputs) float32
		passes bool
	}{
		{"lowpass passes low", 100, func(o SVFOutputs) float32 { return o.Lowpass }, true},
		{"lowpass stops high", 15000, func(o SVFOutputs) float32 { return o.Lowpass }, false},
		{"highpass passes high", 15000, func(o SVFOutputs) float32 { return o.Highpass }, true},
		{"highpass stops low", 50, func(o SVFOutputs) float32 { return o.Highpass }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSVF(sr, 1000, 0.707)
			rms := sineRMS(func(x float32) float32 { return tt.pick(s.ProcessSample(x)) }, tt.freq, sr)

			// A unit sine has RMS 0.707
			if tt.passes && rms < 0.6 {
				t.Errorf("RMS = %f, expected pass band", rms)
			}
			if !tt.passes && rms > 0.2 {
				t.Errorf("RMS = %f, expected stop band", rms)
			}
		})
	}
}

func TestToneCentreIsDry(t *testing.T) {
	tone := NewTone(48000, 1500)
	tone.SetAmount(0.5)

	for _, x := range []float32{0.1, -0.4, 0.9} {
		if got := tone.Process(x); got != x {
			t.Errorf("Process(%f) = %f at centre position", x, got)
		}
	}
}

func TestToneTilt(t *testing.T) {
	const sr = 48000.0

	dark := NewTone(sr, 1500)
	dark.SetAmount(0)
	bright := NewTone(sr, 1500)
	bright.SetAmount(1)

	darkHigh := sineRMS(dark.Process, 10000, sr)
	brightHigh := sineRMS(bright.Process, 10000, sr)
	if darkHigh >= brightHigh {
		t.Errorf("dark setting should cut highs: dark %f, bright %f", darkHigh, brightHigh)
	}

	dark.SetAmount(-3)
	if dark.amount != 0 {
		t.Errorf("SetAmount should clamp, got %f", dark.amount)
	}
}
