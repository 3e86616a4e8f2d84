package distortion

import (
	"math"
	"testing"
)

func TestWaveshaperBounds(t *testing.T) {
	curves := []struct {
		name  string
		curve CurveType
	}{
		{"hard", CurveHardClip},
		{"soft", CurveSoftClip},
		{"asymmetric", CurveAsymmetric},
		{"foldback", CurveFoldback},
	}

	for _, c := range curves {
		t.Run(c.name, func(t *testing.T) {
			w := NewWaveshaper(c.curve)
			w.SetDrive(20)
			w.SetAsymmetry(0.5)

			for i := -100; i <= 100; i++ {
				out := w.Process(float32(i) / 50)
				if out > 1.0001 || out < -1.0001 || math.IsNaN(float64(out)) {
					t.Fatalf("Process(%f) = %f out of range", float32(i)/50, out)
				}
			}
		})
	}
}

func TestWaveshaperSmallSignal(t *testing.T) {
	w := NewWaveshaper(CurveSoftClip)

	// tanh is close to linear near zero
	if got := w.Process(0.01); math.Abs(float64(got)-0.01) > 1e-5 {
		t.Errorf("Process(0.01) = %f", got)
	}
	if w.Process(0) != 0 {
		t.Error("Process(0) should be 0")
	}
}

func TestFoldback(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 0.5},
		{2, 0},
		{-1.5, -0.5},
	}

	for _, tt := range tests {
		if got := foldback(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("foldback(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestSetDriveFloor(t *testing.T) {
	w := NewWaveshaper(CurveHardClip)
	w.SetDrive(0.1)
	if w.Drive() != 1 {
		t.Errorf("Drive() = %f, want 1", w.Drive())
	}
}
