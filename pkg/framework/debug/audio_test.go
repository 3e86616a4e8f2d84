package debug

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestMeter(t *testing.T) {
	t.Run("Sine", func(t *testing.T) {
		m := NewMeter()

		buffer := make([]float64, 960)
		for i := range buffer {
			buffer[i] = 0.5 * math.Sin(2*math.Pi*100*float64(i)/48000)
		}
		// Two blocks accumulate like one
		m.Add(buffer[:480])
		m.Add(buffer[480:])

		r := m.Result()
		if r.Samples != 960 {
			t.Errorf("Samples = %d", r.Samples)
		}
		if r.Peak < 0.49 || r.Peak > 0.51 {
			t.Errorf("Peak incorrect: %f", r.Peak)
		}
		expectedRMS := 0.5 / math.Sqrt(2)
		if math.Abs(float64(r.RMS)-expectedRMS) > 0.01 {
			t.Errorf("RMS incorrect: %f, expected ~%f", r.RMS, expectedRMS)
		}
		if r.Silent {
			t.Error("Should not be silent")
		}
		if len(r.Issues("out")) != 0 {
			t.Errorf("Unexpected issues: %v", r.Issues("out"))
		}
	})

	t.Run("Problems", func(t *testing.T) {
		m := NewMeter()
		m.Add([]float64{0.5, 0.99, 1.0, -0.99, -1.0, math.NaN()})

		r := m.Result()
		if r.ClippedSamples != 4 {
			t.Errorf("Wrong clipped sample count: %d", r.ClippedSamples)
		}
		if r.NaNCount != 1 {
			t.Errorf("Wrong NaN count: %d", r.NaNCount)
		}

		var buf bytes.Buffer
		l := New(&buf, "", FlagLevel)
		r.LogStats(l, "out")
		if !strings.Contains(buf.String(), "[WARN] out: 4 clipped samples") {
			t.Errorf("Missing clipping warning: %s", buf.String())
		}

		m.Reset()
		if r := m.Result(); r.Samples != 0 || !r.Silent {
			t.Errorf("Reset result = %+v", r)
		}
	})
}
