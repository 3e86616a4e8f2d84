package effects

import (
	"math"

	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// DefaultSampleRate is used until the host calls Init.
const DefaultSampleRate = 48000

// smoothingMs is the settle time for knob-driven values.
const smoothingMs = 20

// expRange maps a 0..1 magnitude onto [lo, hi] exponentially, which suits
// times, rates and gains.
func expRange(m, lo, hi float64) float64 {
	return lo * math.Pow(hi/lo, m)
}

// linRange maps a 0..1 magnitude onto [lo, hi].
func linRange(m, lo, hi float64) float64 {
	return lo + (hi-lo)*m
}

// selector picks one of n choices from a raw value, splitting 0..255 into
// equal bands.
func selector(store *param.Store, id, n int) int {
	raw, err := store.Get(id)
	if err != nil {
		return 0
	}
	s := int(raw) * n / 256
	if s >= n {
		s = n - 1
	}
	return s
}

func newSmoother(sampleRate float32) *param.Smoother {
	return param.NewSmootherForTime(param.ExponentialSmoothing, float64(sampleRate), smoothingMs)
}

// resetTo jumps a smoother to the current magnitude of id so a fresh
// instance does not glide from zero.
func resetTo(s *param.Smoother, store *param.Store, id int) {
	if m, err := store.Magnitude(id); err == nil {
		s.Reset(float64(m))
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
