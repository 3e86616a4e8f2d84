// Package gain provides amplitude and dB helpers.
package gain

import (
	"math"
)

// MinDB is the floor used for silence.
const MinDB = -120.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return math.Max(MinDB, 20.0*math.Log10(linear))
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// DbToLinear32 is the float32 version of DbToLinear.
func DbToLinear32(db float32) float32 {
	return float32(DbToLinear(float64(db)))
}

// MagnitudeToDb maps a 0..1 control magnitude onto [minDB, maxDB]. A
// magnitude of 0 is silence when mute is set.
func MagnitudeToDb(magnitude, minDB, maxDB float32, mute bool) float32 {
	if mute && magnitude <= 0 {
		return MinDB
	}
	return minDB + (maxDB-minDB)*magnitude
}

// SoftClip limits input to ±threshold with a smooth knee.
func SoftClip(input, threshold float32) float32 {
	absInput := input
	if absInput < 0 {
		absInput = -absInput
	}
	if absInput <= threshold {
		return input
	}
	return threshold * fastTanh32(input/threshold)
}

// HardClip limits input to ±threshold.
func HardClip(input, threshold float32) float32 {
	if input > threshold {
		return threshold
	}
	if input < -threshold {
		return -threshold
	}
	return input
}

// fastTanh32 approximates tanh for soft clipping.
func fastTanh32(x float32) float32 {
	if x < -3 {
		return -1
	}
	if x > 3 {
		return 1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}
