// Package mix provides equal-power dry/wet mixing.
package mix

import (
	"math"
)

// EqualPowerGains returns cosine/sine gains for a crossfade position in
// 0..1. The summed power of the two gains stays at 1.
func EqualPowerGains(position float32) (a, b float32) {
	if position < 0 {
		position = 0
	}
	if position > 1 {
		position = 1
	}
	angle := float64(position) * math.Pi / 2.0
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}

// EqualPower performs an equal-power crossfade.
// position: 0.0 = 100% a, 1.0 = 100% b
func EqualPower(a, b, position float32) float32 {
	ga, gb := EqualPowerGains(position)
	return a*ga + b*gb
}
