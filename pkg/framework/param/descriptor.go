// Package param provides parameter storage for pedal effect modules.
package param

import (
	"fmt"
	"math"
)

// Unmapped marks a descriptor that is not bound to a knob or MIDI CC.
const Unmapped = -1

// NotFound is returned by the mapping lookups when no descriptor matches.
const NotFound = -1

// Descriptor is the static metadata of one effect parameter.
// Descriptors are declared once per effect type and shared by every instance.
type Descriptor struct {
	Name          string
	DefaultValue  uint8
	KnobMapping   int
	MidiCCMapping int
}

// HasKnob reports whether the parameter is bound to a physical knob.
func (d Descriptor) HasKnob() bool {
	return d.KnobMapping >= 0
}

// HasMidiCC reports whether the parameter is bound to a MIDI CC number.
func (d Descriptor) HasMidiCC() bool {
	return d.MidiCCMapping >= 0
}

// String returns a one-line summary used by listings and logs.
func (d Descriptor) String() string {
	knob := "-"
	if d.HasKnob() {
		knob = fmt.Sprintf("%d", d.KnobMapping)
	}
	cc := "-"
	if d.HasMidiCC() {
		cc = fmt.Sprintf("%d", d.MidiCCMapping)
	}
	return fmt.Sprintf("%s (default %d / %s, knob %s, cc %s)",
		d.Name, d.DefaultValue, FormatPercent(RawToMagnitude(d.DefaultValue)), knob, cc)
}

// RawToMagnitude converts a raw 8-bit value to the 0..1 range.
func RawToMagnitude(raw uint8) float32 {
	return float32(raw) / 255.0
}

// MagnitudeToRaw converts a 0..1 magnitude to the nearest raw value.
// Values outside 0..1 are clamped and NaN maps to 0.
func MagnitudeToRaw(magnitude float32) uint8 {
	if magnitude != magnitude || magnitude <= 0 {
		return 0
	}
	if magnitude >= 1 {
		return 255
	}
	return uint8(math.Round(float64(magnitude) * 255.0))
}
