// Package effect defines the contract between pedal effect modules and the
// hosts that drive them.
package effect

// Module is implemented by every effect the host can run. The audio engine
// calls Init once, then ProcessMono or ProcessStereo per sample and reads
// AudioLeft/AudioRight afterwards. The control layer addresses parameters by
// id, resolving knobs and MIDI CC numbers through the mapping lookups.
type Module interface {
	Init(sampleRate float32)
	Name() string

	ParameterCount() int
	ParameterName(id int) (string, error)
	Parameter(id int) (uint8, error)
	SetParameter(id int, value uint8) error
	ParameterAsMagnitude(id int) (float32, error)
	SetParameterAsMagnitude(id int, magnitude float32) error
	MappedParameterIDForKnob(knob int) int
	MappedParameterIDForMidiCC(cc int) int

	// ProcessMono and ProcessStereo must not block or allocate.
	ProcessMono(in float32)
	ProcessStereo(inL, inR float32)
	AudioLeft() float32
	AudioRight() float32

	// OutputLEDBrightness returns 0..1.
	OutputLEDBrightness() float32
}
