package effect

import (
	"errors"

	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// ErrAlreadyInitialized is returned when InitParams is called twice.
var ErrAlreadyInitialized = errors.New("effect: parameters already initialized")

// Base provides parameter storage and the default processing behaviour.
// Concrete effects embed *Base and override ProcessMono, ProcessStereo,
// OutputLEDBrightness and, when they need buffers, Init.
type Base struct {
	name        string
	sampleRate  float32
	params      *param.Store
	initialized bool

	audioLeft  float32
	audioRight float32
}

// NewBase creates a base with no parameters.
func NewBase(name string) *Base {
	return &Base{
		name:   name,
		params: &param.Store{},
	}
}

// Init records the sample rate.
func (b *Base) Init(sampleRate float32) {
	b.sampleRate = sampleRate
}

// InitParams allocates one value per descriptor, set to its default. The
// parameter count is fixed by the first call; later calls are rejected.
func (b *Base) InitParams(descriptors []param.Descriptor) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.params = param.NewStore(descriptors)
	b.initialized = true
	return nil
}

// Params exposes the underlying store.
func (b *Base) Params() *param.Store {
	return b.params
}

// SampleRate returns the rate passed to Init.
func (b *Base) SampleRate() float32 {
	return b.sampleRate
}

// Name returns the display name.
func (b *Base) Name() string {
	return b.name
}

// ParameterCount returns the fixed number of parameters.
func (b *Base) ParameterCount() int {
	return b.params.Count()
}

// ParameterName returns the name of parameter id.
func (b *Base) ParameterName(id int) (string, error) {
	return b.params.Name(id)
}

// Parameter returns the raw value of parameter id.
func (b *Base) Parameter(id int) (uint8, error) {
	return b.params.Get(id)
}

// SetParameter sets the raw value of parameter id.
func (b *Base) SetParameter(id int, value uint8) error {
	return b.params.Set(id, value)
}

// ParameterAsMagnitude returns parameter id as 0..1.
func (b *Base) ParameterAsMagnitude(id int) (float32, error) {
	return b.params.Magnitude(id)
}

// SetParameterAsMagnitude sets parameter id from a 0..1 value.
func (b *Base) SetParameterAsMagnitude(id int, magnitude float32) error {
	return b.params.SetMagnitude(id, magnitude)
}

// MappedParameterIDForKnob returns the first parameter bound to knob, or
// param.NotFound.
func (b *Base) MappedParameterIDForKnob(knob int) int {
	return b.params.KnobParameter(knob)
}

// MappedParameterIDForMidiCC returns the first parameter bound to cc, or
// param.NotFound.
func (b *Base) MappedParameterIDForMidiCC(cc int) int {
	return b.params.MidiCCParameter(cc)
}

// ProcessMono passes the input through to both channels.
func (b *Base) ProcessMono(in float32) {
	b.audioLeft = in
	b.audioRight = in
}

// ProcessStereo passes both inputs through.
func (b *Base) ProcessStereo(inL, inR float32) {
	b.audioLeft = inL
	b.audioRight = inR
}

// SetAudio stores the output samples of the current call.
func (b *Base) SetAudio(left, right float32) {
	b.audioLeft = left
	b.audioRight = right
}

// AudioLeft returns the last left output sample.
func (b *Base) AudioLeft() float32 {
	return b.audioLeft
}

// AudioRight returns the last right output sample.
func (b *Base) AudioRight() float32 {
	return b.audioRight
}

// OutputLEDBrightness is dark unless an effect overrides it.
func (b *Base) OutputLEDBrightness() float32 {
	return 0
}

var _ Module = (*Base)(nil)
