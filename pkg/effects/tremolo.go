package effects

import (
	"github.com/justyntemme/pedalgo/pkg/dsp/modulation"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Tremolo parameter ids.
const (
	TremoloRate = iota
	TremoloDepth
	TremoloSpread
	TremoloShape
)

// TremoloParams is the parameter table shared by every Tremolo.
var TremoloParams = []param.Descriptor{
	param.New("Rate").Default(96).Knob(0).MidiCC(20).Build(),
	param.New("Depth").Default(160).Knob(1).MidiCC(1).Build(),
	param.New("Spread").Default(0).Knob(2).MidiCC(25).Build(),
	param.New("Shape").Default(0).MidiCC(24).Build(),
}

var tremoloShapes = [...]modulation.Waveform{
	modulation.WaveformSine,
	modulation.WaveformTriangle,
	modulation.WaveformSquare,
}

// Tremolo modulates amplitude with an LFO. Spread offsets the right
// channel's phase by up to half a cycle for a panning effect. The LED shows
// the left channel gain, so it pulses at the rate.
type Tremolo struct {
	*effect.Base

	lfo   *modulation.LFO
	rate  *param.Smoother
	depth *param.Smoother
	gainL float32
}

// NewTremolo creates a tremolo initialized at DefaultSampleRate.
func NewTremolo() *Tremolo {
	t := &Tremolo{Base: effect.NewBase("Tremolo")}
	if err := t.InitParams(TremoloParams); err != nil {
		panic(err)
	}
	t.Init(DefaultSampleRate)
	return t
}

// Init allocates the LFO for sampleRate and restarts its cycle.
func (t *Tremolo) Init(sampleRate float32) {
	t.Base.Init(sampleRate)

	t.lfo = modulation.NewLFO(float64(sampleRate))
	t.rate = newSmoother(sampleRate)
	t.depth = newSmoother(sampleRate)
	resetTo(t.rate, t.Params(), TremoloRate)
	resetTo(t.depth, t.Params(), TremoloDepth)
	t.gainL = 1
}

// step advances one frame and returns the left and right gains.
func (t *Tremolo) step() (float32, float32) {
	store := t.Params()
	t.lfo.SetWaveform(tremoloShapes[selector(store, TremoloShape, len(tremoloShapes))])
	t.lfo.SetFrequency(expRange(t.rate.Follow(store, TremoloRate), 0.5, 15))
	depth := t.depth.Follow(store, TremoloDepth)

	spread, _ := store.Magnitude(TremoloSpread)
	right := t.lfo.At(0.5 * float64(spread))
	left := t.lfo.Next()

	gl := float32(1 - depth*modulation.Unipolar(left))
	gr := float32(1 - depth*modulation.Unipolar(right))
	t.gainL = gl
	return gl, gr
}

// ProcessMono applies the left gain to both outputs.
func (t *Tremolo) ProcessMono(in float32) {
	gl, _ := t.step()
	t.SetAudio(in*gl, in*gl)
}

// ProcessStereo applies each channel's gain.
func (t *Tremolo) ProcessStereo(inL, inR float32) {
	gl, gr := t.step()
	t.SetAudio(inL*gl, inR*gr)
}

// OutputLEDBrightness is the current left gain.
func (t *Tremolo) OutputLEDBrightness() float32 {
	return clamp01(t.gainL)
}

var _ effect.Module = (*Tremolo)(nil)
