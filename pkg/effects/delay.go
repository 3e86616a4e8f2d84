package effects

import (
	"github.com/justyntemme/pedalgo/pkg/dsp/delay"
	"github.com/justyntemme/pedalgo/pkg/dsp/envelope"
	"github.com/justyntemme/pedalgo/pkg/dsp/mix"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Delay parameter ids.
const (
	DelayTime = iota
	DelayFeedback
	DelayMix
	DelayDamp
)

// DelayParams is the parameter table shared by every Delay.
var DelayParams = []param.Descriptor{
	param.New("Time").Default(128).Knob(0).MidiCC(12).Build(),
	param.New("Feedback").Default(96).Knob(1).MidiCC(13).Build(),
	param.New("Mix").Default(96).Knob(2).MidiCC(14).Build(),
	param.New("Damp").Default(64).MidiCC(15).Build(),
}

// Delay time range in milliseconds.
const (
	MinDelayMs = 20.0
	MaxDelayMs = 1000.0
)

// Delay is a feedback echo with darkening repeats. The LED follows the wet
// signal, so it keeps glowing while repeats ring out.
type Delay struct {
	*effect.Base

	lineL *delay.Echo
	lineR *delay.Echo
	env   *envelope.Detector

	time *param.Smoother
	wet  *param.Smoother
}

// NewDelay creates a delay initialized at DefaultSampleRate.
func NewDelay() *Delay {
	d := &Delay{Base: effect.NewBase("Delay")}
	if err := d.InitParams(DelayParams); err != nil {
		panic(err)
	}
	d.Init(DefaultSampleRate)
	return d
}

// Init allocates delay lines long enough for MaxDelayMs at sampleRate.
func (d *Delay) Init(sampleRate float32) {
	d.Base.Init(sampleRate)
	sr := float64(sampleRate)
	maxSeconds := MaxDelayMs/1000 + 0.01

	d.lineL = delay.NewEcho(maxSeconds, sr)
	d.lineR = delay.NewEcho(maxSeconds, sr)
	d.env = envelope.NewDetector(sr, envelope.ModePeak)
	d.env.SetRelease(0.2)

	// Time glides slowly so knob turns give a tape-like pitch bend instead
	// of clicks
	d.time = param.NewSmootherForTime(param.ExponentialSmoothing, sr, 150)
	d.wet = newSmoother(sampleRate)
	resetTo(d.time, d.Params(), DelayTime)
	resetTo(d.wet, d.Params(), DelayMix)
}

// step advances one frame and returns the delay in samples and the wet
// amount for the equal-power mix.
func (d *Delay) step() (float64, float32) {
	store := d.Params()

	fb, _ := store.Magnitude(DelayFeedback)
	damp, _ := store.Magnitude(DelayDamp)
	d.lineL.SetFeedback(fb * 0.95)
	d.lineR.SetFeedback(fb * 0.95)
	d.lineL.SetDamp(damp * 0.9)
	d.lineR.SetDamp(damp * 0.9)

	ms := expRange(d.time.Follow(store, DelayTime), MinDelayMs, MaxDelayMs)
	return d.lineL.SamplesForMs(ms), float32(d.wet.Follow(store, DelayMix))
}

// ProcessMono echoes one sample to both outputs.
func (d *Delay) ProcessMono(in float32) {
	samples, amount := d.step()
	wet := d.lineL.Process(in, samples)
	d.env.Detect(wet)
	out := mix.EqualPower(in, wet, amount)
	d.SetAudio(out, out)
}

// ProcessStereo echoes each channel on its own line.
func (d *Delay) ProcessStereo(inL, inR float32) {
	samples, amount := d.step()
	wetL := d.lineL.Process(inL, samples)
	wetR := d.lineR.Process(inR, samples)

	peak := wetL
	if wetR*wetR > peak*peak {
		peak = wetR
	}
	d.env.Detect(peak)
	d.SetAudio(mix.EqualPower(inL, wetL, amount), mix.EqualPower(inR, wetR, amount))
}

// OutputLEDBrightness follows the wet signal envelope.
func (d *Delay) OutputLEDBrightness() float32 {
	return clamp01(d.env.Envelope())
}

var _ effect.Module = (*Delay)(nil)
