package effects

import (
	"github.com/justyntemme/pedalgo/pkg/dsp/distortion"
	"github.com/justyntemme/pedalgo/pkg/dsp/envelope"
	"github.com/justyntemme/pedalgo/pkg/dsp/filter"
	"github.com/justyntemme/pedalgo/pkg/dsp/gain"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Overdrive parameter ids.
const (
	OverdriveDrive = iota
	OverdriveTone
	OverdriveLevel
	OverdriveClip
)

// OverdriveParams is the parameter table shared by every Overdrive.
var OverdriveParams = []param.Descriptor{
	param.New("Drive").Default(128).Knob(0).MidiCC(21).Build(),
	param.New("Tone").Default(128).Knob(1).MidiCC(22).Build(),
	param.New("Level").Default(160).Knob(2).MidiCC(7).Build(),
	param.New("Clip").Default(0).MidiCC(23).Build(),
}

var overdriveCurves = [...]distortion.CurveType{
	distortion.CurveSoftClip,
	distortion.CurveAsymmetric,
	distortion.CurveHardClip,
}

// Overdrive is a waveshaping drive with a tilt tone control. The LED
// follows the output level.
type Overdrive struct {
	*effect.Base

	shaper *distortion.Waveshaper
	toneL  *filter.Tone
	toneR  *filter.Tone
	dcL    *filter.DCBlocker
	dcR    *filter.DCBlocker
	env    *envelope.Detector

	drive *param.Smoother
	tone  *param.Smoother
	level *param.Smoother
}

// NewOverdrive creates an overdrive initialized at DefaultSampleRate.
func NewOverdrive() *Overdrive {
	o := &Overdrive{Base: effect.NewBase("Overdrive")}
	if err := o.InitParams(OverdriveParams); err != nil {
		panic(err)
	}
	o.Init(DefaultSampleRate)
	return o
}

// Init allocates the DSP state for sampleRate.
func (o *Overdrive) Init(sampleRate float32) {
	o.Base.Init(sampleRate)
	sr := float64(sampleRate)

	o.shaper = distortion.NewWaveshaper(distortion.CurveSoftClip)
	o.shaper.SetAsymmetry(0.3)
	o.toneL = filter.NewTone(sr, 1500)
	o.toneR = filter.NewTone(sr, 1500)
	o.dcL = filter.NewDCBlocker(sr, 10)
	o.dcR = filter.NewDCBlocker(sr, 10)
	o.env = envelope.NewDetector(sr, envelope.ModePeak)
	o.env.SetRelease(0.05)

	o.drive = newSmoother(sampleRate)
	o.tone = newSmoother(sampleRate)
	o.level = newSmoother(sampleRate)
	resetTo(o.drive, o.Params(), OverdriveDrive)
	resetTo(o.tone, o.Params(), OverdriveTone)
	resetTo(o.level, o.Params(), OverdriveLevel)
}

// step advances the smoothers one frame and returns the output gain.
func (o *Overdrive) step() float32 {
	store := o.Params()
	o.shaper.SetCurveType(overdriveCurves[selector(store, OverdriveClip, len(overdriveCurves))])
	o.shaper.SetDrive(float32(expRange(o.drive.Follow(store, OverdriveDrive), 1, 50)))

	t := float32(o.tone.Follow(store, OverdriveTone))
	o.toneL.SetAmount(t)
	o.toneR.SetAmount(t)

	lvl := float32(o.level.Follow(store, OverdriveLevel))
	return gain.DbToLinear32(gain.MagnitudeToDb(lvl, -36, 6, true))
}

// ProcessMono drives one sample to both outputs.
func (o *Overdrive) ProcessMono(in float32) {
	g := o.step()
	out := o.toneL.Process(o.dcL.Process(o.shaper.Process(in))) * g
	o.env.Detect(out)
	o.SetAudio(out, out)
}

// ProcessStereo drives each channel through its own tone filter.
func (o *Overdrive) ProcessStereo(inL, inR float32) {
	g := o.step()
	outL := o.toneL.Process(o.dcL.Process(o.shaper.Process(inL))) * g
	outR := o.toneR.Process(o.dcR.Process(o.shaper.Process(inR))) * g

	peak := outL
	if outR*outR > peak*peak {
		peak = outR
	}
	o.env.Detect(peak)
	o.SetAudio(outL, outR)
}

// OutputLEDBrightness follows the output envelope.
func (o *Overdrive) OutputLEDBrightness() float32 {
	return clamp01(o.env.Envelope())
}

var _ effect.Module = (*Overdrive)(nil)
