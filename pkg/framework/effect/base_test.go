package effect

import (
	"errors"
	"math"
	"testing"

	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

var levelToneParams = []param.Descriptor{
	{Name: "Level", DefaultValue: 128, KnobMapping: 0, MidiCCMapping: 7},
	{Name: "Tone", DefaultValue: 64, KnobMapping: 1, MidiCCMapping: 10},
}

// levelModule scales its input by the Level parameter.
type levelModule struct {
	*Base
}

func newLevelModule() *levelModule {
	m := &levelModule{Base: NewBase("Level")}
	if err := m.InitParams(levelToneParams); err != nil {
		panic(err)
	}
	return m
}

func (m *levelModule) ProcessMono(in float32) {
	level, _ := m.ParameterAsMagnitude(0)
	m.SetAudio(in*level, in*level)
}

func (m *levelModule) ProcessStereo(inL, inR float32) {
	level, _ := m.ParameterAsMagnitude(0)
	m.SetAudio(inL*level, inR*level)
}

func (m *levelModule) OutputLEDBrightness() float32 {
	level, _ := m.ParameterAsMagnitude(0)
	return level
}

func TestBaseExampleModule(t *testing.T) {
	var m Module = newLevelModule()
	m.Init(48000)

	if got := m.ParameterCount(); got != 2 {
		t.Fatalf("ParameterCount() = %d, want 2", got)
	}
	if v, err := m.Parameter(0); err != nil || v != 128 {
		t.Errorf("Parameter(0) = %d, %v; want 128", v, err)
	}
	if mag, err := m.ParameterAsMagnitude(0); err != nil || math.Abs(float64(mag)-0.502) > 0.001 {
		t.Errorf("ParameterAsMagnitude(0) = %f, %v; want ~0.502", mag, err)
	}
	if id := m.MappedParameterIDForKnob(1); id != 1 {
		t.Errorf("MappedParameterIDForKnob(1) = %d, want 1", id)
	}
	if id := m.MappedParameterIDForMidiCC(7); id != 0 {
		t.Errorf("MappedParameterIDForMidiCC(7) = %d, want 0", id)
	}
	if id := m.MappedParameterIDForMidiCC(99); id != param.NotFound {
		t.Errorf("MappedParameterIDForMidiCC(99) = %d, want -1", id)
	}
	if name, err := m.ParameterName(1); err != nil || name != "Tone" {
		t.Errorf("ParameterName(1) = %q, %v", name, err)
	}
	if m.Name() != "Level" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestBaseInitRecordsSampleRate(t *testing.T) {
	b := NewBase("plain")
	b.Init(44100)
	if b.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %f, want 44100", b.SampleRate())
	}
}

func TestBaseInitParamsOnce(t *testing.T) {
	m := newLevelModule()

	err := m.InitParams([]param.Descriptor{{Name: "Other"}})
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second InitParams() error = %v, want ErrAlreadyInitialized", err)
	}
	if m.ParameterCount() != 2 {
		t.Errorf("ParameterCount() changed to %d", m.ParameterCount())
	}
}

func TestBasePassThrough(t *testing.T) {
	b := NewBase("thru")
	b.Init(48000)

	b.ProcessMono(0.25)
	if b.AudioLeft() != 0.25 || b.AudioRight() != 0.25 {
		t.Errorf("ProcessMono pass-through = %f/%f", b.AudioLeft(), b.AudioRight())
	}

	b.ProcessStereo(0.5, -0.5)
	if b.AudioLeft() != 0.5 || b.AudioRight() != -0.5 {
		t.Errorf("ProcessStereo pass-through = %f/%f", b.AudioLeft(), b.AudioRight())
	}

	if b.OutputLEDBrightness() != 0 {
		t.Errorf("OutputLEDBrightness() = %f, want 0", b.OutputLEDBrightness())
	}
	if b.ParameterCount() != 0 {
		t.Errorf("ParameterCount() = %d, want 0 before InitParams", b.ParameterCount())
	}
}

func TestOverrideUpdatesOutputs(t *testing.T) {
	m := newLevelModule()
	m.Init(48000)

	if err := m.SetParameter(0, 255); err != nil {
		t.Fatalf("SetParameter() error = %v", err)
	}
	m.ProcessMono(0.5)
	if m.AudioLeft() != 0.5 || m.AudioRight() != 0.5 {
		t.Errorf("full level output = %f/%f", m.AudioLeft(), m.AudioRight())
	}

	if err := m.SetParameterAsMagnitude(0, 0); err != nil {
		t.Fatalf("SetParameterAsMagnitude() error = %v", err)
	}
	m.ProcessStereo(1, 1)
	if m.AudioLeft() != 0 || m.AudioRight() != 0 {
		t.Errorf("zero level output = %f/%f", m.AudioLeft(), m.AudioRight())
	}
}

func BenchmarkBaseProcessMono(b *testing.B) {
	m := newLevelModule()
	m.Init(48000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.ProcessMono(0.5)
	}
}
