package effects

import (
	"math"
	"testing"

	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

var stockModules = []struct {
	name   string
	params []param.Descriptor
	create func() effect.Module
}{
	{"Overdrive", OverdriveParams, func() effect.Module { return NewOverdrive() }},
	{"Tremolo", TremoloParams, func() effect.Module { return NewTremolo() }},
	{"Delay", DelayParams, func() effect.Module { return NewDelay() }},
}

func TestStockModulesParameters(t *testing.T) {
	for _, tt := range stockModules {
		t.Run(tt.name, func(t *testing.T) {
			if err := param.Validate(tt.params); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			m := tt.create()
			if m.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", m.Name(), tt.name)
			}
			if m.ParameterCount() != len(tt.params) {
				t.Fatalf("ParameterCount() = %d, want %d", m.ParameterCount(), len(tt.params))
			}

			for id, d := range tt.params {
				if name, _ := m.ParameterName(id); name != d.Name {
					t.Errorf("ParameterName(%d) = %q, want %q", id, name, d.Name)
				}
				if v, _ := m.Parameter(id); v != d.DefaultValue {
					t.Errorf("Parameter(%d) = %d, want default %d", id, v, d.DefaultValue)
				}
				if d.HasKnob() && m.MappedParameterIDForKnob(d.KnobMapping) != id {
					t.Errorf("knob %d does not map to %d", d.KnobMapping, id)
				}
				if d.HasMidiCC() && m.MappedParameterIDForMidiCC(d.MidiCCMapping) != id {
					t.Errorf("cc %d does not map to %d", d.MidiCCMapping, id)
				}
			}
		})
	}
}

func TestStockModulesProcess(t *testing.T) {
	for _, tt := range stockModules {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.create()
			m.Init(44100)

			// Silence in, silence out
			for i := 0; i < 256; i++ {
				m.ProcessMono(0)
				if m.AudioLeft() != 0 || m.AudioRight() != 0 {
					t.Fatalf("sample %d: silence produced %f/%f", i, m.AudioLeft(), m.AudioRight())
				}
			}

			for i := 0; i < 44100/10; i++ {
				x := float32(0.5 * math.Sin(2*math.Pi*220*float64(i)/44100))
				m.ProcessStereo(x, -x)

				l, r := m.AudioLeft(), m.AudioRight()
				if math.IsNaN(float64(l)) || math.IsNaN(float64(r)) || math.Abs(float64(l)) > 4 || math.Abs(float64(r)) > 4 {
					t.Fatalf("sample %d: output %f/%f out of range", i, l, r)
				}

				led := m.OutputLEDBrightness()
				if led < 0 || led > 1 {
					t.Fatalf("sample %d: LED brightness %f out of range", i, led)
				}
			}
		})
	}
}

func TestOverdriveLED(t *testing.T) {
	o := NewOverdrive()
	if o.OutputLEDBrightness() != 0 {
		t.Errorf("LED should start dark, got %f", o.OutputLEDBrightness())
	}

	for i := 0; i < 4800; i++ {
		o.ProcessMono(float32(0.8 * math.Sin(2*math.Pi*110*float64(i)/48000)))
	}
	if o.OutputLEDBrightness() < 0.05 {
		t.Errorf("LED should light with signal, got %f", o.OutputLEDBrightness())
	}
}

func TestOverdriveLevelMute(t *testing.T) {
	o := NewOverdrive()
	if err := o.SetParameter(OverdriveLevel, 0); err != nil {
		t.Fatal(err)
	}
	o.Init(48000)

	o.ProcessMono(0.9)
	if o.AudioLeft() != 0 {
		t.Errorf("level 0 should mute, got %f", o.AudioLeft())
	}
}

func TestTremoloDepth(t *testing.T) {
	t.Run("zero depth is transparent", func(t *testing.T) {
		tr := NewTremolo()
		if err := tr.SetParameter(TremoloDepth, 0); err != nil {
			t.Fatal(err)
		}
		tr.Init(48000)

		for i := 0; i < 1000; i++ {
			tr.ProcessStereo(0.25, -0.5)
			if tr.AudioLeft() != 0.25 || tr.AudioRight() != -0.5 {
				t.Fatalf("sample %d: %f/%f", i, tr.AudioLeft(), tr.AudioRight())
			}
		}
		if tr.OutputLEDBrightness() != 1 {
			t.Errorf("LED = %f, want 1", tr.OutputLEDBrightness())
		}
	})

	t.Run("full depth square gates", func(t *testing.T) {
		tr := NewTremolo()
		_ = tr.SetParameter(TremoloDepth, 255)
		_ = tr.SetParameter(TremoloShape, 255)
		tr.Init(48000)

		sawOff, sawOn := false, false
		for i := 0; i < 48000; i++ {
			tr.ProcessMono(1)
			switch tr.AudioLeft() {
			case 0:
				sawOff = true
			case 1:
				sawOn = true
			}
		}
		if !sawOff || !sawOn {
			t.Errorf("square tremolo should gate fully: off=%v on=%v", sawOff, sawOn)
		}
	})

	t.Run("spread splits channels", func(t *testing.T) {
		tr := NewTremolo()
		_ = tr.SetParameter(TremoloDepth, 255)
		_ = tr.SetParameter(TremoloSpread, 255)
		tr.Init(48000)

		differ := false
		for i := 0; i < 4800; i++ {
			tr.ProcessStereo(1, 1)
			if tr.AudioLeft() != tr.AudioRight() {
				differ = true
			}
		}
		if !differ {
			t.Error("spread should give the channels different gains")
		}
	})
}

func TestDelayEcho(t *testing.T) {
	d := NewDelay()
	_ = d.SetParameter(DelayTime, 0)     // MinDelayMs
	_ = d.SetParameter(DelayFeedback, 0) // single repeat
	_ = d.SetParameter(DelayMix, 255)    // wet only
	d.Init(48000)

	const echoAt = int(MinDelayMs * 48)
	for i := 0; i <= echoAt; i++ {
		in := float32(0)
		if i == 0 {
			in = 1
		}
		d.ProcessMono(in)

		want := float32(0)
		if i == echoAt {
			want = 1
		}
		if math.Abs(float64(d.AudioLeft()-want)) > 1e-6 {
			t.Fatalf("sample %d = %f, want %f", i, d.AudioLeft(), want)
		}
	}

	if d.OutputLEDBrightness() <= 0 {
		t.Error("LED should react to the echo")
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	for _, tt := range stockModules {
		e, ok := r.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s not registered", tt.name)
		}
		if len(e.Parameters) != len(tt.params) {
			t.Errorf("%s: %d parameters registered", tt.name, len(e.Parameters))
		}
		m, err := r.New(tt.name)
		if err != nil || m.Name() != tt.name {
			t.Errorf("New(%q) = %v, %v", tt.name, m, err)
		}
	}

	if err := Register(r); err == nil {
		t.Error("registering twice should fail")
	}
}

func TestPedalboardChain(t *testing.T) {
	chain := effect.NewChain("Board", NewOverdrive(), NewTremolo(), NewDelay())
	chain.Init(48000)

	tests := []struct {
		cc   int
		want int
	}{
		{7, OverdriveLevel},
		{1, len(OverdriveParams) + TremoloDepth},
		{12, len(OverdriveParams) + len(TremoloParams) + DelayTime},
		{99, param.NotFound},
	}
	for _, tt := range tests {
		if got := chain.MappedParameterIDForMidiCC(tt.cc); got != tt.want {
			t.Errorf("MappedParameterIDForMidiCC(%d) = %d, want %d", tt.cc, got, tt.want)
		}
	}

	// Knob 0 exists on every member; the first wins
	if got := chain.MappedParameterIDForKnob(0); got != OverdriveDrive {
		t.Errorf("MappedParameterIDForKnob(0) = %d, want %d", got, OverdriveDrive)
	}
}

func BenchmarkOverdriveProcessMono(b *testing.B) {
	o := NewOverdrive()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		o.ProcessMono(0.3)
	}
}
