package config

import (
	"math"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Cue is an automation message framed as MIDI and stamped with the sample
// frame it plays at.
type Cue struct {
	Frame int64
	Msg   gomidi.Message
}

// Cues converts the automation lane into MIDI messages in time order. They
// are sent on the rig's channel, or channel 1 when listening on all.
func (r *Rig) Cues() []Cue {
	ch := uint8(0)
	if r.MidiChannel > 0 {
		ch = uint8(r.MidiChannel - 1)
	}

	cues := make([]Cue, 0, len(r.Automation))
	for _, a := range r.Automation {
		c := Cue{Frame: int64(math.Round(a.At * float64(r.SampleRate)))}
		switch {
		case a.CC != nil:
			c.Msg = gomidi.ControlChange(ch, uint8(*a.CC), uint8(a.Value))
		case a.Program != nil:
			c.Msg = gomidi.ProgramChange(ch, uint8(*a.Program))
		default:
			continue
		}
		cues = append(cues, c)
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Frame < cues[j].Frame
	})
	return cues
}
