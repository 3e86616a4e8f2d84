package param

import (
	"errors"
	"fmt"
)

// Validate checks a descriptor table at authoring time. The store itself
// tolerates duplicate mappings (the first match wins), so effects that want
// the stricter guarantee call Validate when they are registered.
func Validate(descriptors []Descriptor) error {
	var errs []error
	knobs := make(map[int]int)
	ccs := make(map[int]int)

	for i, d := range descriptors {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("parameter %d: %w", i, ErrEmptyName))
		}
		if d.HasKnob() {
			if prev, ok := knobs[d.KnobMapping]; ok {
				errs = append(errs, fmt.Errorf("parameters %d and %d share knob %d: %w",
					prev, i, d.KnobMapping, ErrDuplicateKnob))
			} else {
				knobs[d.KnobMapping] = i
			}
		}
		if d.HasMidiCC() {
			if prev, ok := ccs[d.MidiCCMapping]; ok {
				errs = append(errs, fmt.Errorf("parameters %d and %d share cc %d: %w",
					prev, i, d.MidiCCMapping, ErrDuplicateMidiCC))
			} else {
				ccs[d.MidiCCMapping] = i
			}
		}
	}

	return errors.Join(errs...)
}
