package param

import "errors"

var (
	// ErrOutOfRange is returned when a parameter id is outside [0, count).
	ErrOutOfRange = errors.New("param: id out of range")

	// ErrEmptyName is reported by Validate for descriptors without a name.
	ErrEmptyName = errors.New("param: empty parameter name")

	// ErrDuplicateKnob is reported by Validate when two descriptors share a knob.
	ErrDuplicateKnob = errors.New("param: knob mapped more than once")

	// ErrDuplicateMidiCC is reported by Validate when two descriptors share a CC.
	ErrDuplicateMidiCC = errors.New("param: midi cc mapped more than once")
)
