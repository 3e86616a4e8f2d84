package param

import (
	"sync/atomic"
)

// Store holds the 8-bit values of an effect's parameters next to their
// descriptors. Values and descriptors are index aligned and the count is
// fixed when the store is created.
//
// Each value lives in its own atomic cell so the audio path can read while a
// control goroutine writes, without locks.
type Store struct {
	descriptors []Descriptor
	values      []atomic.Uint32
}

// NewStore allocates one value per descriptor, initialized to its default.
func NewStore(descriptors []Descriptor) *Store {
	s := &Store{
		descriptors: descriptors,
		values:      make([]atomic.Uint32, len(descriptors)),
	}
	s.ResetToDefaults()
	return s
}

// Count returns the number of parameters.
func (s *Store) Count() int {
	return len(s.values)
}

func (s *Store) valid(op string, id int) bool {
	return CheckRange(op, id, len(s.values))
}

// CheckRange reports whether id is in [0, count). Builds with the debug tag
// panic instead of returning false. Types that address parameters without a
// Store of their own use it to fail the same way.
func CheckRange(op string, id, count int) bool {
	if id < 0 || id >= count {
		failFast(op, id, count)
		return false
	}
	return true
}

// Descriptor returns the metadata for id.
func (s *Store) Descriptor(id int) (Descriptor, error) {
	if !s.valid("Descriptor", id) {
		return Descriptor{}, ErrOutOfRange
	}
	return s.descriptors[id], nil
}

// Descriptors returns the descriptor table. It must not be modified.
func (s *Store) Descriptors() []Descriptor {
	return s.descriptors
}

// Name returns the display name of parameter id.
func (s *Store) Name(id int) (string, error) {
	if !s.valid("Name", id) {
		return "", ErrOutOfRange
	}
	return s.descriptors[id].Name, nil
}

// Get returns the raw value of parameter id.
func (s *Store) Get(id int) (uint8, error) {
	if !s.valid("Get", id) {
		return 0, ErrOutOfRange
	}
	return uint8(s.values[id].Load()), nil
}

// Set stores the raw value of parameter id.
func (s *Store) Set(id int, value uint8) error {
	if !s.valid("Set", id) {
		return ErrOutOfRange
	}
	s.values[id].Store(uint32(value))
	return nil
}

// Magnitude returns parameter id scaled to 0..1.
func (s *Store) Magnitude(id int) (float32, error) {
	raw, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return RawToMagnitude(raw), nil
}

// SetMagnitude quantizes a 0..1 value to 8 bits and stores it.
func (s *Store) SetMagnitude(id int, magnitude float32) error {
	if !s.valid("SetMagnitude", id) {
		return ErrOutOfRange
	}
	s.values[id].Store(uint32(MagnitudeToRaw(magnitude)))
	return nil
}

// KnobParameter returns the first parameter mapped to knob, or NotFound.
func (s *Store) KnobParameter(knob int) int {
	if knob < 0 {
		return NotFound
	}
	for i := range s.descriptors {
		if s.descriptors[i].KnobMapping == knob {
			return i
		}
	}
	return NotFound
}

// MidiCCParameter returns the first parameter mapped to cc, or NotFound.
func (s *Store) MidiCCParameter(cc int) int {
	if cc < 0 {
		return NotFound
	}
	for i := range s.descriptors {
		if s.descriptors[i].MidiCCMapping == cc {
			return i
		}
	}
	return NotFound
}

// ResetToDefaults writes every descriptor's default value.
func (s *Store) ResetToDefaults() {
	for i := range s.values {
		s.values[i].Store(uint32(s.descriptors[i].DefaultValue))
	}
}

// Snapshot copies the current raw values into dst and returns the number
// copied.
func (s *Store) Snapshot(dst []uint8) int {
	n := len(s.values)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = uint8(s.values[i].Load())
	}
	return n
}
