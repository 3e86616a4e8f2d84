package param

// Builder provides a fluent API for declaring descriptors
type Builder struct {
	desc Descriptor
}

// New starts a descriptor with no knob or CC mapping and a zero default
func New(name string) *Builder {
	return &Builder{
		desc: Descriptor{
			Name:          name,
			KnobMapping:   Unmapped,
			MidiCCMapping: Unmapped,
		},
	}
}

// Default sets the raw default value
func (b *Builder) Default(value uint8) *Builder {
	b.desc.DefaultValue = value
	return b
}

// DefaultMagnitude sets the default from a 0..1 value
func (b *Builder) DefaultMagnitude(magnitude float32) *Builder {
	b.desc.DefaultValue = MagnitudeToRaw(magnitude)
	return b
}

// Knob binds the parameter to a physical knob index
func (b *Builder) Knob(knob int) *Builder {
	b.desc.KnobMapping = knob
	return b
}

// MidiCC binds the parameter to a MIDI control change number
func (b *Builder) MidiCC(cc int) *Builder {
	b.desc.MidiCCMapping = cc
	return b
}

// Build returns the configured descriptor
func (b *Builder) Build() Descriptor {
	return b.desc
}
