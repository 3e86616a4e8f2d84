package effect

import (
	"strings"
	"sync/atomic"

	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Chain runs modules in series and is itself a Module. Parameter ids are
// flattened in member order: member 0 owns ids [0, n0), member 1 owns
// [n0, n0+n1) and so on. Knob and CC lookups return the first match in that
// order.
type Chain struct {
	name     string
	modules  []Module
	offsets  []int
	count    int
	bypassed []atomic.Bool

	audioLeft  float32
	audioRight float32
}

// NewChain creates a chain over modules. The member list is fixed.
func NewChain(name string, modules ...Module) *Chain {
	c := &Chain{
		name:     name,
		modules:  modules,
		offsets:  make([]int, len(modules)),
		bypassed: make([]atomic.Bool, len(modules)),
	}
	if c.name == "" {
		names := make([]string, len(modules))
		for i, m := range modules {
			names[i] = m.Name()
		}
		c.name = strings.Join(names, " > ")
	}
	for i, m := range modules {
		c.offsets[i] = c.count
		c.count += m.ParameterCount()
	}
	return c
}

// Init initializes every member.
func (c *Chain) Init(sampleRate float32) {
	for _, m := range c.modules {
		m.Init(sampleRate)
	}
}

// Name returns the chain name.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of members.
func (c *Chain) Len() int {
	return len(c.modules)
}

// Module returns member slot, or nil.
func (c *Chain) Module(slot int) Module {
	if slot < 0 || slot >= len(c.modules) {
		return nil
	}
	return c.modules[slot]
}

// Offset returns the first flattened parameter id of member slot.
func (c *Chain) Offset(slot int) int {
	if slot < 0 || slot >= len(c.offsets) {
		return param.NotFound
	}
	return c.offsets[slot]
}

// SetBypass bypasses or re-enables member slot. Safe to call from the
// control goroutine.
func (c *Chain) SetBypass(slot int, bypass bool) bool {
	if slot < 0 || slot >= len(c.bypassed) {
		return false
	}
	c.bypassed[slot].Store(bypass)
	return true
}

// ToggleBypass flips the bypass state of slot.
func (c *Chain) ToggleBypass(slot int) bool {
	if slot < 0 || slot >= len(c.bypassed) {
		return false
	}
	for {
		old := c.bypassed[slot].Load()
		if c.bypassed[slot].CompareAndSwap(old, !old) {
			return true
		}
	}
}

// IsBypassed reports whether slot is bypassed.
func (c *Chain) IsBypassed(slot int) bool {
	if slot < 0 || slot >= len(c.bypassed) {
		return false
	}
	return c.bypassed[slot].Load()
}

// resolve maps a flattened id to a member and its local id.
func (c *Chain) resolve(op string, id int) (Module, int) {
	if !param.CheckRange(op, id, c.count) {
		return nil, 0
	}
	for i := len(c.offsets) - 1; i >= 0; i-- {
		if id >= c.offsets[i] {
			return c.modules[i], id - c.offsets[i]
		}
	}
	return nil, 0
}

// ParameterCount returns the total number of parameters across members.
func (c *Chain) ParameterCount() int {
	return c.count
}

// ParameterName returns the name of flattened parameter id.
func (c *Chain) ParameterName(id int) (string, error) {
	m, local := c.resolve("Chain.ParameterName", id)
	if m == nil {
		return "", param.ErrOutOfRange
	}
	return m.ParameterName(local)
}

// Parameter returns the raw value of flattened parameter id.
func (c *Chain) Parameter(id int) (uint8, error) {
	m, local := c.resolve("Chain.Parameter", id)
	if m == nil {
		return 0, param.ErrOutOfRange
	}
	return m.Parameter(local)
}

// SetParameter sets the raw value of flattened parameter id.
func (c *Chain) SetParameter(id int, value uint8) error {
	m, local := c.resolve("Chain.SetParameter", id)
	if m == nil {
		return param.ErrOutOfRange
	}
	return m.SetParameter(local, value)
}

// ParameterAsMagnitude returns flattened parameter id as 0..1.
func (c *Chain) ParameterAsMagnitude(id int) (float32, error) {
	m, local := c.resolve("Chain.ParameterAsMagnitude", id)
	if m == nil {
		return 0, param.ErrOutOfRange
	}
	return m.ParameterAsMagnitude(local)
}

// SetParameterAsMagnitude sets flattened parameter id from 0..1.
func (c *Chain) SetParameterAsMagnitude(id int, magnitude float32) error {
	m, local := c.resolve("Chain.SetParameterAsMagnitude", id)
	if m == nil {
		return param.ErrOutOfRange
	}
	return m.SetParameterAsMagnitude(local, magnitude)
}

// MappedParameterIDForKnob returns the first flattened id bound to knob.
func (c *Chain) MappedParameterIDForKnob(knob int) int {
	for i, m := range c.modules {
		if id := m.MappedParameterIDForKnob(knob); id != param.NotFound {
			return c.offsets[i] + id
		}
	}
	return param.NotFound
}

// MappedParameterIDForMidiCC returns the first flattened id bound to cc.
func (c *Chain) MappedParameterIDForMidiCC(cc int) int {
	for i, m := range c.modules {
		if id := m.MappedParameterIDForMidiCC(cc); id != param.NotFound {
			return c.offsets[i] + id
		}
	}
	return param.NotFound
}

// ProcessMono feeds in through every active member. The first active member
// gets a mono call, later ones get the previous stereo output.
func (c *Chain) ProcessMono(in float32) {
	left, right := in, in
	mono := true
	for i, m := range c.modules {
		if c.bypassed[i].Load() {
			continue
		}
		if mono {
			m.ProcessMono(left)
			mono = false
		} else {
			m.ProcessStereo(left, right)
		}
		left, right = m.AudioLeft(), m.AudioRight()
	}
	c.audioLeft, c.audioRight = left, right
}

// ProcessStereo feeds both channels through every active member.
func (c *Chain) ProcessStereo(inL, inR float32) {
	left, right := inL, inR
	for i, m := range c.modules {
		if c.bypassed[i].Load() {
			continue
		}
		m.ProcessStereo(left, right)
		left, right = m.AudioLeft(), m.AudioRight()
	}
	c.audioLeft, c.audioRight = left, right
}

// AudioLeft returns the last left output of the chain.
func (c *Chain) AudioLeft() float32 {
	return c.audioLeft
}

// AudioRight returns the last right output of the chain.
func (c *Chain) AudioRight() float32 {
	return c.audioRight
}

// OutputLEDBrightness returns the brightest active member.
func (c *Chain) OutputLEDBrightness() float32 {
	var brightness float32
	for i, m := range c.modules {
		if c.bypassed[i].Load() {
			continue
		}
		if b := m.OutputLEDBrightness(); b > brightness {
			brightness = b
		}
	}
	return brightness
}

var _ Module = (*Chain)(nil)
