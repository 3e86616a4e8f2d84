// Package control routes hardware knob positions and MIDI events to the
// parameters of an effect module.
package control

import (
	"math"

	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
	"github.com/justyntemme/pedalgo/pkg/midi"
)

// Omni accepts events on every MIDI channel.
const Omni = -1

// DefaultDeadband is the knob movement, as a fraction of full travel, below
// which a new reading is ignored. Half an 8-bit step.
const DefaultDeadband = 0.5 / 255

// Router applies control input to one module. It is meant to be driven from
// a single control goroutine; the module itself may be read concurrently.
type Router struct {
	module    effect.Module
	channel   int
	deadband  float32
	knobs     map[int]float32
	onProgram func(program uint8)
	log       *debug.Logger
}

// NewRouter creates a router listening on all channels.
func NewRouter(m effect.Module) *Router {
	return &Router{
		module:   m,
		channel:  Omni,
		deadband: DefaultDeadband,
		knobs:    make(map[int]float32),
		log:      debug.Default().With("control"),
	}
}

// SetChannel restricts MIDI input to channel 0..15, or Omni.
func (r *Router) SetChannel(channel int) {
	r.channel = channel
}

// SetDeadband sets the knob hysteresis as a fraction of full travel.
func (r *Router) SetDeadband(d float32) {
	if d < 0 {
		d = 0
	}
	r.deadband = d
}

// OnProgramChange installs the handler for program change events.
func (r *Router) OnProgramChange(fn func(program uint8)) {
	r.onProgram = fn
}

// SetLogger replaces the router's logger.
func (r *Router) SetLogger(l *debug.Logger) {
	r.log = l
}

// Knob applies a knob position in 0..1 to the parameter mapped to knob. It
// reports whether a parameter was written. Readings within the deadband of
// the last applied position are dropped so ADC jitter does not rewrite the
// value.
func (r *Router) Knob(knob int, position float32) bool {
	id := r.module.MappedParameterIDForKnob(knob)
	if id == param.NotFound {
		return false
	}

	if last, ok := r.knobs[knob]; ok && math.Abs(float64(position-last)) < float64(r.deadband) {
		return false
	}

	if err := r.module.SetParameterAsMagnitude(id, position); err != nil {
		r.log.Warn("knob %d: %v", knob, err)
		return false
	}
	r.knobs[knob] = position
	return true
}

// ControlChange applies a 7-bit CC value to the parameter mapped to cc.
func (r *Router) ControlChange(cc int, value uint8) bool {
	id := r.module.MappedParameterIDForMidiCC(cc)
	if id == param.NotFound {
		r.log.Debug("cc %d not mapped on %s", cc, r.module.Name())
		return false
	}

	ev := midi.ControlChangeEvent{Value: value}
	if err := r.module.SetParameterAsMagnitude(id, ev.Magnitude()); err != nil {
		r.log.Warn("cc %d: %v", cc, err)
		return false
	}
	return true
}

// HandleEvent routes one MIDI event and reports whether it changed anything.
func (r *Router) HandleEvent(e midi.Event) bool {
	if r.channel != Omni && int(e.Channel()) != r.channel {
		return false
	}

	switch ev := e.(type) {
	case midi.ControlChangeEvent:
		return r.ControlChange(int(ev.Controller), ev.Value)
	case midi.ProgramChangeEvent:
		if r.onProgram == nil {
			return false
		}
		r.onProgram(ev.Program)
		return true
	}
	return false
}

// ProcessEvent implements midi.EventProcessor.
func (r *Router) ProcessEvent(e midi.Event) {
	r.HandleEvent(e)
}

// Drain applies the queued events in [start, end) and drops everything
// before end from the queue. It returns the number of events applied.
func (r *Router) Drain(q *midi.EventQueue, start, end int32) int {
	return q.Drain(r, start, end)
}

var _ midi.EventProcessor = (*Router)(nil)
