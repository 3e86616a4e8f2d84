package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// FromMessage converts a framed MIDI message into an Event at the given
// sample offset. Messages other than control and program change are
// reported as not ok.
func FromMessage(msg gomidi.Message, offset int32) (Event, bool) {
	var ch, a, b uint8

	switch {
	case msg.GetControlChange(&ch, &a, &b):
		return ControlChangeEvent{
			BaseEvent:  BaseEvent{EventChannel: ch, Offset: offset},
			Controller: a,
			Value:      b,
		}, true
	case msg.GetProgramChange(&ch, &a):
		return ProgramChangeEvent{
			BaseEvent: BaseEvent{EventChannel: ch, Offset: offset},
			Program:   a,
		}, true
	}
	return nil, false
}

// ToMessage frames an Event as a MIDI message.
func ToMessage(e Event) gomidi.Message {
	switch ev := e.(type) {
	case ControlChangeEvent:
		return gomidi.ControlChange(ev.EventChannel, ev.Controller, ev.Value)
	case ProgramChangeEvent:
		return gomidi.ProgramChange(ev.EventChannel, ev.Program)
	}
	return nil
}

// ControlChange builds a CC event at offset. The value is clamped to 7 bits.
func ControlChange(channel, controller, value uint8, offset int32) ControlChangeEvent {
	if value > 127 {
		value = 127
	}
	return ControlChangeEvent{
		BaseEvent:  BaseEvent{EventChannel: channel & 0x0F, Offset: offset},
		Controller: controller & 0x7F,
		Value:      value,
	}
}
