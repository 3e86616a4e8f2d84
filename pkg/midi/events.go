// Package midi holds the control events a pedal reacts to, stamped with the
// sample offset they apply at.
package midi

import (
	"fmt"
)

// EventType identifies the kind of an Event.
type EventType uint8

// Event types.
const (
	EventTypeControlChange EventType = iota
	EventTypeProgramChange
)

// Event is a channel message stamped with the sample offset it applies at.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

// BaseEvent carries the fields every event shares.
type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

// Channel returns the zero-based MIDI channel.
func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

// SampleOffset returns the frame the event applies at.
func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

// ControlChangeEvent is a CC message.
type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

// Magnitude scales the 7-bit value to 0..1.
func (e ControlChangeEvent) Magnitude() float32 {
	return float32(e.Value&0x7F) / 127
}

// Common controller numbers used by pedal mappings.
const (
	CCModWheel   uint8 = 1
	CCFoot       uint8 = 4
	CCVolume     uint8 = 7
	CCBalance    uint8 = 8
	CCPan        uint8 = 10
	CCExpression uint8 = 11
	CCEffect1    uint8 = 12
	CCEffect2    uint8 = 13
	CCSustain    uint8 = 64
)

// ProgramChangeEvent is a program change message.
type ProgramChangeEvent struct {
	BaseEvent
	Program uint8
}

func (e ProgramChangeEvent) Type() EventType {
	return EventTypeProgramChange
}

func (e ProgramChangeEvent) String() string {
	return fmt.Sprintf("ProgramChange{ch:%d, prog:%d, offset:%d}",
		e.EventChannel, e.Program, e.Offset)
}
