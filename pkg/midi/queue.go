package midi

import (
	"sort"
	"sync"
)

// EventQueue holds scheduled events ordered by sample offset. Events sharing
// an offset stay in insertion order. Add may run on a different goroutine
// from Drain.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, 128)}
}

// Add inserts event after every queued event with the same or an earlier
// offset.
func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	off := event.SampleOffset()
	i := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() > off
	})
	q.events = append(q.events, nil)
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = event
}

// Size returns the number of queued events.
func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// EventProcessor receives events drained from a queue.
type EventProcessor interface {
	ProcessEvent(event Event)
}

// Drain removes every event before end and hands the ones at or after start
// to p in order. Events before start are late and are dropped. It returns
// the number of events delivered.
func (q *EventQueue) Drain(p EventProcessor, start, end int32) int {
	q.mu.Lock()
	n := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= end
	})
	due := make([]Event, n)
	copy(due, q.events[:n])
	rest := copy(q.events, q.events[n:])
	for i := rest; i < len(q.events); i++ {
		q.events[i] = nil
	}
	q.events = q.events[:rest]
	q.mu.Unlock()

	delivered := 0
	for _, e := range due {
		if e.SampleOffset() < start {
			continue
		}
		p.ProcessEvent(e)
		delivered++
	}
	return delivered
}
