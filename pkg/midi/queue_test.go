package midi

import (
	"sync"
	"testing"
)

func cc(offset int32, controller, value uint8) ControlChangeEvent {
	return ControlChangeEvent{BaseEvent: BaseEvent{Offset: offset}, Controller: controller, Value: value}
}

type collector struct {
	events []Event
}

func (c *collector) ProcessEvent(event Event) {
	c.events = append(c.events, event)
}

func (c *collector) offsets() []int32 {
	out := make([]int32, len(c.events))
	for i, e := range c.events {
		out[i] = e.SampleOffset()
	}
	return out
}

func TestEventQueueOrder(t *testing.T) {
	q := NewEventQueue()
	if q.Size() != 0 {
		t.Errorf("Expected size 0, got %d", q.Size())
	}

	// Add events out of order
	q.Add(cc(300, CCVolume, 3))
	q.Add(cc(100, CCVolume, 1))
	q.Add(ProgramChangeEvent{BaseEvent: BaseEvent{Offset: 200}, Program: 2})
	q.Add(cc(100, CCPan, 9))

	if q.Size() != 4 {
		t.Fatalf("Expected size 4, got %d", q.Size())
	}

	c := &collector{}
	if n := q.Drain(c, 0, 1000); n != 4 {
		t.Fatalf("Drain() delivered %d, want 4", n)
	}

	want := []int32{100, 100, 200, 300}
	for i, off := range c.offsets() {
		if off != want[i] {
			t.Errorf("Event %d: expected offset %d, got %d", i, want[i], off)
		}
	}

	// Same offset keeps insertion order
	if c.events[0].(ControlChangeEvent).Controller != CCVolume || c.events[1].(ControlChangeEvent).Controller != CCPan {
		t.Errorf("Events at equal offsets reordered: %v, %v", c.events[0], c.events[1])
	}
	if q.Size() != 0 {
		t.Errorf("Expected empty queue after drain, got %d", q.Size())
	}
}

func TestEventQueueDrain(t *testing.T) {
	tests := []struct {
		name       string
		start, end int32
		delivered  []int32
		remaining  int
	}{
		{"all", 0, 1000, []int32{0, 50, 100, 150, 200}, 0},
		{"first block", 0, 64, []int32{0, 50}, 3},
		{"end is exclusive", 50, 100, []int32{50}, 3},
		{"late events dropped", 120, 160, []int32{150}, 1},
		{"before any event", -10, 0, nil, 5},
		{"empty range", 100, 100, nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewEventQueue()
			for _, off := range []int32{0, 50, 100, 150, 200} {
				q.Add(cc(off, CCVolume, uint8(off/2)))
			}

			c := &collector{}
			n := q.Drain(c, tt.start, tt.end)
			if n != len(tt.delivered) || len(c.events) != n {
				t.Fatalf("Drain(%d, %d) delivered %d (%v), want %v", tt.start, tt.end, n, c.offsets(), tt.delivered)
			}
			for i, off := range c.offsets() {
				if off != tt.delivered[i] {
					t.Errorf("event %d at %d, want %d", i, off, tt.delivered[i])
				}
			}
			if q.Size() != tt.remaining {
				t.Errorf("Size() = %d, want %d", q.Size(), tt.remaining)
			}
		})
	}
}

func TestEventQueueBlocks(t *testing.T) {
	q := NewEventQueue()
	q.Add(cc(250, CCVolume, 30))
	q.Add(cc(50, CCVolume, 10))
	q.Add(cc(150, CCVolume, 20))

	c := &collector{}
	for start := int32(0); start < 300; start += 100 {
		q.Drain(c, start, start+100)
	}

	want := []int32{50, 150, 250}
	if len(c.events) != len(want) {
		t.Fatalf("delivered %v, want %v", c.offsets(), want)
	}
	for i, off := range c.offsets() {
		if off != want[i] {
			t.Errorf("event %d at %d, want %d", i, off, want[i])
		}
	}
}

func TestEventQueueConcurrentAdd(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			q.Add(cc(int32(99-i), CCExpression, uint8(i)))
		}
	}()

	c := &collector{}
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			q.Drain(c, 0, 10)
			_ = q.Size()
		}
	}()
	wg.Wait()

	q.Drain(c, 0, 10)
	rest := &collector{}
	q.Drain(rest, 0, 1000)
	if len(c.events)+len(rest.events) != 100 {
		t.Fatalf("delivered %d + %d events, want 100", len(c.events), len(rest.events))
	}
	for i := 1; i < len(rest.events); i++ {
		if rest.events[i].SampleOffset() < rest.events[i-1].SampleOffset() {
			t.Fatalf("events out of order at %d: %v", i, rest.offsets())
		}
	}
}
