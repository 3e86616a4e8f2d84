//go:build !debug

package param

import (
	"errors"
	"testing"
)

func TestStoreOutOfRange(t *testing.T) {
	store := NewStore(exampleDescriptors())

	for _, id := range []int{-1, -100, 2, 3, 255} {
		if _, err := store.Name(id); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Name(%d) error = %v, want ErrOutOfRange", id, err)
		}
		if _, err := store.Get(id); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrOutOfRange", id, err)
		}
		if err := store.Set(id, 9); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d) error = %v, want ErrOutOfRange", id, err)
		}
		if _, err := store.Magnitude(id); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Magnitude(%d) error = %v, want ErrOutOfRange", id, err)
		}
		if err := store.SetMagnitude(id, 1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetMagnitude(%d) error = %v, want ErrOutOfRange", id, err)
		}
		if _, err := store.Descriptor(id); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Descriptor(%d) error = %v, want ErrOutOfRange", id, err)
		}
	}

	snap := make([]uint8, 2)
	store.Snapshot(snap)
	if snap[0] != 128 || snap[1] != 64 {
		t.Errorf("failed writes mutated state: %v", snap)
	}
}

func TestEmptyStore(t *testing.T) {
	var store Store

	if store.Count() != 0 {
		t.Errorf("Count() = %d, want 0", store.Count())
	}
	if _, err := store.Get(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get(0) error = %v, want ErrOutOfRange", err)
	}
	if got := store.KnobParameter(0); got != NotFound {
		t.Errorf("KnobParameter(0) = %d, want NotFound", got)
	}
}

func TestSmootherFollowInvalidID(t *testing.T) {
	store := NewStore(exampleDescriptors())
	smoother := NewSmoother(LinearSmoothing, 1)
	smoother.Reset(0.25)

	if got := smoother.Follow(store, 5); got != 0.25 {
		t.Errorf("Follow with invalid id moved the value to %f", got)
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		id, count int
		want      bool
	}{
		{0, 2, true},
		{1, 2, true},
		{2, 2, false},
		{-1, 2, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := CheckRange("Get", tt.id, tt.count); got != tt.want {
			t.Errorf("CheckRange(%d, %d) = %t, want %t", tt.id, tt.count, got, tt.want)
		}
	}
}
