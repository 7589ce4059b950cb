package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCapturesStartUnset(t *testing.T) {
	c := newCaptures(4)
	if diff := cmp.Diff([]int{-1, -1, -1, -1}, c.copyData()); diff != "" {
		t.Errorf("fresh slots (-want +got):\n%s", diff)
	}
}

func TestCapturesCopyOnWrite(t *testing.T) {
	c := newCaptures(2)
	c = c.set(0, 7)

	fork := c.clone()
	fork = fork.set(1, 9)

	// the write must not leak into the other reference
	if diff := cmp.Diff([]int{7, -1}, c.copyData()); diff != "" {
		t.Errorf("original slots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{7, 9}, fork.copyData()); diff != "" {
		t.Errorf("forked slots (-want +got):\n%s", diff)
	}
}

func TestCapturesUnsharedWriteInPlace(t *testing.T) {
	c := newCaptures(2)
	before := c.shared
	c = c.set(0, 1)
	c = c.set(1, 2)
	if c.shared != before {
		t.Error("unshared write reallocated the slots")
	}
}

func TestCapturesZeroSlots(t *testing.T) {
	c := newCaptures(0)
	c = c.set(0, 5)
	if c.copyData() != nil {
		t.Error("zero-slot captures should stay nil")
	}
	if c.clone().shared != nil {
		t.Error("zero-slot clone should stay nil")
	}
}
