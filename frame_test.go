package easel

import (
	"slices"
	"testing"
)

func TestFrameQueueOrder(t *testing.T) {
	q := NewFrameQueue()
	var got []int
	for i := range 3 {
		q.RequestFrame(func() { got = append(got, i) })
	}
	if n := q.Tick(); n != 3 {
		t.Errorf("Tick() = %d, want 3", n)
	}
	if !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("order = %v, want [0 1 2]", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	h := q.RequestFrame(func() { ran = true })
	if h == 0 {
		t.Fatal("zero handle issued")
	}
	q.CancelFrame(h)
	q.CancelFrame(h)
	q.CancelFrame(12345)
	q.Tick()
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameQueueRequestDuringTick(t *testing.T) {
	q := NewFrameQueue()
	count := 0
	q.RequestFrame(func() {
		count++
		q.RequestFrame(func() { count++ })
	})
	q.Tick()
	if count != 1 {
		t.Fatalf("count = %d, want 1 after first tick", count)
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	q.Tick()
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFrameQueueCancelDuringTick(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	var second FrameHandle
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })
	if n := q.Tick(); n != 1 {
		t.Errorf("Tick() = %d, want 1", n)
	}
	if ran {
		t.Error("callback cancelled mid-tick still ran")
	}
}
