package clock

import (
	"testing"
	"time"
)

func TestRealNow(t *testing.T) {
	if (Real{}).Now().IsZero() {
		t.Fatalf("expected non-zero time")
	}
}

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := NewFake(start)

	if !clk.Now().Equal(start) {
		t.Fatalf("expected start time")
	}

	clk.Advance(1500 * time.Millisecond)
	want := start.Add(1500 * time.Millisecond)
	if !clk.Now().Equal(want) {
		t.Fatalf("expected %v got %v", want, clk.Now())
	}

	clk.Set(start)
	if !clk.Now().Equal(start) {
		t.Fatalf("expected %v after Set, got %v", start, clk.Now())
	}
}
