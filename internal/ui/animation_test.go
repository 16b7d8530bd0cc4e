package ui

import (
	"math"
	"testing"
	"time"
)

func TestSpinOnlyWhilePlaying(t *testing.T) {
	var a AnimState

	a.Update(time.Second, false)
	if a.Spin != 0 {
		t.Errorf("stopped record turned to %v degrees", a.Spin)
	}

	a.Update(750*time.Millisecond, true)
	if math.Abs(a.Spin-90) > 1e-9 {
		t.Errorf("spin after 750ms: got %v, want 90", a.Spin)
	}

	a.Update(3*time.Second, true)
	if math.Abs(a.Spin-90) > 1e-9 {
		t.Errorf("a full turn should come back to 90, got %v", a.Spin)
	}
}

func TestStrobeAlwaysTurns(t *testing.T) {
	var a AnimState
	a.Update(time.Second, false)
	if math.Abs(a.Strobe-90) > 1e-9 {
		t.Errorf("strobe after 1s: got %v, want 90", a.Strobe)
	}
}

func TestTonearmSwing(t *testing.T) {
	var a AnimState
	if a.ArmAngle() != 0 {
		t.Fatalf("arm should start at rest")
	}

	a.Update(750*time.Millisecond, true)
	if got := a.ArmAngle(); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("halfway: got %v, want 12.5", got)
	}

	a.Update(750*time.Millisecond, true)
	if got := a.ArmAngle(); got != armEngaged {
		t.Errorf("after 1.5s: got %v, want %v", got, armEngaged)
	}

	a.Update(time.Second, true)
	if got := a.ArmAngle(); got != armEngaged {
		t.Errorf("arm should hold at %v, got %v", armEngaged, got)
	}

	a.Update(1500*time.Millisecond, false)
	if got := a.ArmAngle(); got != 0 {
		t.Errorf("arm should be back at rest, got %v", got)
	}
}

func TestTokenEntranceStaggered(t *testing.T) {
	var a AnimState
	a.RestartEntrance()
	a.Update(50*time.Millisecond, false)

	if a.TokenScale(0) <= 0 {
		t.Error("first token should have started growing")
	}
	if a.TokenScale(1) != 0 {
		t.Error("second token starts after 100ms")
	}

	a.Update(2*time.Second, false)
	for i := 0; i < 8; i++ {
		if got := a.TokenScale(i); math.Abs(got-1) > 1e-9 {
			t.Errorf("token %d: got scale %v, want 1", i, got)
		}
	}
}

func TestEaseInOut(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := easeInOut(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("easeInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
