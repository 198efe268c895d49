package motion

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestTweenLinearProgression(t *testing.T) {
	tw := NewTween(0, 100, 100*time.Millisecond, Linear)
	tw.Start(t0)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{25 * time.Millisecond, 25},
		{50 * time.Millisecond, 50},
		{100 * time.Millisecond, 100},
		{500 * time.Millisecond, 100},
	}
	for _, tt := range tests {
		if got := tw.Value(t0.Add(tt.at)); got != tt.want {
			t.Errorf("Value at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestTweenBeforeStart(t *testing.T) {
	tw := NewTween(40, 90, time.Second, Linear)
	if got := tw.Value(t0); got != 40 {
		t.Errorf("Value before Start = %v, want starting point 40", got)
	}
	if tw.Done(t0) {
		t.Error("Done before Start")
	}
}

func TestTweenExactTarget(t *testing.T) {
	// Awkward floats must still land exactly on the target.
	tw := NewTween(283.52907015208, 99.2351745532, 70*time.Millisecond, EaseOutCubic)
	tw.Start(t0)

	end := t0.Add(70 * time.Millisecond)
	if got := tw.Value(end); got != 99.2351745532 {
		t.Errorf("terminal value = %v, want exact target", got)
	}
	if !tw.Done(end) {
		t.Error("Done = false at duration end")
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := NewTween(0, 60, 0, nil)
	tw.Start(t0)
	if got := tw.Value(t0); got != 60 {
		t.Errorf("zero-duration Value = %v, want 60 immediately", got)
	}
	if !tw.Done(t0) {
		t.Error("zero-duration tween not Done")
	}
}

func TestTweenRetargetContinuity(t *testing.T) {
	tw := NewTween(0, 100, 100*time.Millisecond, Linear)
	tw.Start(t0)

	mid := t0.Add(40 * time.Millisecond)
	if got := tw.Value(mid); got != 40 {
		t.Fatalf("mid value = %v, want 40", got)
	}

	tw.Retarget(mid, 20)
	if got := tw.Value(mid); got != 40 {
		t.Errorf("value immediately after Retarget = %v, want 40 (no snap)", got)
	}
	if got := tw.Target(); got != 20 {
		t.Errorf("Target = %v, want 20", got)
	}

	end := mid.Add(100 * time.Millisecond)
	if got := tw.Value(end); got != 20 {
		t.Errorf("value after retargeted duration = %v, want 20", got)
	}
}

func TestEasingEndpoints(t *testing.T) {
	for name, e := range map[string]Easing{"linear": Linear, "quad": EaseOutQuad, "cubic": EaseOutCubic} {
		if got := e(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := e(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestEaseOutFrontLoadsProgress(t *testing.T) {
	for name, e := range map[string]Easing{"quad": EaseOutQuad, "cubic": EaseOutCubic} {
		if e(0.25) <= 0.25 {
			t.Errorf("%s(0.25) = %v, want > 0.25 (fast start)", name, e(0.25))
		}
	}
}

func TestEasingMonotone(t *testing.T) {
	for name, e := range map[string]Easing{"linear": Linear, "quad": EaseOutQuad, "cubic": EaseOutCubic} {
		prev := e(0)
		for i := 1; i <= 100; i++ {
			cur := e(float64(i) / 100)
			if cur < prev {
				t.Fatalf("%s not monotone at %d/100: %v < %v", name, i, cur, prev)
			}
			prev = cur
		}
	}
}

func TestFractionTracksEasing(t *testing.T) {
	tw := NewTween(10, 20, 100*time.Millisecond, EaseOutCubic)
	tw.Start(t0)

	half := t0.Add(50 * time.Millisecond)
	if got, want := tw.Fraction(half), EaseOutCubic(0.5); got != want {
		t.Errorf("Fraction at half = %v, want %v", got, want)
	}
	if got := tw.Fraction(t0.Add(time.Second)); got != 1 {
		t.Errorf("Fraction after end = %v, want 1", got)
	}
}
