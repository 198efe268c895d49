// Package motion is the animation primitive underneath every moving part
// of the dashboard: eased tweens advanced by an explicit clock, and a
// ticker-driven frame source for hosts without a frame loop of their own.
package motion

import "time"

// Easing shapes tween progress. Input and output are both in [0,1],
// with e(0)=0 and e(1)=1.
type Easing func(t float64) float64

// Linear applies no shaping.
func Linear(t float64) float64 { return t }

// EaseOutQuad decelerates toward the end.
func EaseOutQuad(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// EaseOutCubic starts fast and settles; the default curve for gauge
// fills and entrances.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Tween interpolates a value toward a target over a fixed duration.
// Time is always passed in, never read from the wall clock, so frame
// loops and tests fully control progression.
type Tween struct {
	from     float64
	to       float64
	duration time.Duration
	easing   Easing
	start    time.Time
	started  bool
}

// NewTween builds a tween; it does not begin until Start. A nil easing
// defaults to EaseOutCubic.
func NewTween(from, to float64, d time.Duration, e Easing) *Tween {
	if e == nil {
		e = EaseOutCubic
	}
	return &Tween{from: from, to: to, duration: d, easing: e}
}

// Start begins the tween at the given instant.
func (tw *Tween) Start(now time.Time) {
	tw.start = now
	tw.started = true
}

// Value reports the eased value at the given instant. Before Start it
// reports the starting point; once the duration has elapsed it reports
// exactly the target.
func (tw *Tween) Value(now time.Time) float64 {
	p := tw.progress(now)
	if p >= 1 {
		return tw.to
	}
	return tw.from + (tw.to-tw.from)*tw.easing(p)
}

// Fraction reports eased progress in [0,1] at the given instant.
func (tw *Tween) Fraction(now time.Time) float64 {
	p := tw.progress(now)
	if p >= 1 {
		return 1
	}
	return tw.easing(p)
}

// Done reports whether the tween has reached its target.
func (tw *Tween) Done(now time.Time) bool {
	return tw.progress(now) >= 1
}

// Target returns the destination value.
func (tw *Tween) Target() float64 { return tw.to }

// Retarget redirects a tween toward a new destination, starting over
// from whatever value is current at the given instant. Mid-flight
// changes stay visually continuous instead of snapping back.
func (tw *Tween) Retarget(now time.Time, to float64) {
	tw.from = tw.Value(now)
	tw.to = to
	tw.start = now
	tw.started = true
}

func (tw *Tween) progress(now time.Time) float64 {
	if !tw.started {
		return 0
	}
	if tw.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(tw.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= tw.duration {
		return 1
	}
	return float64(elapsed) / float64(tw.duration)
}
