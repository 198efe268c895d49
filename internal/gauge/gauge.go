// Package gauge implements the circular score gauge: ring geometry in
// stroke-dash terms, the mount and retarget animation, and renderers
// for standalone SVG and for terminal cells.
package gauge

import (
	"math"
	"time"

	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/motion"
)

// Ring is the gauge circle geometry for a given bounding box and stroke
// width. Every dash length derives from it; there are no hard-coded
// path constants anywhere downstream.
type Ring struct {
	Size   float64 // bounding box edge
	Stroke float64 // stroke width
}

// Radius fits the stroke inside the box.
func (r Ring) Radius() float64 { return (r.Size - r.Stroke) / 2 }

// Circumference is the ring's full path length, which doubles as its
// dash array value.
func (r Ring) Circumference() float64 { return 2 * math.Pi * r.Radius() }

// Offset is the stroke dash offset that leaves clamp(score)% of the
// ring drawn: Offset(0) is the full circumference (empty ring),
// Offset(100) is 0 (closed ring), strictly decreasing in between.
func (r Ring) Offset(score float64) float64 {
	c := r.Circumference()
	return c - metrics.Clamp(score)/100*c
}

// ArcParams is everything an SVG emitter needs for one gauge arc.
type ArcParams struct {
	Radius        float64 `json:"radius"`
	Circumference float64 `json:"circumference"`
	DashArray     float64 `json:"dash_array"`
	DashOffset    float64 `json:"dash_offset"`
}

// Arc captures the ring at a given score.
func (r Ring) Arc(score float64) ArcParams {
	c := r.Circumference()
	return ArcParams{
		Radius:        r.Radius(),
		Circumference: c,
		DashArray:     c,
		DashOffset:    r.Offset(score),
	}
}

// State animates one gauge's ring toward its score. The ring mounts
// empty and fills to the target; score changes mid-flight retarget from
// the current visual position rather than snapping back to empty.
type State struct {
	Title string
	Tone  metrics.Tone

	ring      Ring
	duration  time.Duration
	score     float64
	tween     *motion.Tween
	presented bool
}

// New prepares a gauge over the given ring. Nothing moves until
// SetScore.
func New(ring Ring, duration time.Duration) *State {
	c := ring.Circumference()
	return &State{
		ring:     ring,
		duration: duration,
		tween:    motion.NewTween(c, c, 0, nil),
	}
}

// Ring returns the underlying geometry.
func (s *State) Ring() Ring { return s.ring }

// Score returns the clamped score the gauge is aiming for.
func (s *State) Score() float64 { return s.score }

// SetScore aims the gauge at a new score. The first call starts the
// mount animation from an empty ring; later calls retarget from the
// current offset.
func (s *State) SetScore(now time.Time, score float64) {
	s.score = metrics.Clamp(score)
	target := s.ring.Offset(s.score)
	if !s.presented {
		s.presented = true
		s.tween = motion.NewTween(s.ring.Circumference(), target, s.duration, motion.EaseOutCubic)
		s.tween.Start(now)
		return
	}
	s.tween.Retarget(now, target)
}

// Settle jumps straight to the target offset, skipping animation.
func (s *State) Settle(now time.Time) {
	target := s.ring.Offset(s.score)
	s.presented = true
	s.tween = motion.NewTween(target, target, 0, nil)
	s.tween.Start(now)
}

// Offset reports the ring's dash offset at the given instant.
func (s *State) Offset(now time.Time) float64 { return s.tween.Value(now) }

// Fraction reports how much of the ring is drawn at the given instant,
// in [0,1].
func (s *State) Fraction(now time.Time) float64 {
	c := s.ring.Circumference()
	if c <= 0 {
		return 0
	}
	return (c - s.tween.Value(now)) / c
}

// Reading is the integer the label shows this frame. It tracks the
// ring fill exactly, so the number and the arc always agree, both on
// mount and across retargets.
func (s *State) Reading(now time.Time) int {
	return int(math.Round(s.Fraction(now) * 100))
}

// Done reports whether the gauge has settled on its target.
func (s *State) Done(now time.Time) bool { return s.tween.Done(now) }

// ArcAt captures the gauge's arc at the given instant, for emitters
// that follow the animation frame by frame.
func (s *State) ArcAt(now time.Time) ArcParams {
	c := s.ring.Circumference()
	return ArcParams{
		Radius:        s.ring.Radius(),
		Circumference: c,
		DashArray:     c,
		DashOffset:    s.tween.Value(now),
	}
}
