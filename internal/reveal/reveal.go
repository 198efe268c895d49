// Package reveal drives scroll-triggered entrance animations. A
// controller attaches targets to a visibility sensor; when a target
// first becomes sufficiently visible it plays exactly one entrance,
// then lets go of the sensor. Surfaces own the drawing: they ask each
// item for its current style and interpret the channels they can
// express.
package reveal

import (
	"sync"
	"time"

	"github.com/clauselens/clauselens/internal/motion"
)

// Style is the interpolated presentation state of a target.
type Style struct {
	Opacity float64 // 0 hidden .. 1 opaque
	OffsetX float64 // residual horizontal translation
	OffsetY float64 // residual vertical translation
	Tilt    float64 // residual rotation, degrees
}

// Visible is the settled style every entrance ends on.
var Visible = Style{Opacity: 1}

// Variant selects an entrance animation.
type Variant int

const (
	SlideUp Variant = iota
	FadeIn
	SlideLeft
	TiltIn
)

func (v Variant) String() string {
	switch v {
	case FadeIn:
		return "fade-in"
	case SlideLeft:
		return "slide-left"
	case TiltIn:
		return "tilt-in"
	default:
		return "slide-up"
	}
}

// Hidden is the variant's pre-entrance style.
func (v Variant) Hidden() Style {
	switch v {
	case FadeIn:
		return Style{Opacity: 0}
	case SlideLeft:
		return Style{Opacity: 0, OffsetX: 24}
	case TiltIn:
		return Style{Opacity: 0, OffsetY: 16, Tilt: 8}
	default:
		return Style{Opacity: 0, OffsetY: 24}
	}
}

// At interpolates the entrance at eased progress p in [0,1].
func (v Variant) At(p float64) Style {
	h := v.Hidden()
	return Style{
		Opacity: lerp(h.Opacity, 1, p),
		OffsetX: lerp(h.OffsetX, 0, p),
		OffsetY: lerp(h.OffsetY, 0, p),
		Tilt:    lerp(h.Tilt, 0, p),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Sensor reports what fraction of a target is visible on the surface.
// Implementations call fn whenever the fraction may have changed; the
// returned cancel stops future deliveries.
type Sensor interface {
	Subscribe(fn func(visibleFraction float64)) (cancel func())
}

const (
	// DefaultThreshold is the visible fraction that triggers an
	// entrance.
	DefaultThreshold = 0.15

	// DefaultDuration is the entrance length.
	DefaultDuration = 650 * time.Millisecond
)

// Options configure one attachment.
type Options struct {
	Variant   Variant
	Threshold float64       // 0 means DefaultThreshold
	Duration  time.Duration // 0 means DefaultDuration
	Delay     time.Duration // wait between trigger and entrance start
}

// Controller coordinates entrances for one surface.
type Controller struct {
	reduced bool
	now     func() time.Time

	mu    sync.Mutex
	items []*Item
}

// NewController builds a controller. With reducedMotion set, attached
// targets are visible immediately and sensors are never subscribed.
func NewController(reducedMotion bool) *Controller {
	return &Controller{reduced: reducedMotion, now: time.Now}
}

// SetClock overrides the time source used to start entrances. Frame-
// locked hosts and tests pass their own.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// Attach registers a target with the sensor. The target holds its
// hidden style from this call on, so no sensor callback can ever
// observe it unstyled; the entrance fires at most once no matter how
// often the target crosses the threshold afterwards.
func (c *Controller) Attach(sensor Sensor, opts Options) *Item {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	it := &Item{
		variant:   opts.Variant,
		threshold: opts.Threshold,
		duration:  opts.Duration,
		delay:     opts.Delay,
		clock:     c.now,
	}

	c.mu.Lock()
	c.items = append(c.items, it)
	c.mu.Unlock()

	if c.reduced {
		it.fired = true
		it.visible = true
		return it
	}

	cancel := sensor.Subscribe(it.onVisibility)

	it.mu.Lock()
	it.unsubscribe = cancel
	fired := it.fired
	it.mu.Unlock()

	// The sensor may have reported visibility synchronously during
	// Subscribe; the subscription is spent in that case.
	if fired {
		it.Release()
	}
	return it
}

// AttachGroup attaches n children sharing one sensor, staggering each
// child's entrance by stagger times its index.
func (c *Controller) AttachGroup(sensor Sensor, opts Options, n int, stagger time.Duration) []*Item {
	items := make([]*Item, 0, n)
	for i := 0; i < n; i++ {
		o := opts
		o.Delay = opts.Delay + time.Duration(i)*stagger
		items = append(items, c.Attach(sensor, o))
	}
	return items
}

// ReleaseAll drops every live sensor subscription. Called on surface
// teardown.
func (c *Controller) ReleaseAll() {
	c.mu.Lock()
	items := append([]*Item(nil), c.items...)
	c.mu.Unlock()

	for _, it := range items {
		it.Release()
	}
}

// Item is one attached target's entrance state.
type Item struct {
	variant   Variant
	threshold float64
	duration  time.Duration
	delay     time.Duration
	clock     func() time.Time

	mu          sync.Mutex
	fired       bool
	visible     bool // reduced-motion fast path
	tween       *motion.Tween
	unsubscribe func()
}

func (it *Item) onVisibility(fraction float64) {
	it.mu.Lock()
	if it.fired || fraction < it.threshold {
		it.mu.Unlock()
		return
	}
	it.fired = true

	tw := motion.NewTween(0, 1, it.duration, motion.EaseOutCubic)
	tw.Start(it.clock().Add(it.delay))
	it.tween = tw

	unsub := it.unsubscribe
	it.unsubscribe = nil
	it.mu.Unlock()

	// One shot: the subscription ends with the first trigger.
	if unsub != nil {
		unsub()
	}
}

// StyleAt reports the target's style at the given instant: the hidden
// style before the trigger, the interpolated entrance during it, and
// Visible forever after.
func (it *Item) StyleAt(now time.Time) Style {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.visible {
		return Visible
	}
	if !it.fired || it.tween == nil {
		return it.variant.Hidden()
	}
	return it.variant.At(it.tween.Fraction(now))
}

// Fired reports whether the entrance has been triggered.
func (it *Item) Fired() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.fired
}

// Done reports whether the target has settled at its final style.
func (it *Item) Done(now time.Time) bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.visible {
		return true
	}
	return it.fired && it.tween != nil && it.tween.Done(now)
}

// Variant returns the entrance variant the item plays.
func (it *Item) Variant() Variant { return it.variant }

// Release drops the sensor subscription, if still live. The style
// freezes wherever it is; released items are no longer drawn.
func (it *Item) Release() {
	it.mu.Lock()
	unsub := it.unsubscribe
	it.unsubscribe = nil
	it.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
