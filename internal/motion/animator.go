package motion

import (
	"sync"
	"time"
)

// Animator drives frame callbacks at a fixed rate for hosts that have
// no frame loop of their own, such as the live-stream server. Every
// animation gets an explicit cancel handle, and Stop tears down all of
// them at once.
type Animator struct {
	interval time.Duration

	mu      sync.Mutex
	handles map[*Handle]struct{}
	stopped bool
}

// Handle identifies one running animation.
type Handle struct {
	stop chan struct{}
	once sync.Once
}

// Cancel stops the animation. Safe to call more than once, and after
// natural completion.
func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// NewAnimator builds an animator ticking at the given frames per
// second. Non-positive rates fall back to 30.
func NewAnimator(fps int) *Animator {
	if fps <= 0 {
		fps = 30
	}
	return &Animator{
		interval: time.Second / time.Duration(fps),
		handles:  make(map[*Handle]struct{}),
	}
}

// Animate runs onFrame at the animator's frame rate until the value
// reaches its target or the handle is canceled. The final callback
// delivers exactly the target value with done=true. Callbacks run on
// the animation goroutine; callers synchronize their own state.
func (a *Animator) Animate(from, to float64, d time.Duration, e Easing, onFrame func(value float64, done bool)) *Handle {
	h := &Handle{stop: make(chan struct{})}

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		h.Cancel()
		return h
	}
	a.handles[h] = struct{}{}
	a.mu.Unlock()

	tw := NewTween(from, to, d, e)
	go func() {
		defer a.release(h)

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		tw.Start(time.Now())
		for {
			select {
			case <-h.stop:
				return
			case now := <-ticker.C:
				select {
				case <-h.stop:
					return
				default:
				}
				done := tw.Done(now)
				onFrame(tw.Value(now), done)
				if done {
					return
				}
			}
		}
	}()
	return h
}

// Stop cancels every outstanding animation and rejects new ones. Used
// on teardown so no frame callback outlives its host.
func (a *Animator) Stop() {
	a.mu.Lock()
	a.stopped = true
	live := make([]*Handle, 0, len(a.handles))
	for h := range a.handles {
		live = append(live, h)
	}
	a.mu.Unlock()

	for _, h := range live {
		h.Cancel()
	}
}

// Active reports how many animations are currently running.
func (a *Animator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.handles)
}

func (a *Animator) release(h *Handle) {
	a.mu.Lock()
	delete(a.handles, h)
	a.mu.Unlock()
	h.Cancel()
}
