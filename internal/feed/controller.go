package feed

import (
	"time"

	"github.com/voltclabs/voltfeed/internal/video"
)

const (
	// DefaultSettleDelay is the cool-down after a transition during which
	// further gestures are ignored.
	DefaultSettleDelay = 500 * time.Millisecond
	// DefaultTouchThreshold is the minimum vertical drag, in pixels, that
	// counts as a swipe.
	DefaultTouchThreshold = 50.0
)

// PlaybackDirector receives playback instructions as the active index moves.
// Exactly one index plays at a time; the next index is preloaded as a
// resource hint only.
type PlaybackDirector interface {
	Play(index int)
	Pause(index int)
	Preload(index int)
}

// Controller tracks the currently visible video in an ordered sequence and
// transitions it in response to discrete gestures. Transitions are debounced:
// while a settle window is open every gesture is ignored, so one continuous
// gesture can never skip multiple items.
type Controller struct {
	items          []video.WithCategory
	current        int
	settle         time.Duration
	touchThreshold float64
	settleUntil    time.Time
	touchStartY    float64
	touching       bool
	director       PlaybackDirector
	now            func() time.Time
}

// NewController creates a feed controller over the given sequence. The item
// at index 0 starts playing and index 1 is preloaded.
func NewController(items []video.WithCategory, director PlaybackDirector) *Controller {
	c := &Controller{
		items:          items,
		settle:         DefaultSettleDelay,
		touchThreshold: DefaultTouchThreshold,
		director:       director,
		now:            time.Now,
	}
	if len(items) > 0 {
		c.director.Play(0)
		if len(items) > 1 {
			c.director.Preload(1)
		}
	}
	return c
}

// Len returns the number of items in the sequence
func (c *Controller) Len() int {
	return len(c.items)
}

// CurrentIndex returns the index of the active item
func (c *Controller) CurrentIndex() int {
	return c.current
}

// Current returns the active item, or false for an empty sequence
func (c *Controller) Current() (video.WithCategory, bool) {
	if len(c.items) == 0 {
		return video.WithCategory{}, false
	}
	return c.items[c.current], true
}

// Transitioning reports whether the settle window is still open
func (c *Controller) Transitioning() bool {
	return c.now().Before(c.settleUntil)
}

// Advance moves to the next item. It is a no-op past the last element or
// while transitioning; the return value reports whether the index changed.
func (c *Controller) Advance() bool {
	if len(c.items) == 0 || c.Transitioning() || c.current >= len(c.items)-1 {
		return false
	}
	prev := c.current
	c.current++
	c.settleUntil = c.now().Add(c.settle)
	c.syncPlayback(prev)
	return true
}

// Retreat moves to the previous item, symmetric to Advance
func (c *Controller) Retreat() bool {
	if len(c.items) == 0 || c.Transitioning() || c.current <= 0 {
		return false
	}
	prev := c.current
	c.current--
	c.settleUntil = c.now().Add(c.settle)
	c.syncPlayback(prev)
	return true
}

// Wheel handles a single wheel-scroll event. Each event produces at most one
// transition.
func (c *Controller) Wheel(deltaY float64) bool {
	switch {
	case deltaY > 0:
		return c.Advance()
	case deltaY < 0:
		return c.Retreat()
	}
	return false
}

// TouchStart records the starting position of a touch drag
func (c *Controller) TouchStart(y float64) {
	c.touchStartY = y
	c.touching = true
}

// TouchEnd completes a touch drag. A transition happens only when the
// vertical displacement exceeds the threshold.
func (c *Controller) TouchEnd(y float64) bool {
	if !c.touching {
		return false
	}
	c.touching = false

	diff := c.touchStartY - y
	if diff > c.touchThreshold {
		return c.Advance()
	}
	if diff < -c.touchThreshold {
		return c.Retreat()
	}
	return false
}

// syncPlayback pauses the previous item, plays the active one and preloads
// its successor.
func (c *Controller) syncPlayback(prev int) {
	c.director.Pause(prev)
	c.director.Play(c.current)
	if c.current+1 < len(c.items) {
		c.director.Preload(c.current + 1)
	}
}
