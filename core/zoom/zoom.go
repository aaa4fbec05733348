package zoom

import (
	"math"
	"time"

	"github.com/ftl/signalatlas/core"
)

// Limits of the zoom factor.
const (
	MinScale = 1.0
	MaxScale = 1e8
)

// DefaultDuration of navigation animations.
const DefaultDuration = 500 * time.Millisecond

// Listener is notified about every new transform.
type Listener func(core.Transform)

// Controller owns the current transform on top of the base scale. It is either idle or animating towards a target transform.
// The controller is not safe for concurrent use, it is driven by a single loop.
type Controller struct {
	base      Scale
	current   core.Transform
	animation *animation
	listeners []Listener
}

type animation struct {
	from, to    core.Transform
	start       time.Time
	duration    time.Duration
	interpolate func(float64) core.Transform
}

// New returns a new idle controller with the identity transform.
func New(geometry core.Geometry) *Controller {
	return &Controller{
		base:    NewScale(geometry),
		current: core.Identity,
	}
}

// Notify registers the given listener.
func (c *Controller) Notify(listener Listener) {
	c.listeners = append(c.listeners, listener)
}

func (c *Controller) emit() {
	for _, listener := range c.listeners {
		listener(c.current)
	}
}

// Transform currently applied.
func (c *Controller) Transform() core.Transform {
	return c.current
}

// Base is the untransformed scale.
func (c *Controller) Base() Scale {
	return c.base
}

// Scale is the base scale rescaled by the current transform.
func (c *Controller) Scale() Scale {
	return c.base.Rescale(c.current)
}

// Animating indicates if an animation is in flight.
func (c *Controller) Animating() bool {
	return c.animation != nil
}

// Target of the current animation, or the current transform if idle.
func (c *Controller) Target() core.Transform {
	if c.animation != nil {
		return c.animation.to
	}
	return c.current
}

// Constrain clamps the zoom factor into [MinScale, MaxScale] and the translation so that the visible part of the axis
// never leaves the spectrum.
func (c *Controller) Constrain(t core.Transform) core.Transform {
	if math.IsNaN(t.K) {
		t.K = MinScale
	}
	if math.IsNaN(t.X) || math.IsInf(t.X, 0) {
		t.X = 0
	}
	t.K = math.Max(MinScale, math.Min(MaxScale, t.K))

	left, right := float64(c.base.axis.From), float64(c.base.axis.To)
	dx0 := (left-t.X)/t.K - left
	dx1 := (right-t.X)/t.K - right

	// the edges are set directly, a correction added to X loses precision at high zoom
	switch {
	case dx1 > dx0:
		t.X += t.K * (dx0 + dx1) / 2
	case dx0 < 0:
		t.X = left * (1 - t.K)
	case dx1 > 0:
		t.X = right * (1 - t.K)
	}
	return t
}

// ApplyGesture stores the constrained transform immediately. A gesture interrupts any running animation.
func (c *Controller) ApplyGesture(t core.Transform) {
	c.animation = nil
	c.current = c.Constrain(t)
	c.emit()
}

// ZoomBy multiplies the zoom factor, keeping the given pixel position fixed.
func (c *Controller) ZoomBy(factor float64, anchor core.Px) {
	k := c.current.K * factor
	base := c.current.Invert(anchor)
	c.ApplyGesture(core.Transform{K: k, X: float64(anchor) - k*float64(base)})
}

// PanBy moves the view by the given pixel distance.
func (c *Controller) PanBy(Δx core.Px) {
	c.ApplyGesture(core.Transform{K: c.current.K, X: c.current.X + float64(Δx)})
}

// AnimateTo starts a smooth transition from the current transform to the given target. A running animation is abandoned.
// A non-positive duration jumps to the target immediately.
func (c *Controller) AnimateTo(target core.Transform, duration time.Duration, now time.Time) {
	target = c.Constrain(target)
	if duration <= 0 {
		c.ApplyGesture(target)
		return
	}

	c.animation = &animation{
		from:        c.current,
		to:          target,
		start:       now,
		duration:    duration,
		interpolate: c.interpolator(c.current, target),
	}
}

// Reset animates back to the identity transform.
func (c *Controller) Reset(now time.Time) {
	c.AnimateTo(core.Identity, DefaultDuration, now)
}

// Tick advances a running animation to the given point in time. It returns true if the transform changed.
func (c *Controller) Tick(now time.Time) bool {
	a := c.animation
	if a == nil {
		return false
	}

	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		c.current = a.to
		c.animation = nil
	} else {
		t = math.Max(0, t)
		c.current = c.Constrain(a.interpolate(cubicInOut(t)))
	}
	c.emit()
	return true
}

func (c *Controller) interpolator(from, to core.Transform) func(float64) core.Transform {
	center := float64(c.base.axis.Center())
	width := float64(c.base.axis.Width())
	toView := func(t core.Transform) view {
		return view{center: (center - t.X) / t.K, width: width / t.K}
	}
	path := zoomPath(toView(from), toView(to))

	return func(t float64) core.Transform {
		if t >= 1 {
			return to
		}
		v := path(t)
		k := width / v.width
		return core.Transform{K: k, X: center - v.center*k}
	}
}
