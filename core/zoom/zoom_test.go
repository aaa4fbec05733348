package zoom

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/signalatlas/core"
)

func TestScale_BaseMapping(t *testing.T) {
	s := NewScale(core.DefaultGeometry)

	assert.Equal(t, core.Px(20), s.ToPx(0))
	assert.Equal(t, core.Px(1180), s.ToPx(core.MaxFrequency))
	assert.InDelta(t, 600, float64(s.ToPx(150e9)), 1e-9)
	assert.InDelta(t, 150e9, float64(s.ToHz(600)), 1)
	assert.Equal(t, core.Spectrum, s.VisibleRange())
}

func TestScale_RescaleDoesNotMutate(t *testing.T) {
	base := NewScale(core.DefaultGeometry)
	zoomed := base.Rescale(core.Transform{K: 10, X: -500})

	assert.Equal(t, core.Identity, base.Transform())
	assert.Equal(t, core.Px(20), base.ToPx(0))
	assert.Equal(t, core.Px(-300), zoomed.ToPx(0))
	assert.Equal(t, base.Base(144e6), zoomed.Base(144e6))
}

func TestScale_Monotonic(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	c := New(core.DefaultGeometry)
	for i := 0; i < 200; i++ {
		k := MinScale + rnd.Float64()*MaxScale
		c.ApplyGesture(core.Transform{K: k, X: -rnd.Float64() * 1200 * k})
		s := c.Scale()
		f1 := core.Frequency(rnd.Float64() * float64(core.MaxFrequency))
		f2 := f1 + core.Frequency(1+rnd.Float64()*1e6)
		if f2 > core.MaxFrequency {
			continue
		}
		assert.True(t, s.ToPx(f1) < s.ToPx(f2), "%v: %v >= %v", c.Transform(), f1, f2)
	}
}

func TestConstrain(t *testing.T) {
	c := New(core.DefaultGeometry)
	tt := []struct {
		value    core.Transform
		expected core.Transform
	}{
		{core.Transform{K: 1, X: 0}, core.Transform{K: 1, X: 0}},
		{core.Transform{K: 0.5, X: 0}, core.Transform{K: 1, X: 0}},
		{core.Transform{K: 1, X: 100}, core.Transform{K: 1, X: 0}},
		{core.Transform{K: 2, X: 100}, core.Transform{K: 2, X: -20}},
		{core.Transform{K: 2, X: -5000}, core.Transform{K: 2, X: -1180}},
		{core.Transform{K: 2, X: -600}, core.Transform{K: 2, X: -600}},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := c.Constrain(tc.value)
			assert.InDelta(t, tc.expected.K, actual.K, 1e-9)
			assert.InDelta(t, tc.expected.X, actual.X, 1e-9)
		})
	}

	assert.Equal(t, MaxScale, c.Constrain(core.Transform{K: 1e12}).K)
}

func TestConstrain_VisibleRangeStaysWithinSpectrum(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	c := New(core.DefaultGeometry)
	for i := 0; i < 500; i++ {
		raw := core.Transform{
			K: (rnd.Float64()*2 - 0.5) * MaxScale * rnd.Float64(),
			X: (rnd.Float64()*2 - 1) * 1e10,
		}
		c.ApplyGesture(raw)
		actual := c.Transform()
		require.True(t, actual.K >= MinScale && actual.K <= MaxScale, "%v", actual)

		visible := c.Scale().VisibleRange()
		assert.True(t, float64(visible.From) >= -1e-3*actual.K, "%v shows %v", actual, visible)
		assert.True(t, float64(visible.To) <= float64(core.MaxFrequency)*(1+1e-9), "%v shows %v", actual, visible)
	}
}

func TestConstrain_EdgesAtMaximumZoom(t *testing.T) {
	c := New(core.DefaultGeometry)

	c.ApplyGesture(core.Transform{K: 1e12, X: 5})
	assert.Equal(t, core.Transform{K: MaxScale, X: 20 * (1 - MaxScale)}, c.Transform())
	assert.True(t, c.Scale().VisibleRange().From >= 0, "%v", c.Scale().VisibleRange())
	assert.Equal(t, core.Frequency(0), c.Scale().Ticks(12)[0])

	c.ApplyGesture(core.Transform{K: 1e12, X: -1e30})
	assert.Equal(t, core.Transform{K: MaxScale, X: 1180 * (1 - MaxScale)}, c.Transform())
	assert.True(t, c.Scale().VisibleRange().To <= core.MaxFrequency, "%v", c.Scale().VisibleRange())
}

func TestScale_VisibleRangeIsLimitedToSpectrum(t *testing.T) {
	s := NewScale(core.DefaultGeometry).Rescale(core.Transform{K: 1, X: 100})

	assert.Equal(t, core.Frequency(0), s.VisibleRange().From)

	s = NewScale(core.DefaultGeometry).Rescale(core.Transform{K: 1, X: -100})
	assert.Equal(t, core.MaxFrequency, s.VisibleRange().To)
}

func TestZoomBy_KeepsAnchor(t *testing.T) {
	c := New(core.DefaultGeometry)
	c.ZoomBy(4, 600)
	before := c.Scale().ToHz(700)

	c.ZoomBy(1.25, 700)

	assert.InDelta(t, float64(before), float64(c.Scale().ToHz(700)), 1)
	assert.InDelta(t, 5, c.Transform().K, 1e-9)
}

func TestPanBy(t *testing.T) {
	c := New(core.DefaultGeometry)
	c.ApplyGesture(core.Transform{K: 10, X: -3000})

	c.PanBy(-100)
	assert.Equal(t, -3100.0, c.Transform().X)

	c.PanBy(1e6)
	assert.InDelta(t, -180, c.Transform().X, 1e-9)
}

func TestAnimateTo(t *testing.T) {
	c := New(core.DefaultGeometry)
	var notified []core.Transform
	c.Notify(func(t core.Transform) {
		notified = append(notified, t)
	})
	start := time.Now()
	target := c.Constrain(core.Transform{K: 1000, X: -600000})

	c.AnimateTo(target, 500*time.Millisecond, start)
	assert.True(t, c.Animating())
	assert.Equal(t, core.Identity, c.Transform())
	assert.Empty(t, notified)

	assert.True(t, c.Tick(start.Add(250*time.Millisecond)))
	middle := c.Transform()
	assert.True(t, middle.K > 1 && middle.K < 1000, "%v", middle)
	assert.True(t, c.Animating())

	assert.True(t, c.Tick(start.Add(600*time.Millisecond)))
	assert.Equal(t, target, c.Transform())
	assert.False(t, c.Animating())
	assert.False(t, c.Tick(start.Add(700*time.Millisecond)))
	assert.Len(t, notified, 2)
}

func TestAnimateTo_LastCallWins(t *testing.T) {
	c := New(core.DefaultGeometry)
	start := time.Now()
	first := c.Constrain(core.Transform{K: 1000, X: -600000})
	second := c.Constrain(core.Transform{K: 50, X: -20000})

	c.AnimateTo(first, 500*time.Millisecond, start)
	c.Tick(start.Add(100 * time.Millisecond))
	c.AnimateTo(second, 500*time.Millisecond, start.Add(100*time.Millisecond))
	assert.Equal(t, second, c.Target())

	c.Tick(start.Add(700 * time.Millisecond))
	assert.Equal(t, second, c.Transform())
	assert.False(t, c.Animating())
}

func TestAnimateTo_ZeroDurationJumps(t *testing.T) {
	c := New(core.DefaultGeometry)
	target := c.Constrain(core.Transform{K: 8, X: -2000})

	c.AnimateTo(target, 0, time.Now())

	assert.False(t, c.Animating())
	assert.Equal(t, target, c.Transform())
}

func TestGestureInterruptsAnimation(t *testing.T) {
	c := New(core.DefaultGeometry)
	c.AnimateTo(core.Transform{K: 1000, X: -600000}, time.Second, time.Now())

	c.ApplyGesture(core.Transform{K: 2, X: -100})

	assert.False(t, c.Animating())
	assert.Equal(t, core.Transform{K: 2, X: -100}, c.Transform())
}

func TestReset(t *testing.T) {
	c := New(core.DefaultGeometry)
	start := time.Now()
	c.ApplyGesture(core.Transform{K: 12345, X: -1e6})

	c.Reset(start)
	for now := start; c.Animating(); now = now.Add(16 * time.Millisecond) {
		c.Tick(now)
	}

	assert.Equal(t, core.Identity, c.Transform())
}

func TestZoomPath_Endpoints(t *testing.T) {
	tt := []struct {
		from, to view
	}{
		{view{600, 1160}, view{20.5, 0.0387}},
		{view{20.5, 0.0387}, view{600, 1160}},
		{view{300, 10}, view{300, 0.001}},
		{view{100, 1}, view{900, 1}},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			path := zoomPath(tc.from, tc.to)
			start, end := path(0), path(1)
			assert.InDelta(t, tc.from.center, start.center, 1e-6)
			assert.InDelta(t, tc.from.width, start.width, 1e-6*tc.from.width)
			assert.InDelta(t, tc.to.center, end.center, 1e-6)
			assert.InDelta(t, tc.to.width, end.width, 1e-6*tc.to.width)
		})
	}
}

func TestCubicInOut(t *testing.T) {
	assert.Equal(t, 0.0, cubicInOut(0))
	assert.Equal(t, 0.5, cubicInOut(0.5))
	assert.Equal(t, 1.0, cubicInOut(1))
	assert.True(t, cubicInOut(0.25) < 0.25)
	assert.True(t, cubicInOut(0.75) > 0.75)
}

func TestTicks(t *testing.T) {
	ticks := Ticks(core.Spectrum, 12)
	require.NotEmpty(t, ticks)
	assert.Equal(t, core.Frequency(0), ticks[0])
	assert.Equal(t, core.Frequency(20e9), ticks[1]-ticks[0])
	assert.Equal(t, core.MaxFrequency, ticks[len(ticks)-1])

	ticks = Ticks(core.FrequencyRange{From: 144e6, To: 148e6}, 12)
	require.NotEmpty(t, ticks)
	assert.Equal(t, core.Frequency(144e6), ticks[0])
	for _, tick := range ticks {
		assert.True(t, tick >= 144e6 && tick <= 148e6)
	}

	assert.Empty(t, Ticks(core.FrequencyRange{From: 5, To: 5}, 12))
}
