package zoom

import (
	"math"

	"github.com/ftl/signalatlas/core"
)

// Scale maps frequencies linearly onto the frequency axis of a geometry. A Scale is a value, Rescale derives a new one.
type Scale struct {
	domain    core.FrequencyRange
	axis      core.PxRange
	transform core.Transform
}

// NewScale returns the base scale of the complete spectrum for the given geometry.
func NewScale(geometry core.Geometry) Scale {
	return Scale{
		domain:    core.Spectrum,
		axis:      core.PxRange{From: geometry.Left(), To: geometry.Right()},
		transform: core.Identity,
	}
}

// Rescale returns a copy of the base mapping with the given transform applied.
func (s Scale) Rescale(t core.Transform) Scale {
	s.transform = t
	return s
}

// Transform that is applied on the base mapping.
func (s Scale) Transform() core.Transform {
	return s.transform
}

// Axis is the pixel range of the frequency axis.
func (s Scale) Axis() core.PxRange {
	return s.axis
}

// Base maps the frequency through the untransformed scale.
func (s Scale) Base(f core.Frequency) core.Px {
	return s.axis.From + core.Px(float64(f-s.domain.From)/float64(s.domain.Width())*float64(s.axis.Width()))
}

// BaseFrequency inverts Base.
func (s Scale) BaseFrequency(x core.Px) core.Frequency {
	return s.domain.From + core.Frequency(float64(x-s.axis.From)/float64(s.axis.Width())*float64(s.domain.Width()))
}

// ToPx maps the frequency to its pixel position in the current view.
func (s Scale) ToPx(f core.Frequency) core.Px {
	return s.transform.Apply(s.Base(f))
}

// ToHz maps the pixel position in the current view to its frequency.
func (s Scale) ToHz(x core.Px) core.Frequency {
	return s.BaseFrequency(s.transform.Invert(x))
}

// Project the frequency range into the current view.
func (s Scale) Project(r core.FrequencyRange) core.PxRange {
	return core.PxRange{From: s.ToPx(r.From), To: s.ToPx(r.To)}
}

// VisibleRange is the frequency range shown on the axis, limited to the domain.
func (s Scale) VisibleRange() core.FrequencyRange {
	return core.FrequencyRange{
		From: max(s.domain.From, s.ToHz(s.axis.From)),
		To:   min(s.domain.To, s.ToHz(s.axis.To)),
	}
}

// Ticks returns about count nicely rounded frequencies within the visible range.
func (s Scale) Ticks(count int) []core.Frequency {
	return Ticks(s.VisibleRange(), count)
}

// Ticks returns about count frequencies within the given range, spaced by 1, 2 or 5 times a power of ten.
func Ticks(r core.FrequencyRange, count int) []core.Frequency {
	start, stop := float64(r.From), float64(r.To)
	if count <= 0 || !(stop > start) || math.IsInf(stop-start, 0) {
		return nil
	}

	step := tickStep(start, stop, count)
	first := math.Ceil(start / step)
	last := math.Floor(stop / step)
	result := make([]core.Frequency, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		result = append(result, core.Frequency(i*step))
	}
	return result
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickStep(start, stop float64, count int) float64 {
	step0 := (stop - start) / float64(count)
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	e := step0 / step1
	switch {
	case e >= e10:
		step1 *= 10
	case e >= e5:
		step1 *= 5
	case e >= e2:
		step1 *= 2
	}
	return step1
}
