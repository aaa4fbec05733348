package zoom

import "math"

const (
	rho      = math.Sqrt2
	rho2     = 2.0
	rho4     = 4.0
	epsilon2 = 1e-12
)

// view is a window on the base axis: the base pixel at its center and its width in base pixels.
type view struct {
	center float64
	width  float64
}

// zoomPath returns the smooth zoom and pan path between two views, following van Wijk and Nuij,
// "Smooth and efficient zooming and panning". The path zooms out while panning over long distances.
func zoomPath(from, to view) func(float64) view {
	d := to.center - from.center
	d2 := d * d

	if d2 < epsilon2 {
		s := math.Log(to.width/from.width) / rho
		return func(t float64) view {
			return view{
				center: from.center + t*d,
				width:  from.width * math.Exp(rho*t*s),
			}
		}
	}

	d1 := math.Abs(d)
	b0 := (to.width*to.width - from.width*from.width + rho4*d2) / (2 * from.width * rho2 * d1)
	b1 := (to.width*to.width - from.width*from.width - rho4*d2) / (2 * to.width * rho2 * d1)
	// log(sqrt(b²+1) - b) without cancellation for large b
	r0 := -math.Asinh(b0)
	r1 := -math.Asinh(b1)
	s := (r1 - r0) / rho
	coshr0 := math.Cosh(r0)
	sinhr0 := math.Sinh(r0)

	return func(t float64) view {
		st := t * s
		u := from.width / (rho2 * d1) * (coshr0*math.Tanh(rho*st+r0) - sinhr0)
		return view{
			center: from.center + u*d,
			width:  from.width * coshr0 / math.Cosh(rho*st+r0),
		}
	}
}

// cubicInOut easing
func cubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
