package panorama

import (
	"math"

	"github.com/ftl/signalatlas/core"
)

const markerHitDistance core.Px = 4

// Hit is the result of a hit test.
type Hit struct {
	Kind  HitKind
	Index int
}

// HitKind tells which layer was hit.
type HitKind int

// All hit kinds.
const (
	HitNothing HitKind = iota
	HitMarker
	HitDetailedBand
	HitBand
	HitAllocation
)

// HitTest finds the topmost visible element at the given logical position.
func (p *Panorama) HitTest(x, y core.Px) Hit {
	return hitTest(p.Data(), x, y)
}

func hitTest(frame core.Panorama, x, y core.Px) Hit {
	m := frame.Marker
	if m.Visible && math.Abs(float64(x-m.X)) <= float64(markerHitDistance) && y >= m.LabelY-14 && y <= m.Bottom {
		return Hit{Kind: HitMarker}
	}

	for i := len(frame.DetailedBands) - 1; i >= 0; i-- {
		d := frame.DetailedBands[i]
		if d.Opacity > 0 && d.X.Contains(x) && y >= d.Y && y <= d.Y+d.Height {
			return Hit{Kind: HitDetailedBand, Index: i}
		}
	}

	if index, ok := narrowestBand(frame.Bands, x, y); ok {
		return Hit{Kind: HitBand, Index: index}
	}

	if index, ok := narrowestAllocation(frame.Allocations, x, y); ok {
		return Hit{Kind: HitAllocation, Index: index}
	}

	return Hit{Kind: HitNothing}
}

func narrowestBand(bands []core.BandMark, x, y core.Px) (int, bool) {
	result := -1
	for i, b := range bands {
		if b.Opacity == 0 || !b.X.Contains(x) || y < b.Y || y > b.Y+b.Height {
			continue
		}
		if result == -1 || b.X.Width() < bands[result].X.Width() {
			result = i
		}
	}
	return result, result != -1
}

func narrowestAllocation(allocations []core.AllocationMark, x, y core.Px) (int, bool) {
	result := -1
	for i, a := range allocations {
		if a.Opacity == 0 || !a.X.Contains(x) || y < a.Y || y > a.Y+a.Height {
			continue
		}
		if result == -1 || a.X.Width() < allocations[result].X.Width() {
			result = i
		}
	}
	return result, result != -1
}

func tooltip(frame core.Panorama, x, y core.Px) string {
	hit := hitTest(frame, x, y)
	switch hit.Kind {
	case HitMarker:
		return frame.Marker.Label
	case HitDetailedBand:
		d := frame.DetailedBands[hit.Index]
		return d.Name + ": " + core.FormatFrequency(d.Range.From) + " - " + core.FormatFrequency(d.Range.To)
	case HitBand:
		return frame.Bands[hit.Index].Name
	case HitAllocation:
		a := frame.Allocations[hit.Index]
		if a.Usage == "" {
			return a.Name
		}
		return a.Name + ": " + a.Usage
	default:
		return ""
	}
}

// Click handles a click at the given logical position: the marker is dismissed, a detailed band or band is selected.
// It returns true if the click changed the view state.
func (p *Panorama) Click(x, y core.Px) bool {
	hit := p.HitTest(x, y)
	switch hit.Kind {
	case HitMarker:
		p.DismissMarker()
	case HitDetailedBand:
		p.Select(p.bandplan.Resolve(p.bandplan.Detailed[hit.Index]))
	case HitBand:
		p.Select(p.bandplan.Bands[hit.Index])
	default:
		return false
	}
	return true
}
