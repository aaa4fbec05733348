package layout

import (
	"math"

	"github.com/ftl/signalatlas/core"
)

// SpacingLanes assigns lanes by the distance between label centers. An item takes the first lane whose last center is
// at least minSpacing to its left. Items must be assigned in a stable order to get a stable result.
type SpacingLanes struct {
	minSpacing core.Px
	lanes      []core.Px
}

// NewSpacingLanes returns empty lanes with the given minimum spacing.
func NewSpacingLanes(minSpacing core.Px) *SpacingLanes {
	return &SpacingLanes{minSpacing: minSpacing}
}

// Assign the given center to a lane and return the lane index.
func (l *SpacingLanes) Assign(center core.Px) int {
	for i, last := range l.lanes {
		if center-last >= l.minSpacing {
			l.lanes[i] = center
			return i
		}
	}
	l.lanes = append(l.lanes, center)
	return len(l.lanes) - 1
}

// DistanceLanes assigns lanes by the absolute distance between centers. An item collides with every center in a lane
// that is closer than minDistance, in either direction.
type DistanceLanes struct {
	minDistance core.Px
	lanes       [][]core.Px
}

// NewDistanceLanes returns empty lanes with the given minimum distance.
func NewDistanceLanes(minDistance core.Px) *DistanceLanes {
	return &DistanceLanes{minDistance: minDistance}
}

// Assign the given center to a lane and return the lane index.
func (l *DistanceLanes) Assign(center core.Px) int {
	for i, centers := range l.lanes {
		free := true
		for _, c := range centers {
			if math.Abs(float64(center-c)) < float64(l.minDistance) {
				free = false
				break
			}
		}
		if free {
			l.lanes[i] = append(l.lanes[i], center)
			return i
		}
	}
	l.lanes = append(l.lanes, []core.Px{center})
	return len(l.lanes) - 1
}

// IntervalLanes assigns lanes so that no two intervals within one lane intersect.
type IntervalLanes struct {
	lanes [][]core.PxRange
}

// NewIntervalLanes returns empty lanes.
func NewIntervalLanes() *IntervalLanes {
	return &IntervalLanes{}
}

// Assign the given interval to the first lane where it does not intersect any other interval, return the lane index.
func (l *IntervalLanes) Assign(r core.PxRange) int {
	for i, placed := range l.lanes {
		free := true
		for _, p := range placed {
			if p.Intersects(r) {
				free = false
				break
			}
		}
		if free {
			l.lanes[i] = append(l.lanes[i], r)
			return i
		}
	}
	l.lanes = append(l.lanes, []core.PxRange{r})
	return len(l.lanes) - 1
}

// Count of lanes in use.
func (l *IntervalLanes) Count() int {
	return len(l.lanes)
}
