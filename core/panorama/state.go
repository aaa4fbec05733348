package panorama

import (
	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
)

// ViewState is the complete user facing state of the spectrum view. Every action derives a new ViewState from the
// current one.
type ViewState struct {
	Region          core.Region
	Transform       core.Transform
	ShowAllocations bool
	ShowBands       bool

	HasMarker bool
	Marker    core.Frequency

	HasSelection bool
	Selected     bandplan.Band
}

// NewViewState returns the initial state for the given configuration.
func NewViewState(configuration core.Configuration) ViewState {
	region := configuration.Region
	if region == "" {
		region = core.DefaultRegion
	}
	return ViewState{
		Region:          region,
		Transform:       core.Identity,
		ShowAllocations: configuration.ShowAllocations,
		ShowBands:       configuration.ShowBands,
	}
}

// WithRegion selects the allocation table of the given region.
func (s ViewState) WithRegion(region core.Region) ViewState {
	s.Region = region
	return s
}

// WithTransform stores the given transform.
func (s ViewState) WithTransform(t core.Transform) ViewState {
	s.Transform = t
	return s
}

// WithAllocations shows or hides the allocation layer.
func (s ViewState) WithAllocations(show bool) ViewState {
	s.ShowAllocations = show
	return s
}

// WithBands shows or hides the band and detailed band layers.
func (s ViewState) WithBands(show bool) ViewState {
	s.ShowBands = show
	return s
}

// WithMarker sets the marker to the given frequency.
func (s ViewState) WithMarker(f core.Frequency) ViewState {
	s.HasMarker = true
	s.Marker = f
	return s
}

// WithoutMarker removes the marker.
func (s ViewState) WithoutMarker() ViewState {
	s.HasMarker = false
	s.Marker = 0
	return s
}

// WithSelection selects the given band.
func (s ViewState) WithSelection(band bandplan.Band) ViewState {
	s.HasSelection = true
	s.Selected = band
	return s
}

// WithoutSelection clears the selection.
func (s ViewState) WithoutSelection() ViewState {
	s.HasSelection = false
	s.Selected = bandplan.Band{}
	return s
}
