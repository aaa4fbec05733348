package panorama

import (
	"log"
	"time"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/zoom"
)

// Panorama controller
type Panorama struct {
	geometry   core.Geometry
	bandplan   *bandplan.Bandplan
	measurer   layout.Measurer
	zoom       *zoom.Controller
	state      ViewState
	duration   time.Duration
	stripWidth core.Px
	pointer    pointer
	now        func() time.Time
}

type pointer struct {
	visible bool
	x, y    core.Px
}

const (
	// ZoomFactor for a single zoom step.
	ZoomFactor = 1.25
	// QuickBandCount is the number of bands offered for quick navigation.
	QuickBandCount = 8
	// SuggestionLimit is the maximum number of search suggestions.
	SuggestionLimit = 8

	defaultStripWidth core.Px = 600
)

// New returns a new instance of panorama.
func New(plan *bandplan.Bandplan, configuration core.Configuration, measurer layout.Measurer) *Panorama {
	duration := configuration.AnimationDuration
	if duration == 0 {
		duration = zoom.DefaultDuration
	}
	result := &Panorama{
		geometry:   core.DefaultGeometry,
		bandplan:   plan,
		measurer:   measurer,
		zoom:       zoom.New(core.DefaultGeometry),
		state:      NewViewState(configuration),
		duration:   duration,
		stripWidth: defaultStripWidth,
		now:        time.Now,
	}
	result.zoom.Notify(func(t core.Transform) {
		result.state = result.state.WithTransform(t)
	})
	return result
}

// State returns the current view state.
func (p *Panorama) State() ViewState {
	return p.state
}

// Geometry of the logical drawing surface.
func (p *Panorama) Geometry() core.Geometry {
	return p.geometry
}

// Bandplan that is shown.
func (p *Panorama) Bandplan() *bandplan.Bandplan {
	return p.bandplan
}

// Scale returns the current rescaled frequency scale.
func (p *Panorama) Scale() zoom.Scale {
	return p.zoom.Scale()
}

// Animating indicates if a navigation animation is in flight.
func (p *Panorama) Animating() bool {
	return p.zoom.Animating()
}

// Tick advances a running animation. It returns true if the view changed.
func (p *Panorama) Tick(now time.Time) bool {
	return p.zoom.Tick(now)
}

// SetRegion selects the allocation table of the given region.
func (p *Panorama) SetRegion(region core.Region) {
	if p.state.Region == region {
		return
	}
	log.Printf("region %s", region)
	p.state = p.state.WithRegion(region)
}

// SetShowAllocations shows or hides the allocation layer.
func (p *Panorama) SetShowAllocations(show bool) {
	p.state = p.state.WithAllocations(show)
}

// ToggleAllocations switches the allocation layer on and off.
func (p *Panorama) ToggleAllocations() {
	p.SetShowAllocations(!p.state.ShowAllocations)
}

// SetShowBands shows or hides the band layers.
func (p *Panorama) SetShowBands(show bool) {
	p.state = p.state.WithBands(show)
}

// ToggleBands switches the band layers on and off.
func (p *Panorama) ToggleBands() {
	p.SetShowBands(!p.state.ShowBands)
}

// SetStripWidth sets the width of the sub-band strip in the detail view.
func (p *Panorama) SetStripWidth(width core.Px) {
	if width > 0 {
		p.stripWidth = width
	}
}

// SetPointer updates the pointer position in logical pixels.
func (p *Panorama) SetPointer(x, y core.Px) {
	p.pointer = pointer{visible: true, x: x, y: y}
}

// ClearPointer hides the hover readout.
func (p *Panorama) ClearPointer() {
	p.pointer = pointer{}
}

// ApplyGesture applies the given raw transform, clamped to the valid range.
func (p *Panorama) ApplyGesture(t core.Transform) {
	p.zoom.ApplyGesture(t)
}

// ZoomIn one step around the given position.
func (p *Panorama) ZoomIn(anchor core.Px) {
	p.zoom.ZoomBy(ZoomFactor, anchor)
}

// ZoomOut one step around the given position.
func (p *Panorama) ZoomOut(anchor core.Px) {
	p.zoom.ZoomBy(1/ZoomFactor, anchor)
}

// PanBy moves the view by the given distance in logical pixels.
func (p *Panorama) PanBy(Δx core.Px) {
	p.zoom.PanBy(Δx)
}

// Select shows the details of the given band.
func (p *Panorama) Select(band bandplan.Band) {
	p.state = p.state.WithSelection(band)
}

// ClearSelection closes the detail view.
func (p *Panorama) ClearSelection() {
	p.state = p.state.WithoutSelection()
}

// SetMarker shows the marker at the given frequency without navigating.
func (p *Panorama) SetMarker(f core.Frequency) {
	p.state = p.state.WithMarker(f)
}

// DismissMarker hides the marker.
func (p *Panorama) DismissMarker() {
	p.state = p.state.WithoutMarker()
}

// Marker returns the marker frequency, if the marker is visible.
func (p *Panorama) Marker() (core.Frequency, bool) {
	return p.state.Marker, p.state.HasMarker
}

// QuickBands are the bands offered for quick navigation.
func (p *Panorama) QuickBands() []bandplan.Band {
	if len(p.bandplan.Bands) <= QuickBandCount {
		return p.bandplan.Bands
	}
	return p.bandplan.Bands[:QuickBandCount]
}
