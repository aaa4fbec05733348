package panorama

import (
	"sync"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/ui"
)

// New returns a new instance of the panorama view, connected to the drawing area accessible through the given builder.
func New(builder *gtk.Builder, controller Controller) *View {
	result := View{
		view:       ui.Get(builder, "panoramaView").(*gtk.DrawingArea),
		controller: controller,
		dataLock:   new(sync.RWMutex),
		device:     device{scale: 1},
	}
	result.view.Connect("draw", result.onDraw)
	result.connectMouse()
	result.connectKeyboard()

	return &result
}

// Controller for the panorama view.
type Controller interface {
	ZoomIn(anchor core.Px)
	ZoomOut(anchor core.Px)
	PanBy(Δx core.Px)
	ResetZoom()
	ZoomToQuickBand(int)
	Hover(x, y core.Px)
	Leave()
	Click(x, y core.Px)
	ToggleAllocations()
	ToggleBands()
	NextRegion()
	TuneToMarker()
	DismissMarker()
	CloseSelection()
}

// View of the spectrum.
type View struct {
	view       *gtk.DrawingArea
	controller Controller

	data     core.Panorama
	dataLock *sync.RWMutex

	device   device
	mouse    mouse
	keyboard keyboard
	export   func()
}

// device maps logical pixels of the frame geometry onto the allocated widget.
type device struct {
	scale            float64
	offsetX, offsetY float64
}

func (d device) toLogical(x, y float64) (core.Px, core.Px) {
	return core.Px((x - d.offsetX) / d.scale), core.Px((y - d.offsetY) / d.scale)
}

func (d device) toLogicalDistance(Δx float64) core.Px {
	return core.Px(Δx / d.scale)
}

// ShowPanorama shows the given frame. It may be called from any goroutine.
func (v *View) ShowPanorama(data core.Panorama) {
	v.dataLock.Lock()
	v.data = data
	v.dataLock.Unlock()

	glib.IdleAdd(v.view.QueueDraw)
}

// Data of the frame currently shown.
func (v *View) Data() core.Panorama {
	v.dataLock.RLock()
	defer v.dataLock.RUnlock()
	return v.data
}

// OnExport registers the action for the export key.
func (v *View) OnExport(export func()) {
	v.export = export
}

func (v *View) center() core.Px {
	g := v.Data().Geometry
	return (g.Left() + g.Right()) / 2
}
