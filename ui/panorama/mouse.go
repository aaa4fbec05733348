package panorama

import (
	"log"
	"math"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

type mouse struct {
	buttonPressed  bool
	startX, startY float64
	lastX          float64
	dragThreshold  float64
	dragging       bool
}

func (v *View) connectMouse() {
	v.mouse = mouse{
		dragThreshold: 4.0,
	}

	v.view.AddEvents(int(gdk.BUTTON_PRESS_MASK))
	v.view.AddEvents(int(gdk.BUTTON_RELEASE_MASK))
	v.view.AddEvents(int(gdk.POINTER_MOTION_MASK))
	v.view.AddEvents(int(gdk.LEAVE_NOTIFY_MASK))
	v.view.AddEvents(int(gdk.SCROLL_MASK))
	v.view.Connect("button-press-event", v.onButtonPress)
	v.view.Connect("button-release-event", v.onButtonRelease)
	v.view.Connect("motion-notify-event", v.onPointerMotion)
	v.view.Connect("leave-notify-event", v.onLeave)
	v.view.Connect("scroll-event", v.onScroll)
}

func (v *View) onButtonPress(da *gtk.DrawingArea, e *gdk.Event) {
	buttonEvent := gdk.EventButtonNewFromEvent(e)
	v.view.GrabFocus()
	if buttonEvent.Button() != 1 {
		log.Printf("click %d", buttonEvent.Button())
		return
	}

	v.mouse.buttonPressed = true
	v.mouse.startX, v.mouse.startY = buttonEvent.X(), buttonEvent.Y()
	v.mouse.lastX = v.mouse.startX
	v.mouse.dragging = false
}

func (v *View) onButtonRelease(da *gtk.DrawingArea, e *gdk.Event) {
	if v.mouse.buttonPressed && !v.mouse.dragging {
		x, y := v.device.toLogical(v.mouse.startX, v.mouse.startY)
		v.controller.Click(x, y)
	}
	v.mouse.buttonPressed = false
	v.mouse.startX, v.mouse.startY = 0, 0
	v.mouse.dragging = false
}

func (v *View) onPointerMotion(da *gtk.DrawingArea, e *gdk.Event) {
	motionEvent := gdk.EventMotionNewFromEvent(e)
	x, y := motionEvent.MotionVal()

	if v.mouse.buttonPressed && math.Abs(v.mouse.startX-x) > v.mouse.dragThreshold {
		v.mouse.dragging = true
	}
	if v.mouse.dragging {
		v.controller.PanBy(v.device.toLogicalDistance(x - v.mouse.lastX))
		v.mouse.lastX = x
	}

	v.controller.Hover(v.device.toLogical(x, y))
}

func (v *View) onLeave(da *gtk.DrawingArea, e *gdk.Event) {
	v.controller.Leave()
}

func (v *View) onScroll(da *gtk.DrawingArea, e *gdk.Event) {
	scrollEvent := gdk.EventScrollNewFromEvent(e)
	anchor, _ := v.device.toLogical(scrollEvent.X(), scrollEvent.Y())
	switch scrollEvent.Direction() {
	case gdk.SCROLL_UP:
		v.controller.ZoomIn(anchor)
	case gdk.SCROLL_DOWN:
		v.controller.ZoomOut(anchor)
	case gdk.SCROLL_SMOOTH:
		switch {
		case scrollEvent.DeltaY() < 0:
			v.controller.ZoomIn(anchor)
		case scrollEvent.DeltaY() > 0:
			v.controller.ZoomOut(anchor)
		}
	default:
		log.Printf("unknown scroll direction %d", scrollEvent.Direction())
	}
}
