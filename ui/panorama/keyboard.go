package panorama

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

const panStep = 100

type keyboard map[uint]func()

func (v *View) connectKeyboard() {
	v.keyboard = keyboard{
		gdk.KEY_plus:        func() { v.controller.ZoomIn(v.center()) },
		gdk.KEY_equal:       func() { v.controller.ZoomIn(v.center()) },
		gdk.KEY_KP_Add:      func() { v.controller.ZoomIn(v.center()) },
		gdk.KEY_minus:       func() { v.controller.ZoomOut(v.center()) },
		gdk.KEY_KP_Subtract: func() { v.controller.ZoomOut(v.center()) },
		gdk.KEY_Left:        func() { v.controller.PanBy(panStep) },
		gdk.KEY_Right:       func() { v.controller.PanBy(-panStep) },
		gdk.KEY_r:           v.controller.ResetZoom,
		gdk.KEY_a:           v.controller.ToggleAllocations,
		gdk.KEY_b:           v.controller.ToggleBands,
		gdk.KEY_g:           v.controller.NextRegion,
		gdk.KEY_t:           v.controller.TuneToMarker,
		gdk.KEY_e:           v.onExport,
		gdk.KEY_Escape: func() {
			v.controller.CloseSelection()
			v.controller.DismissMarker()
		},
	}
	for i, key := range []uint{gdk.KEY_1, gdk.KEY_2, gdk.KEY_3, gdk.KEY_4, gdk.KEY_5, gdk.KEY_6, gdk.KEY_7, gdk.KEY_8} {
		index := i
		v.keyboard[key] = func() { v.controller.ZoomToQuickBand(index) }
	}

	v.view.SetCanFocus(true)
	v.view.AddEvents(int(gdk.KEY_PRESS_MASK) | int(gdk.KEY_RELEASE_MASK))

	v.view.Connect("key-press-event", v.onKeyPress)
	v.view.Connect("key-release-event", v.onKeyRelease)
}

func (v *View) onExport() {
	if v.export != nil {
		v.export()
	}
}

func (v *View) onKeyPress(da *gtk.DrawingArea, event *gdk.Event) bool {
	keyEvent := gdk.EventKeyNewFromEvent(event)
	if action, ok := v.keyboard[keyEvent.KeyVal()]; ok {
		action()
		return true
	}
	return false
}

func (v *View) onKeyRelease(da *gtk.DrawingArea, event *gdk.Event) bool {
	return false
}
