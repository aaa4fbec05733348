package ui

import (
	"log"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
)

// Get the object with the given id from the builder. A missing object is fatal, the glade definition is compiled into
// the binary.
func Get(builder *gtk.Builder, id string) glib.IObject {
	result, err := builder.GetObject(id)
	if err != nil {
		log.Fatalf("Cannot get UI object %s: %v", id, err)
	}
	return result
}

// SetSourceColor sets the given color with the given opacity as cairo source.
func SetSourceColor(cr *cairo.Context, c core.Color, alpha float64) {
	r, g, b := c.RGB()
	cr.SetSourceRGBA(r, g, b, alpha)
}
