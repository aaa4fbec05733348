package detail

import (
	"fmt"
	"html"
	"strings"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/ui"
)

// Controller for the detail view.
type Controller interface {
	CloseSelection()
	SetStripWidth(core.Px)
}

// View shows the selected band with its sub-bands.
type View struct {
	controller Controller

	box         *gtk.Box
	title       *gtk.Label
	rangeLabel  *gtk.Label
	description *gtk.Label
	strip       *gtk.DrawingArea
	table       *gtk.Label

	selection  *core.Selection
	stripWidth int
}

// New returns a new detail view, connected to the widgets accessible through the given builder.
func New(builder *gtk.Builder, controller Controller) *View {
	result := &View{
		controller:  controller,
		box:         ui.Get(builder, "detailBox").(*gtk.Box),
		title:       ui.Get(builder, "detailTitle").(*gtk.Label),
		rangeLabel:  ui.Get(builder, "detailRange").(*gtk.Label),
		description: ui.Get(builder, "detailDescription").(*gtk.Label),
		strip:       ui.Get(builder, "detailStrip").(*gtk.DrawingArea),
		table:       ui.Get(builder, "detailTable").(*gtk.Label),
	}
	closeButton := ui.Get(builder, "detailClose").(*gtk.Button)
	closeButton.Connect("clicked", func() { controller.CloseSelection() })
	result.strip.Connect("draw", result.onDraw)
	result.strip.Connect("size-allocate", result.onResize)

	return result
}

// ShowSelection shows the given selection, nil hides the view. It must be called on the GTK main loop.
func (v *View) ShowSelection(selection *core.Selection) {
	v.selection = selection
	if selection == nil {
		v.box.Hide()
		return
	}

	v.title.SetMarkup(fmt.Sprintf("<b>%s</b>", html.EscapeString(selection.Name)))
	v.rangeLabel.SetText("Frequency: " + core.FormatMHzRange(selection.Range))
	v.description.SetText(selection.Description)
	v.table.SetMarkup(Table(selection.Subbands))
	v.strip.SetVisible(len(selection.Strip.Bars) > 0)
	v.box.ShowAll()
	v.strip.QueueDraw()
}

func (v *View) onResize() {
	width := v.strip.GetAllocatedWidth() - 2*margin
	if width == v.stripWidth || width <= 0 {
		return
	}
	v.stripWidth = width
	v.controller.SetStripWidth(core.Px(width))
}

// Table renders the sub-band rows as monospaced pango markup.
func Table(rows []core.SubbandRow) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<tt>")
	fmt.Fprintf(&b, "<b>%-26s %-28s %s</b>", "Range (MHz)", "Label", "Mode")
	for _, row := range rows {
		r := core.FormatMHz(row.Range.From) + " – " + core.FormatMHz(row.Range.To)
		fmt.Fprintf(&b, "\n%-26s <span foreground=\"%s\">%-28s</span> %s",
			r, html.EscapeString(string(row.Color)), html.EscapeString(row.Label), html.EscapeString(row.Mode))
	}
	b.WriteString("</tt>")
	return b.String()
}

const margin = 10

func (v *View) onDraw(da *gtk.DrawingArea, cr *cairo.Context) {
	if v.selection == nil {
		return
	}
	strip := v.selection.Strip

	cr.Save()
	defer cr.Restore()
	cr.SetSourceRGB(0.07, 0.08, 0.1)
	cr.Paint()

	top := 0.0
	for _, bar := range strip.Bars {
		top = min(top, float64(bar.Text.Y)-12)
	}
	cr.Translate(margin, margin-top)
	cr.SetFontSize(10)

	drawBars(cr, strip)
	drawTicks(cr, strip)
	drawLegend(cr, strip, float64(da.GetAllocatedWidth())-2*margin)
}

func drawBars(cr *cairo.Context, strip core.Strip) {
	barTop := float64(layout.StripBarY)
	barHeight := float64(layout.StripBarHeight)
	for _, bar := range strip.Bars {
		ui.SetSourceColor(cr, bar.Color, 0.85)
		cr.Rectangle(float64(bar.X.From), barTop, max(1, float64(bar.X.Width())), barHeight)
		cr.Fill()

		extents := cr.TextExtents(bar.Text.Text)
		x := float64(bar.Text.X) - extents.Width/2
		y := float64(bar.Text.Y) - extents.Height/2 - extents.YBearing
		if bar.Inline {
			cr.SetSourceRGB(0, 0, 0)
		} else {
			cr.SetSourceRGBA(1, 1, 1, 0.5)
			cr.SetLineWidth(0.5)
			cr.MoveTo(float64(bar.Text.X), float64(bar.Text.Y)+extents.Height/2)
			cr.LineTo(float64(bar.Text.X), barTop)
			cr.Stroke()
			cr.SetSourceRGB(0.9, 0.9, 0.9)
		}
		cr.MoveTo(x, y)
		cr.ShowText(bar.Text.Text)
	}
}

func drawTicks(cr *cairo.Context, strip core.Strip) {
	y := float64(layout.StripBarY + layout.StripBarHeight)
	cr.SetSourceRGB(0.8, 0.8, 0.8)
	cr.SetLineWidth(1)
	for _, tick := range strip.Ticks {
		x := float64(tick.X)
		cr.MoveTo(x, y)
		cr.LineTo(x, y+4)
		cr.Stroke()
		extents := cr.TextExtents(tick.Label)
		cr.MoveTo(x-extents.Width/2, y+6+extents.Height)
		cr.ShowText(tick.Label)
	}
}

func drawLegend(cr *cairo.Context, strip core.Strip, width float64) {
	x := 0.0
	y := float64(strip.Height) + 12
	for _, entry := range strip.Legend {
		extents := cr.TextExtents(entry.Mode)
		if x+14+extents.Width > width && x > 0 {
			x = 0
			y += 16
		}
		ui.SetSourceColor(cr, entry.Color, 1)
		cr.Rectangle(x, y-10, 10, 10)
		cr.Fill()
		cr.SetSourceRGB(0.9, 0.9, 0.9)
		cr.MoveTo(x+14, y)
		cr.ShowText(entry.Mode)
		x += 14 + extents.Width + 16
	}
}
