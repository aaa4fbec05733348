package panorama

import (
	"math"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/ui"
)

type rect struct {
	top, left, bottom, right float64
}

func (r rect) width() float64 {
	return math.Abs(r.left - r.right)
}

func (r rect) height() float64 {
	return math.Abs(r.top - r.bottom)
}

func barRect(x core.PxRange, y, height core.Px) rect {
	return rect{
		top:    float64(y),
		left:   float64(x.From),
		bottom: float64(y + height),
		right:  float64(x.To),
	}
}

var dim = struct {
	spacing                float64
	padding                float64
	tickLength             float64
	stripeSpacing          float64
	frequencyScaleFontSize float64
	allocationFontSize     float64
	bandFontSize           float64
	detailedFontSize       float64
	markerFontSize         float64
	hoverFontSize          float64
}{
	spacing:                2.0,
	padding:                4.0,
	tickLength:             6.0,
	stripeSpacing:          8.0,
	frequencyScaleFontSize: 10.0,
	allocationFontSize:     10.0,
	bandFontSize:           14.0,
	detailedFontSize:       9.0,
	markerFontSize:         12.0,
	hoverFontSize:          11.0,
}

func (v *View) onDraw(da *gtk.DrawingArea, cr *cairo.Context) {
	data := v.Data()
	fillBackground(cr)
	if data.Geometry.Width == 0 {
		return
	}

	v.device = prepareDevice(da, data.Geometry)
	cr.Save()
	defer cr.Restore()
	cr.Translate(v.device.offsetX, v.device.offsetY)
	cr.Scale(v.device.scale, v.device.scale)
	cr.SelectFontFace("Sans", cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)

	axis := rect{
		top:    0,
		left:   float64(data.Geometry.Left()),
		bottom: float64(data.Geometry.Height),
		right:  float64(data.Geometry.Right()),
	}

	cr.Save()
	cr.Rectangle(axis.left, axis.top, axis.width(), axis.height())
	cr.Clip()
	drawAllocations(cr, data)
	drawBands(cr, data)
	drawDetailedBands(cr, data)
	cr.Restore()

	drawFrequencyScale(cr, data)
	drawMarker(cr, data)
	drawHover(cr, axis, data)
}

func fillBackground(cr *cairo.Context) {
	cr.Save()
	defer cr.Restore()

	cr.SetSourceRGB(0.07, 0.08, 0.1)
	cr.Paint()
}

func prepareDevice(da *gtk.DrawingArea, g core.Geometry) device {
	width, height := float64(da.GetAllocatedWidth()), float64(da.GetAllocatedHeight())
	scale := math.Min(width/float64(g.Width), height/float64(g.Height))
	if scale <= 0 {
		scale = 1
	}
	return device{
		scale:   scale,
		offsetX: (width - scale*float64(g.Width)) / 2,
		offsetY: (height - scale*float64(g.Height)) / 2,
	}
}

func drawAllocations(cr *cairo.Context, data core.Panorama) {
	cr.Save()
	defer cr.Restore()

	for _, a := range data.Allocations {
		if a.Opacity == 0 {
			continue
		}
		r := barRect(a.X, a.Y, a.Height)
		ui.SetSourceColor(cr, a.Color, a.Opacity)
		cr.Rectangle(r.left, r.top, r.width(), r.height())
		cr.Fill()
	}

	cr.SetFontSize(dim.allocationFontSize)
	cr.SetSourceRGB(0.8, 0.8, 0.8)
	for _, a := range data.Allocations {
		drawLabel(cr, a.Label)
	}
}

func drawBands(cr *cairo.Context, data core.Panorama) {
	cr.Save()
	defer cr.Restore()

	for _, b := range data.Bands {
		if b.Opacity == 0 {
			continue
		}
		r := barRect(b.X, b.Y, b.Height)

		cr.Save()
		cr.Rectangle(r.left, r.top, r.width(), r.height())
		cr.Clip()
		ui.SetSourceColor(cr, b.Color, 0.15*b.Opacity)
		cr.Paint()
		ui.SetSourceColor(cr, b.Color, 0.35*b.Opacity)
		cr.SetLineWidth(1)
		for x := r.left - r.height(); x < r.right; x += dim.stripeSpacing {
			cr.MoveTo(x, r.bottom)
			cr.LineTo(x+r.height(), r.top)
		}
		cr.Stroke()
		cr.Restore()

		ui.SetSourceColor(cr, b.Color, b.Opacity)
		cr.SetLineWidth(1)
		cr.Rectangle(r.left, r.top, r.width(), r.height())
		cr.Stroke()
	}

	cr.SelectFontFace("Sans", cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_BOLD)
	cr.SetFontSize(dim.bandFontSize)
	cr.SetSourceRGB(0.95, 0.95, 0.95)
	for _, b := range data.Bands {
		drawLabel(cr, b.Label)
	}
}

func drawDetailedBands(cr *cairo.Context, data core.Panorama) {
	cr.Save()
	defer cr.Restore()

	for _, d := range data.DetailedBands {
		if d.Opacity == 0 {
			continue
		}
		r := barRect(d.X, d.Y, d.Height)
		ui.SetSourceColor(cr, d.Color, d.Opacity)
		cr.Rectangle(r.left, r.top, math.Max(1, r.width()), r.height())
		cr.Fill()
	}

	cr.SetFontSize(dim.detailedFontSize)
	cr.SetSourceRGB(0, 0, 0)
	for _, d := range data.DetailedBands {
		drawLabel(cr, d.Label)
	}
}

// drawLabel centers the label text horizontally and vertically around the label position.
func drawLabel(cr *cairo.Context, label core.Label) {
	if !label.Visible || label.Text == "" {
		return
	}
	extents := cr.TextExtents(label.Text)
	cr.MoveTo(float64(label.X)-extents.Width/2-extents.XBearing, float64(label.Y)-extents.Height/2-extents.YBearing)
	cr.ShowText(label.Text)
}

func drawFrequencyScale(cr *cairo.Context, data core.Panorama) {
	cr.Save()
	defer cr.Restore()

	g := data.Geometry
	y := float64(g.Bottom())

	cr.SetSourceRGB(0.8, 0.8, 0.8)
	cr.SetLineWidth(1)
	cr.MoveTo(float64(g.Left()), y)
	cr.LineTo(float64(g.Right()), y)
	cr.Stroke()

	cr.SetFontSize(dim.frequencyScaleFontSize)
	for _, mark := range data.FrequencyScale {
		x := float64(mark.X)
		if x < float64(g.Left()) || x > float64(g.Right()) {
			continue
		}

		cr.SetSourceRGBA(0.8, 0.8, 0.8, 0.15)
		cr.SetDash([]float64{2, 2}, 0)
		cr.MoveTo(x, float64(g.Margin.Top))
		cr.LineTo(x, y)
		cr.Stroke()
		cr.SetDash([]float64{}, 0)

		cr.SetSourceRGB(0.8, 0.8, 0.8)
		cr.MoveTo(x, y)
		cr.LineTo(x, y+dim.tickLength)
		cr.Stroke()

		extents := cr.TextExtents(mark.Label)
		cr.MoveTo(x-extents.Width/2, y+dim.tickLength+dim.spacing+extents.Height)
		cr.ShowText(mark.Label)
	}
}

func drawMarker(cr *cairo.Context, data core.Panorama) {
	m := data.Marker
	if !m.Visible {
		return
	}
	cr.Save()
	defer cr.Restore()

	x := float64(m.X)
	ui.SetSourceColor(cr, m.Color, 1)
	cr.SetLineWidth(2)
	cr.MoveTo(x, float64(m.Top))
	cr.LineTo(x, float64(m.Bottom))
	cr.Stroke()

	cr.SelectFontFace("Sans", cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_BOLD)
	cr.SetFontSize(dim.markerFontSize)
	drawLabel(cr, core.Label{Text: m.Label, X: m.X, Y: m.LabelY, Visible: true})
}

func drawHover(cr *cairo.Context, axis rect, data core.Panorama) {
	h := data.Hover
	if !h.Visible {
		return
	}
	cr.Save()
	defer cr.Restore()

	x := float64(h.X)
	cr.SetSourceRGBA(1, 1, 1, 0.5)
	cr.SetLineWidth(1)
	cr.SetDash([]float64{3, 3}, 0)
	cr.MoveTo(x, float64(data.Geometry.Margin.Top))
	cr.LineTo(x, float64(data.Geometry.Bottom()))
	cr.Stroke()
	cr.SetDash([]float64{}, 0)

	cr.SetFontSize(dim.hoverFontSize)
	lines := []string{core.FormatFrequency(h.Frequency)}
	if h.Tooltip != "" {
		lines = append(lines, h.Tooltip)
	}
	var width, lineHeight float64
	for _, line := range lines {
		extents := cr.TextExtents(line)
		width = math.Max(width, extents.Width)
		lineHeight = math.Max(lineHeight, extents.Height)
	}
	boxWidth := width + 2*dim.padding
	boxHeight := float64(len(lines))*(lineHeight+dim.padding) + dim.padding
	left := x + dim.padding
	if left+boxWidth > axis.right {
		left = x - dim.padding - boxWidth
	}
	top := float64(data.Geometry.Margin.Top)

	cr.SetSourceRGBA(0, 0, 0, 0.75)
	cr.Rectangle(left, top, boxWidth, boxHeight)
	cr.Fill()

	cr.SetSourceRGB(1, 1, 1)
	for i, line := range lines {
		cr.MoveTo(left+dim.padding, top+float64(i+1)*(lineHeight+dim.padding))
		cr.ShowText(line)
	}
}
