package svg

import (
	"fmt"
	"io"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/layout"
)

const (
	background      = "fill:#121419"
	axisStyle       = "stroke:#ccc;stroke-width:1"
	gridStyle       = "stroke:#ccc;stroke-opacity:0.15;stroke-dasharray:2,2"
	textStyle       = "fill:#ccc;font-family:sans-serif;text-anchor:middle;dominant-baseline:middle"
	stripGap        = 30
	legendRowHeight = 16
)

// ExportFile writes the given frame as SVG into the file with the given name.
func ExportFile(filename string, frame core.Panorama) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", filename)
	}
	defer f.Close()

	if err := Write(f, frame); err != nil {
		return errors.Wrapf(err, "cannot write %s", filename)
	}
	return f.Close()
}

// Write renders the given frame as SVG. A selected band is rendered with its sub-band strip below the spectrum.
func Write(w io.Writer, frame core.Panorama) error {
	out := &errWriter{w: w}
	canvas := svgo.New(out)

	g := frame.Geometry
	canvasWidth, canvasHeight := px(g.Width), px(g.Height)
	if frame.Selection != nil && len(frame.Selection.Strip.Bars) > 0 {
		canvasHeight += stripGap + px(frame.Selection.Strip.Height) + legendRowHeight*2
	}

	canvas.Start(canvasWidth, canvasHeight)
	canvas.Title(fmt.Sprintf("%s, %s", core.FormatFrequency(frame.VisibleRange.From), core.FormatFrequency(frame.VisibleRange.To)))
	canvas.Rect(0, 0, canvasWidth, canvasHeight, background)

	canvas.Def()
	canvas.ClipPath(`id="axis"`)
	canvas.Rect(px(g.Left()), 0, px(g.InnerWidth()), px(g.Height))
	canvas.ClipEnd()
	for _, b := range frame.Bands {
		if b.Opacity == 0 {
			continue
		}
		canvas.Pattern(stripeID(b.Index), 0, 0, 8, 8, "user", `patternTransform="rotate(45)"`)
		canvas.Line(0, 0, 0, 8, fmt.Sprintf("stroke:%s;stroke-width:2;stroke-opacity:0.35", b.Color))
		canvas.PatternEnd()
	}
	canvas.DefEnd()

	canvas.Group(`clip-path="url(#axis)"`)
	writeAllocations(canvas, frame)
	writeBands(canvas, frame)
	writeDetailedBands(canvas, frame)
	canvas.Gend()

	writeFrequencyScale(canvas, frame)
	writeMarker(canvas, frame)

	if frame.Selection != nil && len(frame.Selection.Strip.Bars) > 0 {
		writeSelection(canvas, frame.Selection, px(g.Left()), px(g.Height)+stripGap)
	}

	canvas.End()
	return out.err
}

func writeAllocations(canvas *svgo.SVG, frame core.Panorama) {
	for _, a := range frame.Allocations {
		if a.Opacity == 0 {
			continue
		}
		canvas.Rect(px(a.X.From), px(a.Y), width(a.X), px(a.Height), fmt.Sprintf("fill:%s;fill-opacity:%.2f", a.Color, a.Opacity))
	}
	for _, a := range frame.Allocations {
		writeLabel(canvas, a.Label, layout.AllocationLabels.FontSize, "")
	}
}

func writeBands(canvas *svgo.SVG, frame core.Panorama) {
	for _, b := range frame.Bands {
		if b.Opacity == 0 {
			continue
		}
		canvas.Rect(px(b.X.From), px(b.Y), width(b.X), px(b.Height),
			fmt.Sprintf("fill:url(#%s);stroke:%s;stroke-width:1;opacity:%.2f", stripeID(b.Index), b.Color, b.Opacity))
	}
	for _, b := range frame.Bands {
		writeLabel(canvas, b.Label, 14, "font-weight:bold;fill:#f2f2f2")
	}
}

func writeDetailedBands(canvas *svgo.SVG, frame core.Panorama) {
	for _, d := range frame.DetailedBands {
		if d.Opacity == 0 {
			continue
		}
		canvas.Rect(px(d.X.From), px(d.Y), max(1, width(d.X)), px(d.Height), fmt.Sprintf("fill:%s;fill-opacity:%.2f", d.Color, d.Opacity))
	}
	for _, d := range frame.DetailedBands {
		writeLabel(canvas, d.Label, layout.DetailedBandStrips.FontSize, "fill:#000")
	}
}

func writeFrequencyScale(canvas *svgo.SVG, frame core.Panorama) {
	g := frame.Geometry
	y := px(g.Bottom())
	canvas.Line(px(g.Left()), y, px(g.Right()), y, axisStyle)
	for _, mark := range frame.FrequencyScale {
		if mark.X < g.Left() || mark.X > g.Right() {
			continue
		}
		x := px(mark.X)
		canvas.Line(x, px(g.Margin.Top), x, y, gridStyle)
		canvas.Line(x, y, x, y+6, axisStyle)
		canvas.Text(x, y+18, mark.Label, textStyle+";font-size:10px")
	}
}

func writeMarker(canvas *svgo.SVG, frame core.Panorama) {
	m := frame.Marker
	if !m.Visible {
		return
	}
	x := px(m.X)
	canvas.Line(x, px(m.Top), x, px(m.Bottom), fmt.Sprintf("stroke:%s;stroke-width:2", m.Color))
	canvas.Text(x, px(m.LabelY), m.Label, fmt.Sprintf("%s;font-size:12px;font-weight:bold;fill:%s", textStyle, m.Color))
}

func writeSelection(canvas *svgo.SVG, selection *core.Selection, left, top int) {
	strip := selection.Strip
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", left, top))
	canvas.Text(0, 0, selection.Name+", "+core.FormatMHzRange(selection.Range), "fill:#ccc;font-family:sans-serif;font-size:12px")

	barY := px(layout.StripBarY)
	barHeight := px(layout.StripBarHeight)
	for _, bar := range strip.Bars {
		canvas.Rect(px(bar.X.From), barY, max(1, width(bar.X)), barHeight, fmt.Sprintf("fill:%s;fill-opacity:0.85", bar.Color))
		if !bar.Inline {
			canvas.Line(px(bar.Text.X), px(bar.Text.Y)+5, px(bar.Text.X), barY, "stroke:#fff;stroke-opacity:0.5;stroke-width:0.5")
		}
	}
	for _, bar := range strip.Bars {
		style := ""
		if bar.Inline {
			style = "fill:#000"
		}
		writeLabel(canvas, bar.Text, layout.StripFontSize, style)
	}

	tickY := barY + barHeight
	for _, tick := range strip.Ticks {
		canvas.Line(px(tick.X), tickY, px(tick.X), tickY+4, axisStyle)
		canvas.Text(px(tick.X), tickY+14, tick.Label, textStyle+";font-size:10px")
	}

	x := 0
	y := px(strip.Height) + legendRowHeight
	for _, entry := range strip.Legend {
		canvas.Rect(x, y-10, 10, 10, fmt.Sprintf("fill:%s", entry.Color))
		canvas.Text(x+14, y, entry.Mode, "fill:#e6e6e6;font-family:sans-serif;font-size:10px")
		x += 14 + 8*len(entry.Mode) + 16
	}
	canvas.Gend()
}

func writeLabel(canvas *svgo.SVG, label core.Label, fontSize float64, style string) {
	if !label.Visible || label.Text == "" {
		return
	}
	s := fmt.Sprintf("%s;font-size:%.0fpx", textStyle, fontSize)
	if style != "" {
		s += ";" + style
	}
	canvas.Text(px(label.X), px(label.Y), label.Text, s)
}

func stripeID(index int) string {
	return fmt.Sprintf("stripe%d", index)
}

func px(x core.Px) int {
	return int(math.Round(float64(x)))
}

func width(r core.PxRange) int {
	return px(r.To) - px(r.From)
}

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return len(p), nil
	}
	if _, err := w.w.Write(p); err != nil {
		w.err = err
	}
	return len(p), nil
}
