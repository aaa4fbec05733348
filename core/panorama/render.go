package panorama

import (
	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/zoom"
)

// Layer constants in logical pixels.
const (
	AxisTickCount = 12

	AllocationY       core.Px = 30
	AllocationHeight  core.Px = 150
	AllocationOpacity         = 0.15

	BandY          core.Px = 50
	BandHeight     core.Px = 100
	BandLabelY     core.Px = 140
	BandLabelWidth core.Px = 40

	MarkerTop    core.Px = 30
	MarkerLabelY core.Px = 20
)

// Default colors of the layers.
const (
	AllocationColor core.Color = "#555"
	BandColor       core.Color = "#888"
	DetailedColor   core.Color = "#ff0"
	MarkerColor     core.Color = "#ff4081"
)

// Data of the current frame. The result depends only on the view state and the reference tables.
func (p *Panorama) Data() core.Panorama {
	scale := p.zoom.Scale()
	result := core.Panorama{
		Geometry:        p.geometry,
		Transform:       p.state.Transform,
		VisibleRange:    scale.VisibleRange(),
		Region:          p.state.Region,
		ShowAllocations: p.state.ShowAllocations,
		ShowBands:       p.state.ShowBands,
		Animating:       p.zoom.Animating(),
	}

	result.FrequencyScale = frequencyScale(scale)
	result.Allocations = p.allocations(scale)
	result.Bands = p.bands(scale)
	result.DetailedBands = p.detailedBands(scale)
	result.Marker = p.marker(scale)
	result.Hover = p.hover(scale, result)
	result.Selection = p.selection()

	return result
}

func frequencyScale(scale zoom.Scale) []core.FrequencyMark {
	visible := scale.VisibleRange()
	ticks := scale.Ticks(AxisTickCount)
	result := make([]core.FrequencyMark, len(ticks))
	for i, f := range ticks {
		result[i] = core.FrequencyMark{
			Frequency: f,
			X:         scale.ToPx(f),
			Label:     core.FormatTick(f, visible.Width()),
		}
	}
	return result
}

func (p *Panorama) allocations(scale zoom.Scale) []core.AllocationMark {
	allocations := p.bandplan.AllocationsFor(p.state.Region)
	items := make([]layout.Item, len(allocations))
	result := make([]core.AllocationMark, len(allocations))
	for i, a := range allocations {
		x := scale.Project(a.Range())
		items[i] = layout.Item{Text: a.Title(), X: x}
		result[i] = core.AllocationMark{
			Name:   a.Title(),
			Usage:  a.Usage,
			Range:  a.Range(),
			Color:  a.Color.Or(AllocationColor),
			X:      x,
			Y:      AllocationY,
			Height: AllocationHeight,
		}
		if p.state.ShowAllocations {
			result[i].Opacity = AllocationOpacity
		}
	}

	options := layout.AllocationLabels
	options.Enabled = p.state.ShowAllocations
	for i, label := range layout.Labels(p.measurer, items, options) {
		result[i].Label = label
	}
	return result
}

func (p *Panorama) bands(scale zoom.Scale) []core.BandMark {
	result := make([]core.BandMark, len(p.bandplan.Bands))
	for i, b := range p.bandplan.Bands {
		x := scale.Project(b.Range())
		mark := core.BandMark{
			Index:  i,
			Name:   b.Title(),
			Range:  b.Range(),
			Color:  b.Color.Or(BandColor),
			X:      x,
			Y:      BandY,
			Height: BandHeight,
			Label: core.Label{
				X: x.Center(),
				Y: BandLabelY,
			},
		}
		if p.state.ShowBands && x.Width() > 1 {
			mark.Opacity = 1
		}
		if p.state.ShowBands && x.Width() >= BandLabelWidth {
			mark.Label.Visible = true
			mark.Label.Text = b.Title()
		}
		result[i] = mark
	}
	return result
}

func (p *Panorama) detailedBands(scale zoom.Scale) []core.DetailedBandMark {
	detailed := p.bandplan.Detailed
	items := make([]layout.Item, len(detailed))
	for i, d := range detailed {
		items[i] = layout.Item{Text: d.Title(), X: scale.Project(d.Range())}
	}

	options := layout.DetailedBandStrips
	options.Enabled = p.state.ShowBands
	placements := layout.Strips(p.measurer, items, options)

	result := make([]core.DetailedBandMark, len(detailed))
	for i, d := range detailed {
		result[i] = core.DetailedBandMark{
			Index:   i,
			Name:    d.Title(),
			Range:   d.Range(),
			Color:   d.Color.Or(DetailedColor),
			X:       items[i].X,
			Lane:    placements[i].Lane,
			Y:       placements[i].Y,
			Height:  options.BarHeight,
			Opacity: placements[i].Opacity,
			Label:   placements[i].Label,
		}
	}
	return result
}

func (p *Panorama) marker(scale zoom.Scale) core.Marker {
	if !p.state.HasMarker {
		return core.Marker{}
	}
	return core.Marker{
		Visible:   true,
		Frequency: p.state.Marker,
		X:         scale.ToPx(p.state.Marker),
		Top:       MarkerTop,
		Bottom:    p.geometry.Bottom(),
		Label:     core.FormatFrequency(p.state.Marker),
		LabelY:    MarkerLabelY,
		Color:     MarkerColor,
	}
}

func (p *Panorama) hover(scale zoom.Scale, frame core.Panorama) core.Hover {
	if !p.pointer.visible || p.pointer.x < p.geometry.Left() || p.pointer.x > p.geometry.Right() {
		return core.Hover{}
	}
	return core.Hover{
		Visible:   true,
		Frequency: scale.ToHz(p.pointer.x),
		X:         p.pointer.x,
		Tooltip:   tooltip(frame, p.pointer.x, p.pointer.y),
	}
}

func (p *Panorama) selection() *core.Selection {
	if !p.state.HasSelection {
		return nil
	}
	band := p.state.Selected
	result := &core.Selection{
		Name:        band.Title(),
		Description: band.Description,
		Range:       band.Range(),
	}

	subbands := make([]layout.StripSubband, len(band.Subbands))
	result.Subbands = make([]core.SubbandRow, len(band.Subbands))
	for i, sb := range band.Subbands {
		subbands[i] = layout.StripSubband{Range: sb.Range(), Label: sb.Label, Mode: string(sb.Mode)}
		result.Subbands[i] = core.SubbandRow{
			Range: sb.Range(),
			Label: sb.Label,
			Mode:  string(sb.Mode),
			Color: layout.ModeColor(string(sb.Mode)),
		}
	}
	if len(subbands) > 0 {
		result.Strip = layout.LayoutStrip(p.measurer, band.Range(), subbands, p.stripWidth)
	}
	return result
}
