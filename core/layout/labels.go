package layout

import "github.com/ftl/signalatlas/core"

// Item is a labeled interval, projected into pixel space.
type Item struct {
	Text string
	X    core.PxRange
}

// LabelOptions control the center-spacing label layout.
type LabelOptions struct {
	Enabled    bool
	MinWidth   core.Px
	HideBelow  core.Px
	MinSpacing core.Px
	BaseY      core.Px
	LineHeight core.Px
	FontSize   float64
}

// AllocationLabels are the options used for allocation labels.
var AllocationLabels = LabelOptions{
	MinWidth:   30,
	HideBelow:  10,
	MinSpacing: 50,
	BaseY:      190,
	LineHeight: 14,
	FontSize:   10,
}

// Labels lays out the labels of the given items in one left-to-right pass in the given order.
// Hidden items do not consume a lane.
func Labels(m Measurer, items []Item, options LabelOptions) []core.Label {
	lanes := NewSpacingLanes(options.MinSpacing)
	result := make([]core.Label, len(items))
	for i, item := range items {
		center := item.X.Center()
		width := item.X.Width()
		label := core.Label{X: center, Y: options.BaseY}

		if !options.Enabled || width < options.MinWidth {
			result[i] = label
			continue
		}

		label.Lane = lanes.Assign(center)
		label.Y = options.BaseY + core.Px(label.Lane)*options.LineHeight
		label.Visible = width >= options.HideBelow
		if label.Visible {
			label.Text = Truncate(m, item.Text, options.FontSize, width)
		}
		result[i] = label
	}
	return result
}

// StripOptions control the layout of detailed band strips.
type StripOptions struct {
	Enabled     bool
	BaseY       core.Px
	RowHeight   core.Px
	BarHeight   core.Px
	LabelOffset core.Px
	FontSize    float64
}

// DetailedBandStrips are the options used for detailed bands.
var DetailedBandStrips = StripOptions{
	BaseY:       55,
	RowHeight:   10,
	BarHeight:   8,
	LabelOffset: 5,
	FontSize:    9,
}

// Placement of one detailed band.
type Placement struct {
	Lane    int
	Y       core.Px
	Opacity float64
	Label   core.Label
}

// Strips assigns interval-overlap lanes to the given items, so that no two bars within one lane overlap.
// The label of each item is placed inside its bar and truncated to the bar width.
func Strips(m Measurer, items []Item, options StripOptions) []Placement {
	lanes := NewIntervalLanes()
	result := make([]Placement, len(items))
	for i, item := range items {
		lane := lanes.Assign(item.X)
		y := options.BaseY + core.Px(lane)*options.RowHeight
		width := item.X.Width()
		visible := options.Enabled && width >= 1

		p := Placement{
			Lane: lane,
			Y:    y,
			Label: core.Label{
				X:       item.X.Center(),
				Y:       y + options.LabelOffset,
				Lane:    lane,
				Visible: visible,
			},
		}
		if visible {
			p.Opacity = 0.8
			p.Label.Text = Truncate(m, item.Text, options.FontSize, width)
		}
		result[i] = p
	}
	return result
}
