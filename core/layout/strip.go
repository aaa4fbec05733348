package layout

import (
	"regexp"
	"strings"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/zoom"
)

// Colors of the known operating modes.
var ModeColors = map[string]core.Color{
	"cw":           "#888888",
	"ssb":          "#ebcb8b",
	"fm":           "#a3be8c",
	"digital":      "#bf616a",
	"atv":          "#b48ead",
	"satellite":    "#5e81ac",
	"experimental": "#d08770",
	"mixed":        "#88c0d0",
}

// Fallback colors for sub-bands.
const (
	UnknownModeColor core.Color = "#999"
	NoModeColor      core.Color = "#555"
)

var modeSeparator = regexp.MustCompile(`[\s/]+`)

// ModeColor returns the color of the given mode. Composite modes like "SSB/CW" use the color of their first known part.
func ModeColor(mode string) core.Color {
	cleaned := strings.ToLower(strings.TrimSpace(mode))
	if cleaned == "" {
		return NoModeColor
	}
	if color, ok := ModeColors[cleaned]; ok {
		return color
	}
	for _, part := range modeSeparator.Split(cleaned, -1) {
		if color, ok := ModeColors[part]; ok {
			return color
		}
	}
	return UnknownModeColor
}

// StripSubband is the input of the strip layout.
type StripSubband struct {
	Range core.FrequencyRange
	Label string
	Mode  string
}

// Strip layout constants.
const (
	StripHeight        core.Px = 60
	StripBarY          core.Px = 20
	StripBarHeight     core.Px = 20
	StripInlineWidth   core.Px = 40
	StripInlineY       core.Px = 30
	StripExternalY     core.Px = 10
	StripLaneHeight    core.Px = 12
	StripLabelDistance core.Px = 50
	StripFontSize              = 10.0
	StripTickCount             = 5
	stripMaxLabel              = 20
	stripCutLabel              = 17
)

// LayoutStrip lays out the sub-bands of the given band range on a strip of the given width.
// Wide bars carry their label inside, all others get an external label in a lane above the strip.
func LayoutStrip(m Measurer, band core.FrequencyRange, subbands []StripSubband, width core.Px) core.Strip {
	domain := core.FrequencyRange{From: band.From, To: band.To}
	if domain.From < 0 {
		domain.From = 0
	}
	result := core.Strip{Width: width, Height: StripHeight}
	if !(domain.Width() > 0) || width <= 0 {
		return result
	}
	toX := func(f core.Frequency) core.Px {
		return core.Px(float64(f-domain.From) / float64(domain.Width()) * float64(width))
	}

	lanes := NewDistanceLanes(StripLabelDistance)
	result.Bars = make([]core.SubbandBar, 0, len(subbands))
	for _, sb := range subbands {
		x := core.PxRange{From: toX(sb.Range.From), To: toX(sb.Range.To)}
		text := shortLabel(sb.Label)
		bar := core.SubbandBar{
			Label: sb.Label,
			Mode:  sb.Mode,
			Range: sb.Range,
			X:     x,
			Color: ModeColor(sb.Mode),
		}

		if x.Width() >= StripInlineWidth {
			bar.Inline = true
			bar.Text = core.Label{
				Text:    Truncate(m, text, StripFontSize, x.Width()),
				X:       x.Center(),
				Y:       StripInlineY,
				Visible: true,
			}
		} else {
			lane := lanes.Assign(x.Center())
			bar.Text = core.Label{
				Text:    text,
				X:       x.Center(),
				Y:       StripExternalY - core.Px(lane)*StripLaneHeight,
				Lane:    lane,
				Visible: true,
			}
		}
		result.Bars = append(result.Bars, bar)
	}

	for _, f := range zoom.Ticks(domain, StripTickCount) {
		result.Ticks = append(result.Ticks, core.FrequencyMark{
			Frequency: f,
			X:         toX(f),
			Label:     core.FormatMHz(f) + " MHz",
		})
	}

	result.Legend = Legend(subbands)
	return result
}

// Legend lists each mode of the given sub-bands once, in order of appearance. Composite modes are split into their parts.
func Legend(subbands []StripSubband) []core.LegendEntry {
	seen := make(map[string]bool)
	var result []core.LegendEntry
	for _, sb := range subbands {
		cleaned := strings.ToLower(strings.TrimSpace(sb.Mode))
		if cleaned == "" {
			continue
		}
		for _, part := range modeSeparator.Split(cleaned, -1) {
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			result = append(result, core.LegendEntry{
				Mode:  strings.ToUpper(part),
				Color: ModeColor(part),
			})
		}
	}
	return result
}

func shortLabel(label string) string {
	runes := []rune(label)
	if len(runes) > stripMaxLabel {
		return string(runes[:stripCutLabel]) + Ellipsis
	}
	return label
}
