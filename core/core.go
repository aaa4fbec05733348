package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Frequency represents a frequency in Hz.
type Frequency float64

func (f Frequency) String() string {
	return fmt.Sprintf("%.2fHz", f)
}

// MaxFrequency is the upper end of the visualized spectrum.
const MaxFrequency Frequency = 300e9

// Spectrum is the complete frequency domain of the view.
var Spectrum = FrequencyRange{From: 0, To: MaxFrequency}

// FrequencyRange represents a range of frequencies.
type FrequencyRange struct {
	From, To Frequency
}

func (r FrequencyRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Center frequency of this range.
func (r FrequencyRange) Center() Frequency {
	return r.From + (r.To-r.From)/2
}

// Width of the frequency range.
func (r FrequencyRange) Width() Frequency {
	return r.To - r.From
}

// Contains the given frequency.
func (r FrequencyRange) Contains(f Frequency) bool {
	return f >= r.From && f <= r.To
}

// Overlaps indicates if both ranges share at least one frequency.
func (r FrequencyRange) Overlaps(other FrequencyRange) bool {
	return r.From <= other.To && r.To >= other.From
}

// Expanded returns a new expanded range.
func (r FrequencyRange) Expanded(Δ Frequency) FrequencyRange {
	return FrequencyRange{From: r.From - Δ, To: r.To + Δ}
}

// Px unit for pixels
type Px float64

// PxRange is a horizontal pixel interval.
type PxRange struct {
	From, To Px
}

// Width of the pixel range.
func (r PxRange) Width() Px {
	return r.To - r.From
}

// Center of the pixel range.
func (r PxRange) Center() Px {
	return (r.From + r.To) / 2
}

// Intersects indicates if both ranges share at least one pixel. Touching ranges intersect.
func (r PxRange) Intersects(other PxRange) bool {
	return !(r.To < other.From || r.From > other.To)
}

// Contains the given x position.
func (r PxRange) Contains(x Px) bool {
	return x >= r.From && x <= r.To
}

// Margin around the drawing area.
type Margin struct {
	Top, Right, Bottom, Left Px
}

// Geometry of the logical drawing surface. All layout happens in this coordinate space, views scale it to their device size.
type Geometry struct {
	Width  Px
	Height Px
	Margin Margin
}

// DefaultGeometry is the logical view box of the spectrum view.
var DefaultGeometry = Geometry{
	Width:  1200,
	Height: 300,
	Margin: Margin{Top: 20, Right: 20, Bottom: 40, Left: 20},
}

// Left end of the frequency axis.
func (g Geometry) Left() Px {
	return g.Margin.Left
}

// Right end of the frequency axis.
func (g Geometry) Right() Px {
	return g.Width - g.Margin.Right
}

// InnerWidth is the width of the frequency axis.
func (g Geometry) InnerWidth() Px {
	return g.Right() - g.Left()
}

// Bottom of the plot area.
func (g Geometry) Bottom() Px {
	return g.Height - g.Margin.Bottom
}

// Transform is the zoom/pan state applied on top of the base frequency scale: x' = K*x + X.
type Transform struct {
	K float64
	X float64
}

// Identity transform, shows the whole spectrum.
var Identity = Transform{K: 1, X: 0}

func (t Transform) String() string {
	return fmt.Sprintf("{k=%g x=%g}", t.K, t.X)
}

// Apply the transform to the given base pixel position.
func (t Transform) Apply(x Px) Px {
	return Px(t.K*float64(x) + t.X)
}

// Invert maps a transformed pixel position back to the base pixel position.
func (t Transform) Invert(x Px) Px {
	return Px((float64(x) - t.X) / t.K)
}

// Region selects the active allocation table.
type Region string

// All regions.
const (
	RegionUS   Region = "US"
	RegionEU   Region = "EU"
	RegionAPAC Region = "APAC"
)

// Regions in display order.
var Regions = []Region{RegionUS, RegionEU, RegionAPAC}

// DefaultRegion is used when nothing else is configured.
const DefaultRegion = RegionUS

// ParseRegion parses the given text case-insensitively.
func ParseRegion(s string) (Region, bool) {
	for _, r := range Regions {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// Label to show in selectors.
func (r Region) Label() string {
	switch r {
	case RegionUS:
		return "United States"
	case RegionEU:
		return "Europe"
	case RegionAPAC:
		return "Asia-Pacific"
	default:
		return string(r)
	}
}

// Next region in display order, wraps around.
func (r Region) Next() Region {
	for i, region := range Regions {
		if region == r {
			return Regions[(i+1)%len(Regions)]
		}
	}
	return DefaultRegion
}

// Color in #rgb or #rrggbb notation.
type Color string

// RGB returns the color components in [0,1]. Unparseable colors are gray.
func (c Color) RGB() (r, g, b float64) {
	s := strings.TrimPrefix(strings.TrimSpace(string(c)), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	var ri, gi, bi uint8
	if len(s) != 6 {
		return 0.5, 0.5, 0.5
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0.5, 0.5, 0.5
	}
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255
}

// Or returns c if it is set, otherwise the fallback.
func (c Color) Or(fallback Color) Color {
	if strings.TrimSpace(string(c)) == "" {
		return fallback
	}
	return c
}

// Configuration parameters of the application.
type Configuration struct {
	Region            Region
	ShowAllocations   bool
	ShowBands         bool
	FramesPerSecond   int
	AnimationDuration time.Duration
	DataDir           string
	LogFile           string
	VFOHost           string
}

// DefaultConfiguration is used when no configuration file is available.
var DefaultConfiguration = Configuration{
	Region:            DefaultRegion,
	ShowAllocations:   true,
	ShowBands:         true,
	FramesPerSecond:   60,
	AnimationDuration: 500 * time.Millisecond,
}

// FormatTick formats an axis tick, the unit depends on the visible span.
func FormatTick(f Frequency, visibleSpan Frequency) string {
	switch {
	case visibleSpan < 1e3:
		return fmt.Sprintf("%.0f Hz", float64(f))
	case visibleSpan < 1e6:
		return fmt.Sprintf("%.2f kHz", float64(f)/1e3)
	case visibleSpan < 1e9:
		return fmt.Sprintf("%.2f MHz", float64(f)/1e6)
	default:
		return fmt.Sprintf("%.2f GHz", float64(f)/1e9)
	}
}

// FormatFrequency formats a single frequency, the unit depends on its magnitude.
func FormatFrequency(f Frequency) string {
	abs := math.Abs(float64(f))
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.3f GHz", float64(f)/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.3f MHz", float64(f)/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.3f kHz", float64(f)/1e3)
	default:
		return fmt.Sprintf("%.0f Hz", float64(f))
	}
}

// FormatMHz formats the frequency in MHz with three decimals, without unit.
func FormatMHz(f Frequency) string {
	return fmt.Sprintf("%.3f", float64(f)/1e6)
}

// FormatMHzRange formats the range in MHz with three decimals, e.g. "144.000 – 148.000 MHz".
func FormatMHzRange(r FrequencyRange) string {
	return FormatMHz(r.From) + " – " + FormatMHz(r.To) + " MHz"
}
