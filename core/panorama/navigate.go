package panorama

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
)

// SearchBandwidth is the window shown around a frequency entered as search text.
const SearchBandwidth core.Frequency = 100e3

// Bandwidth returns the window shown around the given frequency, by magnitude.
func Bandwidth(f core.Frequency) core.Frequency {
	switch {
	case f < 1e6:
		return 20e3
	case f < 30e6:
		return 1e6
	case f < 300e6:
		return 10e6
	case f < 1e9:
		return 150e6
	case f < 5e9:
		return 500e6
	default:
		return 10e9
	}
}

// FrequencyTransform returns the transform that centers the given frequency with the given bandwidth filling the view.
func (p *Panorama) FrequencyTransform(f, bandwidth core.Frequency) core.Transform {
	base := p.zoom.Base()
	x0 := base.Base(f - bandwidth/2)
	x1 := base.Base(f + bandwidth/2)
	k := float64(p.geometry.Width) / float64(x1-x0)
	return core.Transform{
		K: k,
		X: -float64(base.Base(f))*k + float64(p.geometry.Width)/2,
	}
}

// BandTransform returns the transform that fits the given range exactly onto the frequency axis.
func (p *Panorama) BandTransform(r core.FrequencyRange) core.Transform {
	base := p.zoom.Base()
	x0 := base.Base(r.From)
	x1 := base.Base(r.To)
	k := float64(p.geometry.InnerWidth()) / float64(x1-x0)
	return core.Transform{
		K: k,
		X: float64(p.geometry.Left()) - float64(x0)*k,
	}
}

// ZoomToFrequency animates to a window around the given frequency and puts the marker on it.
func (p *Panorama) ZoomToFrequency(f core.Frequency) {
	p.zoomToFrequency(f, Bandwidth(f))
}

func (p *Panorama) zoomToFrequency(f, bandwidth core.Frequency) {
	log.Printf("zoom to %v", f)
	p.state = p.state.WithMarker(f)
	p.zoom.AnimateTo(p.FrequencyTransform(f, bandwidth), p.duration, p.now())
}

// ZoomToBand animates to the given range, filling the frequency axis. The marker is not changed.
func (p *Panorama) ZoomToBand(r core.FrequencyRange) {
	if !(r.Width() > 0) {
		return
	}
	log.Printf("zoom to band %v", r)
	p.zoom.AnimateTo(p.BandTransform(r), p.duration, p.now())
}

// ResetZoom animates back to the complete spectrum and hides the marker.
func (p *Panorama) ResetZoom() {
	p.state = p.state.WithoutMarker()
	p.zoom.AnimateTo(core.Identity, p.duration, p.now())
}

// GoToFrequency parses the given text as frequency and zooms to it. Text that does not start with a number is ignored.
// It returns true if the text was a frequency.
func (p *Panorama) GoToFrequency(text string) bool {
	f, ok := ParseFrequency(text)
	if !ok {
		return false
	}
	p.zoomToFrequency(f, SearchBandwidth)
	return true
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseFrequency reads the leading number of the given text. A ghz, mhz or khz anywhere in the text scales the number
// accordingly, otherwise it is taken as Hz.
func ParseFrequency(text string) (core.Frequency, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	number := numberPrefix.FindString(s)
	if number == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.Contains(s, "ghz"):
		value *= 1e9
	case strings.Contains(s, "mhz"):
		value *= 1e6
	case strings.Contains(s, "khz"):
		value *= 1e3
	}
	return core.Frequency(value), true
}

// Suggestions for the given search text.
func (p *Panorama) Suggestions(text string) []bandplan.Entry {
	return p.bandplan.Search(text, SuggestionLimit)
}

// SelectEntry zooms to the band of the given search entry and shows its details.
func (p *Panorama) SelectEntry(entry bandplan.Entry) {
	band, ok := p.bandplan.Lookup(entry)
	if !ok {
		return
	}
	p.ZoomToBand(entry.Range)
	p.Select(band)
}

// Search navigates to the result of the given search text. A band whose name equals or starts with the text wins over
// a frequency, so "2m" finds the 2m band. Unknown text is ignored. It returns true if the view changed.
func (p *Panorama) Search(text string) bool {
	entries := p.Suggestions(text)
	if len(entries) > 0 && strings.HasPrefix(strings.ToLower(entries[0].Title), strings.ToLower(strings.TrimSpace(text))) {
		p.SelectEntry(entries[0])
		return true
	}
	if p.GoToFrequency(text) {
		return true
	}
	if len(entries) > 0 {
		p.SelectEntry(entries[0])
		return true
	}
	return false
}

// ZoomToQuickBand zooms to the quick navigation band with the given index.
func (p *Panorama) ZoomToQuickBand(index int) {
	bands := p.QuickBands()
	if index < 0 || index >= len(bands) {
		return
	}
	p.ZoomToBand(bands[index].Range())
}

// Follow moves the marker to the given frequency. If the frequency is not visible, the view zooms to it.
func (p *Panorama) Follow(f core.Frequency) {
	if p.zoom.Scale().Rescale(p.zoom.Target()).VisibleRange().Contains(f) {
		p.SetMarker(f)
		return
	}
	p.ZoomToFrequency(f)
}
