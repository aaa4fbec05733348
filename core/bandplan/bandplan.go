package bandplan

import (
	"strings"

	"github.com/ftl/signalatlas/core"
)

// Record is the common shape of all reference records: a frequency interval with a name.
type Record struct {
	Start       core.Frequency `yaml:"start"`
	End         core.Frequency `yaml:"end"`
	Label       string         `yaml:"label"`
	Name        string         `yaml:"name"`
	Color       core.Color     `yaml:"color"`
	Description string         `yaml:"description"`
}

// Title is the label, or the name if the record has no label.
func (r Record) Title() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// Range of the record.
func (r Record) Range() core.FrequencyRange {
	return core.FrequencyRange{From: r.Start, To: r.End}
}

// Contains indicates if the record contains the given frequency.
func (r Record) Contains(f core.Frequency) bool {
	return f >= r.Start && f <= r.End
}

// Band represents a coarse frequency band, optionally with its band plan.
type Band struct {
	Record   `yaml:",inline"`
	Subbands []Subband `yaml:"subbands"`
}

// Subband is a part of a band plan.
type Subband struct {
	Start core.Frequency `yaml:"start"`
	End   core.Frequency `yaml:"end"`
	Label string         `yaml:"label"`
	Mode  Mode           `yaml:"mode"`
}

// Range of the sub-band.
func (s Subband) Range() core.FrequencyRange {
	return core.FrequencyRange{From: s.Start, To: s.End}
}

// Allocation is a regulatory allocation within one region.
type Allocation struct {
	Record `yaml:",inline"`
	Usage  string `yaml:"usage"`
}

// DetailedBand is a single service or signal.
type DetailedBand struct {
	Record `yaml:",inline"`
}

// Mode describes the use of a sub-band, e.g. "CW" or "SSB/CW".
type Mode string

// Common modes.
const (
	ModeCW           Mode = "CW"
	ModeSSB          Mode = "SSB"
	ModeFM           Mode = "FM"
	ModeDigital      Mode = "Digital"
	ModeATV          Mode = "ATV"
	ModeSatellite    Mode = "Satellite"
	ModeExperimental Mode = "Experimental"
	ModeMixed        Mode = "Mixed"
	ModeBeacon       Mode = "Beacon"
)

// Bandplan holds all reference tables. It is never modified after loading.
type Bandplan struct {
	Bands       []Band
	Detailed    []DetailedBand
	Details     []Band
	Allocations map[core.Region][]Allocation
}

// AllocationsFor the given region.
func (p *Bandplan) AllocationsFor(region core.Region) []Allocation {
	return p.Allocations[region]
}

// ByFrequency returns the narrowest band that contains the given frequency.
func (p *Bandplan) ByFrequency(f core.Frequency) (Band, bool) {
	var result Band
	found := false
	for _, b := range p.Bands {
		if !b.Contains(f) {
			continue
		}
		if !found || b.Range().Width() < result.Range().Width() {
			result = b
			found = true
		}
	}
	return result, found
}

// Resolve the richer band record for the given detailed band, matched by exact label or exact range.
// Without a match, the detailed band itself is returned as a band without sub-bands.
func (p *Bandplan) Resolve(d DetailedBand) Band {
	if b, ok := match(p.Details, d.Record); ok {
		return b
	}
	if b, ok := match(p.Bands, d.Record); ok && len(b.Subbands) > 0 {
		return b
	}
	return Band{Record: d.Record}
}

func match(bands []Band, r Record) (Band, bool) {
	title := r.Title()
	for _, b := range bands {
		if title != "" && b.Title() == title {
			return b, true
		}
	}
	for _, b := range bands {
		if b.Start == r.Start && b.End == r.End {
			return b, true
		}
	}
	return Band{}, false
}

// EntryKind tells which table a search entry refers to.
type EntryKind int

// All entry kinds.
const (
	BandEntry EntryKind = iota
	DetailedEntry
)

// Entry is a search result.
type Entry struct {
	Kind  EntryKind
	Index int
	Title string
	Range core.FrequencyRange
}

// Search returns the bands and detailed bands whose title contains the query, case-insensitive.
// Exact matches come first, then prefix matches, then all others, each in table order.
func (p *Bandplan) Search(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var exact, prefix, other []Entry
	add := func(e Entry) {
		title := strings.ToLower(e.Title)
		switch {
		case title == q:
			exact = append(exact, e)
		case strings.HasPrefix(title, q):
			prefix = append(prefix, e)
		case strings.Contains(title, q):
			other = append(other, e)
		}
	}
	for i, b := range p.Bands {
		add(Entry{Kind: BandEntry, Index: i, Title: b.Title(), Range: b.Range()})
	}
	for i, d := range p.Detailed {
		add(Entry{Kind: DetailedEntry, Index: i, Title: d.Title(), Range: d.Range()})
	}

	result := append(append(exact, prefix...), other...)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Lookup returns the band record for the given entry. Detailed bands are resolved to their richer record.
func (p *Bandplan) Lookup(e Entry) (Band, bool) {
	switch e.Kind {
	case BandEntry:
		if e.Index >= 0 && e.Index < len(p.Bands) {
			return p.Bands[e.Index], true
		}
	case DetailedEntry:
		if e.Index >= 0 && e.Index < len(p.Detailed) {
			return p.Resolve(p.Detailed[e.Index]), true
		}
	}
	return Band{}, false
}
