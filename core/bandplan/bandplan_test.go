package bandplan

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/signalatlas/core"
)

func TestLoadEmbedded(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, p.Bands)
	assert.NotEmpty(t, p.Detailed)
	assert.NotEmpty(t, p.Details)
	for _, region := range core.Regions {
		assert.NotEmpty(t, p.AllocationsFor(region), "%s", region)
	}
	assert.NotEqual(t, p.AllocationsFor(core.RegionUS), p.AllocationsFor(core.RegionEU))
	assert.Equal(t, "ELF", p.Bands[0].Title())
}

func TestByFrequency(t *testing.T) {
	p := MustLoad()

	band, ok := p.ByFrequency(145e6)
	require.True(t, ok)
	assert.Equal(t, "2m Amateur Band", band.Title())

	band, ok = p.ByFrequency(100e6)
	require.True(t, ok)
	assert.Equal(t, "VHF", band.Title())

	_, ok = p.ByFrequency(1)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	p := MustLoad()
	detailed := func(title string) DetailedBand {
		for _, d := range p.Detailed {
			if d.Title() == title {
				return d
			}
		}
		t.Fatalf("no detailed band %q", title)
		return DetailedBand{}
	}

	cb := p.Resolve(detailed("CB Radio"))
	assert.NotEmpty(t, cb.Subbands)
	assert.NotEmpty(t, cb.Description)

	twoMeters := p.Resolve(detailed("2m Amateur"))
	assert.Equal(t, "2m Amateur Band", twoMeters.Title())
	assert.NotEmpty(t, twoMeters.Subbands)

	hydrogen := p.Resolve(detailed("Hydrogen Line"))
	assert.Equal(t, "Hydrogen Line", hydrogen.Title())
	assert.Empty(t, hydrogen.Subbands)
}

func TestResolve_ByRange(t *testing.T) {
	p := &Bandplan{
		Details: []Band{{
			Record:   Record{Start: 10, End: 20, Label: "Rich"},
			Subbands: []Subband{{Start: 10, End: 15, Label: "lower"}},
		}},
	}

	resolved := p.Resolve(DetailedBand{Record: Record{Start: 10, End: 20, Label: "Light"}})
	assert.Equal(t, "Rich", resolved.Title())

	resolved = p.Resolve(DetailedBand{Record: Record{Start: 10, End: 21, Label: "Other"}})
	assert.Equal(t, "Other", resolved.Title())
}

func TestSearch(t *testing.T) {
	p := MustLoad()

	entries := p.Search("noaa", 8)
	require.Len(t, entries, 2)
	assert.Equal(t, "NOAA Weather Satellites", entries[0].Title)
	assert.Equal(t, "NOAA Weather Radio", entries[1].Title)
	assert.Equal(t, DetailedEntry, entries[0].Kind)

	entries = p.Search("vhf", 8)
	require.NotEmpty(t, entries)
	assert.Equal(t, "VHF", entries[0].Title)
	assert.Equal(t, BandEntry, entries[0].Kind)

	entries = p.Search("amateur", 3)
	assert.Len(t, entries, 3)

	assert.Empty(t, p.Search("  ", 8))
	assert.Empty(t, p.Search("banana", 8))
}

func TestLookup(t *testing.T) {
	p := MustLoad()
	entries := p.Search("CB Radio", 1)
	require.Len(t, entries, 1)

	band, ok := p.Lookup(entries[0])

	assert.True(t, ok)
	assert.NotEmpty(t, band.Subbands)

	_, ok = p.Lookup(Entry{Kind: BandEntry, Index: 1000})
	assert.False(t, ok)
}

func validFS() fstest.MapFS {
	result := fstest.MapFS{
		"bands.yaml":    {Data: []byte("bands:\n  - {name: Band, start: 10, end: 20}\n")},
		"detailed.yaml": {Data: []byte("detailed:\n  - {label: Detail, start: 12, end: 14}\n")},
		"subbands.yaml": {Data: []byte("details: []\n")},
	}
	for _, region := range core.Regions {
		result[allocationsFile(region)] = &fstest.MapFile{Data: []byte("allocations:\n  - {label: Alloc, start: 1, end: 2}\n")}
	}
	return result
}

func TestLoadFS(t *testing.T) {
	p, err := LoadFS(validFS())
	require.NoError(t, err)
	assert.Len(t, p.Bands, 1)
	assert.Equal(t, core.Color(""), p.Bands[0].Color)
	assert.Len(t, p.AllocationsFor(core.RegionAPAC), 1)
}

func TestLoadFS_Invalid(t *testing.T) {
	tt := map[string]struct {
		file string
		data string
	}{
		"missing label":      {"detailed.yaml", "detailed:\n  - {start: 12, end: 14}\n"},
		"negative start":     {"detailed.yaml", "detailed:\n  - {label: x, start: -1, end: 14}\n"},
		"empty interval":     {"bands.yaml", "bands:\n  - {name: x, start: 14, end: 14}\n"},
		"beyond spectrum":    {"bands.yaml", "bands:\n  - {name: x, start: 14, end: 400000000000}\n"},
		"subband outside":    {"bands.yaml", "bands:\n  - name: x\n    start: 10\n    end: 20\n    subbands:\n      - {start: 15, end: 25, label: y}\n"},
		"unknown field":      {"detailed.yaml", "detailed:\n  - {label: x, start: 1, end: 2, frequency: 3}\n"},
		"wrong region":       {"allocations-eu.yaml", "region: US\nallocations: []\n"},
		"malformed yaml":     {"subbands.yaml", "details: [\n"},
		"allocation invalid": {"allocations-us.yaml", "allocations:\n  - {label: x, start: 5, end: 1}\n"},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			fsys := validFS()
			fsys[tc.file] = &fstest.MapFile{Data: []byte(tc.data)}

			_, err := LoadFS(fsys)

			assert.Error(t, err)
		})
	}
}

func TestLoadFS_MissingTable(t *testing.T) {
	fsys := validFS()
	delete(fsys, "bands.yaml")

	_, err := LoadFS(fsys)

	assert.Error(t, err)
}

func TestLoad_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "bands.yaml"), []byte("bands:\n  - {name: Custom, start: 1000, end: 2000}\n"), 0644)
	require.NoError(t, err)

	p, err := Load(dir)

	require.NoError(t, err)
	require.Len(t, p.Bands, 1)
	assert.Equal(t, "Custom", p.Bands[0].Title())
	assert.NotEmpty(t, p.Detailed)
}
