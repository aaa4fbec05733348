package bandplan

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ftl/signalatlas/core"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	bandsFile    = "bands.yaml"
	detailedFile = "detailed.yaml"
	detailsFile  = "subbands.yaml"
)

func allocationsFile(region core.Region) string {
	return "allocations-" + strings.ToLower(string(region)) + ".yaml"
}

type bandsTable struct {
	Bands []Band `yaml:"bands"`
}

type detailedTable struct {
	Detailed []DetailedBand `yaml:"detailed"`
}

type detailsTable struct {
	Details []Band `yaml:"details"`
}

type allocationsTable struct {
	Region      core.Region  `yaml:"region"`
	Allocations []Allocation `yaml:"allocations"`
}

// Load the reference tables. Files found in dir replace the embedded tables of the same name; an empty dir uses only
// the embedded tables.
func Load(dir string) (*Bandplan, error) {
	var dataFS fs.FS
	embeddedFS, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "cannot open embedded reference data")
	}
	dataFS = embeddedFS
	if dir != "" {
		dataFS = overlay{dir: os.DirFS(dir), fallback: embeddedFS}
	}
	return LoadFS(dataFS)
}

// LoadFS loads the reference tables from the given file system.
func LoadFS(fsys fs.FS) (*Bandplan, error) {
	result := &Bandplan{
		Allocations: make(map[core.Region][]Allocation),
	}

	var bands bandsTable
	if err := readTable(fsys, bandsFile, &bands); err != nil {
		return nil, err
	}
	for i, b := range bands.Bands {
		if err := validateBand(bandsFile, i, b); err != nil {
			return nil, err
		}
	}
	result.Bands = bands.Bands

	var detailed detailedTable
	if err := readTable(fsys, detailedFile, &detailed); err != nil {
		return nil, err
	}
	for i, d := range detailed.Detailed {
		if err := validate(detailedFile, i, d.Record); err != nil {
			return nil, err
		}
	}
	result.Detailed = detailed.Detailed

	var details detailsTable
	if err := readTable(fsys, detailsFile, &details); err != nil {
		return nil, err
	}
	for i, b := range details.Details {
		if err := validateBand(detailsFile, i, b); err != nil {
			return nil, err
		}
	}
	result.Details = details.Details

	for _, region := range core.Regions {
		filename := allocationsFile(region)
		var allocations allocationsTable
		if err := readTable(fsys, filename, &allocations); err != nil {
			return nil, err
		}
		if allocations.Region != "" && allocations.Region != region {
			return nil, errors.Errorf("%s: contains allocations of region %s", filename, allocations.Region)
		}
		for i, a := range allocations.Allocations {
			if err := validate(filename, i, a.Record); err != nil {
				return nil, err
			}
		}
		result.Allocations[region] = allocations.Allocations
	}

	return result, nil
}

// MustLoad loads the embedded reference tables and panics on error.
func MustLoad() *Bandplan {
	result, err := Load("")
	if err != nil {
		panic(err)
	}
	return result
}

func readTable(fsys fs.FS, filename string, table interface{}) error {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return errors.Wrapf(err, "cannot read %s", filename)
	}
	err = yaml.UnmarshalStrict(data, table)
	if err != nil {
		return errors.Wrapf(err, "cannot parse %s", filename)
	}
	return nil
}

func validate(filename string, index int, r Record) error {
	switch {
	case r.Start < 0:
		return errors.Errorf("%s[%d]: negative start %v", filename, index, r.Start)
	case r.End <= r.Start:
		return errors.Errorf("%s[%d]: end %v not above start %v", filename, index, r.End, r.Start)
	case r.End > core.MaxFrequency:
		return errors.Errorf("%s[%d]: end %v beyond %v", filename, index, r.End, core.MaxFrequency)
	case r.Title() == "":
		return errors.Errorf("%s[%d]: no label", filename, index)
	}
	return nil
}

func validateBand(filename string, index int, b Band) error {
	if err := validate(filename, index, b.Record); err != nil {
		return err
	}
	for j, s := range b.Subbands {
		if s.End <= s.Start {
			return errors.Errorf("%s[%d].subbands[%d]: end %v not above start %v", filename, index, j, s.End, s.Start)
		}
		if s.Start < b.Start || s.End > b.End {
			return errors.Errorf("%s[%d].subbands[%d]: %v outside of %v", filename, index, j, s.Range(), b.Range())
		}
	}
	return nil
}

// overlay reads from dir and falls back to the embedded tables.
type overlay struct {
	dir      fs.FS
	fallback fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	f, err := o.dir.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.fallback.Open(path.Clean(name))
}
