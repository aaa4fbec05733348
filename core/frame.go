package core

// Panorama is one frame of the spectrum view. It contains everything a view needs to draw, in logical pixels of the Geometry.
type Panorama struct {
	Geometry     Geometry
	Transform    Transform
	VisibleRange FrequencyRange
	Region       Region

	ShowAllocations bool
	ShowBands       bool
	Animating       bool

	FrequencyScale []FrequencyMark
	Allocations    []AllocationMark
	Bands          []BandMark
	DetailedBands  []DetailedBandMark
	Marker         Marker
	Hover          Hover
	Selection      *Selection
}

// FrequencyMark on the frequency scale
type FrequencyMark struct {
	Frequency Frequency
	X         Px
	Label     string
}

// Label placed by the label layout.
type Label struct {
	Text    string
	X, Y    Px
	Lane    int
	Visible bool
}

// AllocationMark is a regulatory allocation projected into the current view.
type AllocationMark struct {
	Name    string
	Usage   string
	Range   FrequencyRange
	Color   Color
	X       PxRange
	Y       Px
	Height  Px
	Opacity float64
	Label   Label
}

// BandMark is a frequency band projected into the current view.
type BandMark struct {
	Index   int
	Name    string
	Range   FrequencyRange
	Color   Color
	X       PxRange
	Y       Px
	Height  Px
	Opacity float64
	Label   Label
}

// DetailedBandMark is a detailed band strip projected into the current view.
type DetailedBandMark struct {
	Index   int
	Name    string
	Range   FrequencyRange
	Color   Color
	X       PxRange
	Lane    int
	Y       Px
	Height  Px
	Opacity float64
	Label   Label
}

// Marker is the highlighted frequency.
type Marker struct {
	Visible   bool
	Frequency Frequency
	X         Px
	Top       Px
	Bottom    Px
	Label     string
	LabelY    Px
	Color     Color
}

// Hover is the frequency readout under the pointer.
type Hover struct {
	Visible   bool
	Frequency Frequency
	X         Px
	Tooltip   string
}

// Selection is the detail view of the selected band.
type Selection struct {
	Name        string
	Description string
	Range       FrequencyRange
	Subbands    []SubbandRow
	Strip       Strip
}

// SubbandRow is one line of the sub-band table.
type SubbandRow struct {
	Range FrequencyRange
	Label string
	Mode  string
	Color Color
}

// Strip is the laid out sub-band strip of the selected band.
type Strip struct {
	Width  Px
	Height Px
	Bars   []SubbandBar
	Ticks  []FrequencyMark
	Legend []LegendEntry
}

// SubbandBar is one sub-band in the strip. Inline labels are drawn inside the bar, all others above it with a leader line.
type SubbandBar struct {
	Label  string
	Mode   string
	Range  FrequencyRange
	X      PxRange
	Color  Color
	Inline bool
	Text   Label
}

// LegendEntry maps a mode to its color.
type LegendEntry struct {
	Mode  string
	Color Color
}

// Chrome is the state of the controls around the spectrum view.
type Chrome struct {
	Region          Region
	ShowAllocations bool
	ShowBands       bool

	Query              string
	Suggestions        []Suggestion
	SuggestionsVisible bool

	InstructionsVisible bool
	QuickBands          []QuickBand
	RigConnected        bool
}

// Suggestion is a search result offered below the search entry.
type Suggestion struct {
	Title string
	Range FrequencyRange
}

// QuickBand is a band offered for quick navigation.
type QuickBand struct {
	Name  string
	Range FrequencyRange
}
