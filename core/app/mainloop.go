package app

import (
	"log"
	"time"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/panorama"
)

// DismissDelay is the delay before transient controls close after an interaction outside of them.
const DismissDelay = 150 * time.Millisecond

func newMainLoop(panorama panoramaType, vfo vfoType, framesPerSecond int) *mainLoop {
	if framesPerSecond <= 0 {
		framesPerSecond = core.DefaultConfiguration.FramesPerSecond
	}
	frameInterval := (1 * time.Second) / time.Duration(framesPerSecond)
	result := &mainLoop{
		panorama: panorama,
		vfo:      vfo,

		frameInterval: frameInterval,
		frameTick:     time.NewTicker(frameInterval),
		dirty:         true,
		command:       make(chan command, 64),
		now:           time.Now,

		panoramaData: make(chan core.Panorama, 1),
		chromeData:   make(chan core.Chrome, 1),
	}
	if vfo != nil {
		result.vfoData = vfo.Data()
	}
	result.instructions = &debouncer{delay: DismissDelay, q: result.q}
	result.suggestions = &debouncer{delay: DismissDelay, q: result.q}

	state := panorama.State()
	result.chrome = core.Chrome{
		Region:              state.Region,
		ShowAllocations:     state.ShowAllocations,
		ShowBands:           state.ShowBands,
		InstructionsVisible: true,
		QuickBands:          quickBands(panorama.QuickBands()),
		RigConnected:        vfo != nil,
	}
	result.publishChrome()

	return result
}

type command func()

type mainLoop struct {
	panorama panoramaType
	vfo      vfoType
	vfoData  <-chan core.Frequency

	frameInterval time.Duration
	frameTick     *time.Ticker
	dirty         bool
	command       chan command
	now           func() time.Time

	chrome       core.Chrome
	entries      []bandplan.Entry
	instructions *debouncer
	suggestions  *debouncer

	panoramaData chan core.Panorama
	chromeData   chan core.Chrome
}

type vfoType interface {
	Data() <-chan core.Frequency
	SetFrequency(f core.Frequency)
}

type panoramaType interface {
	State() panorama.ViewState
	Data() core.Panorama
	Tick(time.Time) bool
	Marker() (core.Frequency, bool)
	QuickBands() []bandplan.Band

	SetRegion(core.Region)
	SetShowAllocations(bool)
	SetShowBands(bool)
	SetStripWidth(core.Px)
	SetPointer(x, y core.Px)
	ClearPointer()

	ZoomIn(anchor core.Px)
	ZoomOut(anchor core.Px)
	PanBy(Δx core.Px)
	ResetZoom()
	ZoomToQuickBand(int)
	Search(string) bool
	Suggestions(string) []bandplan.Entry
	SelectEntry(bandplan.Entry)
	Click(x, y core.Px) bool
	ClearSelection()
	DismissMarker()
	Follow(core.Frequency)
}

// Run the main loop until stop is closed. All panorama operations are executed on this goroutine.
func (m *mainLoop) Run(stop chan struct{}) {
	defer log.Print("main loop shutdown")
	for {
		select {
		case <-m.frameTick.C:
			if m.panorama.Tick(m.now()) {
				m.dirty = true
			}
			if !m.dirty {
				continue
			}
			select {
			case m.panoramaData <- m.panorama.Data():
				m.dirty = false
			default:
				log.Print("trigger redraw hangs")
			}
		case f := <-m.vfoData:
			m.panorama.Follow(f)
			m.dirty = true
		case command := <-m.command:
			command()
		case <-stop:
			m.frameTick.Stop()
			return
		}
	}
}

// Panorama data for drawing
func (m *mainLoop) Panorama() <-chan core.Panorama {
	return m.panoramaData
}

// Chrome data for the controls
func (m *mainLoop) Chrome() <-chan core.Chrome {
	return m.chromeData
}

func (m *mainLoop) q(cmd command) {
	select {
	case m.command <- cmd:
	default:
		log.Print("Mainloop.q hangs")
	}
}

// update executes the given panorama operation on the main loop and marks the frame as outdated.
func (m *mainLoop) update(op func()) {
	m.q(func() {
		op()
		m.dirty = true
	})
}

func (m *mainLoop) publishChrome() {
	select {
	case <-m.chromeData:
	default:
	}
	m.chromeData <- m.chrome
}

func (m *mainLoop) syncChrome() {
	state := m.panorama.State()
	m.chrome.Region = state.Region
	m.chrome.ShowAllocations = state.ShowAllocations
	m.chrome.ShowBands = state.ShowBands
	m.publishChrome()
}

// SetRegion selects the allocation table.
func (m *mainLoop) SetRegion(region core.Region) {
	m.update(func() {
		m.panorama.SetRegion(region)
		m.syncChrome()
	})
}

// NextRegion cycles through the regions.
func (m *mainLoop) NextRegion() {
	m.update(func() {
		m.panorama.SetRegion(m.panorama.State().Region.Next())
		m.syncChrome()
	})
}

// SetShowAllocations shows or hides the allocation layer.
func (m *mainLoop) SetShowAllocations(show bool) {
	m.update(func() {
		m.panorama.SetShowAllocations(show)
		m.syncChrome()
	})
}

// ToggleAllocations switches the allocation layer.
func (m *mainLoop) ToggleAllocations() {
	m.update(func() {
		m.panorama.SetShowAllocations(!m.panorama.State().ShowAllocations)
		m.syncChrome()
	})
}

// SetShowBands shows or hides the band layers.
func (m *mainLoop) SetShowBands(show bool) {
	m.update(func() {
		m.panorama.SetShowBands(show)
		m.syncChrome()
	})
}

// ToggleBands switches the band layers.
func (m *mainLoop) ToggleBands() {
	m.update(func() {
		m.panorama.SetShowBands(!m.panorama.State().ShowBands)
		m.syncChrome()
	})
}

// SetStripWidth sets the width of the sub-band strip in the detail view.
func (m *mainLoop) SetStripWidth(width core.Px) {
	m.update(func() {
		m.panorama.SetStripWidth(width)
	})
}

// Hover moves the pointer readout to the given logical position.
func (m *mainLoop) Hover(x, y core.Px) {
	m.update(func() {
		m.panorama.SetPointer(x, y)
	})
}

// Leave hides the pointer readout.
func (m *mainLoop) Leave() {
	m.update(func() {
		m.panorama.ClearPointer()
	})
}

// ZoomIn on the panorama around the given position.
func (m *mainLoop) ZoomIn(anchor core.Px) {
	m.update(func() {
		m.panorama.ZoomIn(anchor)
	})
}

// ZoomOut of the panorama around the given position.
func (m *mainLoop) ZoomOut(anchor core.Px) {
	m.update(func() {
		m.panorama.ZoomOut(anchor)
	})
}

// PanBy moves the panorama by the given distance.
func (m *mainLoop) PanBy(Δx core.Px) {
	m.update(func() {
		m.panorama.PanBy(Δx)
	})
}

// ResetZoom of the panorama.
func (m *mainLoop) ResetZoom() {
	m.update(func() {
		m.panorama.ResetZoom()
	})
}

// ZoomToQuickBand zooms to the quick navigation band with the given index.
func (m *mainLoop) ZoomToQuickBand(index int) {
	m.update(func() {
		m.panorama.ZoomToQuickBand(index)
	})
}

// Click at the given logical position of the panorama.
func (m *mainLoop) Click(x, y core.Px) {
	m.update(func() {
		m.panorama.Click(x, y)
		m.dismissLater(true, true)
	})
}

// CloseSelection closes the detail view.
func (m *mainLoop) CloseSelection() {
	m.update(func() {
		m.panorama.ClearSelection()
	})
}

// DismissMarker hides the marker.
func (m *mainLoop) DismissMarker() {
	m.update(func() {
		m.panorama.DismissMarker()
	})
}

// SetQuery updates the search text and the suggestions.
func (m *mainLoop) SetQuery(text string) {
	m.q(func() {
		m.suggestions.Cancel()
		m.chrome.Query = text
		m.entries = m.panorama.Suggestions(text)
		m.chrome.Suggestions = suggestions(m.entries)
		m.chrome.SuggestionsVisible = len(m.entries) > 0
		m.dismissLater(true, false)
		m.publishChrome()
	})
}

// Search navigates to the result of the given search text.
func (m *mainLoop) Search(text string) {
	m.update(func() {
		m.chrome.Query = text
		if !m.panorama.Search(text) {
			log.Printf("nothing found for %q", text)
		}
		m.hideSuggestions()
		m.dismissLater(true, false)
	})
}

// SelectSuggestion navigates to the suggestion with the given index.
func (m *mainLoop) SelectSuggestion(index int) {
	m.update(func() {
		if index < 0 || index >= len(m.entries) {
			return
		}
		entry := m.entries[index]
		m.panorama.SelectEntry(entry)
		m.chrome.Query = entry.Title
		m.hideSuggestions()
		m.dismissLater(true, false)
	})
}

// FocusSearch keeps the suggestions open, an interaction with the search entry is not outside of them.
func (m *mainLoop) FocusSearch() {
	m.q(func() {
		m.suggestions.Cancel()
		m.dismissLater(true, false)
	})
}

// FocusInstructions keeps the instructions open.
func (m *mainLoop) FocusInstructions() {
	m.q(func() {
		m.instructions.Cancel()
		m.dismissLater(false, true)
	})
}

// DismissInstructions closes the instructions immediately.
func (m *mainLoop) DismissInstructions() {
	m.q(func() {
		m.instructions.Cancel()
		m.hideInstructions()
	})
}

// ShowInstructions opens the instructions again.
func (m *mainLoop) ShowInstructions() {
	m.q(func() {
		m.instructions.Cancel()
		m.chrome.InstructionsVisible = true
		m.publishChrome()
	})
}

// TuneToMarker tunes the connected rig to the marker frequency.
func (m *mainLoop) TuneToMarker() {
	m.q(func() {
		f, ok := m.panorama.Marker()
		if !ok || m.vfo == nil {
			return
		}
		log.Printf("tune rig to %v", f)
		m.vfo.SetFrequency(f)
	})
}

func (m *mainLoop) dismissLater(instructions, suggestions bool) {
	if instructions && m.chrome.InstructionsVisible {
		m.instructions.Trigger(m.hideInstructions)
	}
	if suggestions && m.chrome.SuggestionsVisible {
		m.suggestions.Trigger(m.hideSuggestions)
	}
}

func (m *mainLoop) hideInstructions() {
	if !m.chrome.InstructionsVisible {
		return
	}
	m.chrome.InstructionsVisible = false
	m.publishChrome()
}

func (m *mainLoop) hideSuggestions() {
	m.suggestions.Cancel()
	m.chrome.SuggestionsVisible = false
	m.publishChrome()
}

func suggestions(entries []bandplan.Entry) []core.Suggestion {
	result := make([]core.Suggestion, len(entries))
	for i, e := range entries {
		result[i] = core.Suggestion{Title: e.Title, Range: e.Range}
	}
	return result
}

func quickBands(bands []bandplan.Band) []core.QuickBand {
	result := make([]core.QuickBand, len(bands))
	for i, b := range bands {
		result[i] = core.QuickBand{Name: b.Title(), Range: b.Range()}
	}
	return result
}

// debouncer runs a command after a delay, unless it is superseded by another Trigger or by Cancel in the meantime.
// Trigger and Cancel must only be called on the main loop.
type debouncer struct {
	delay      time.Duration
	generation int
	q          func(command)
}

func (d *debouncer) Trigger(cmd command) {
	d.generation++
	generation := d.generation
	time.AfterFunc(d.delay, func() {
		d.q(func() {
			if generation == d.generation {
				cmd()
			}
		})
	})
}

func (d *debouncer) Cancel() {
	d.generation++
}
