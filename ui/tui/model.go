package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/panorama"
	"github.com/ftl/signalatlas/ui/svg"
)

// panColumns is the distance of one pan step.
const panColumns = 8

// Model of the terminal user interface. All panorama operations run in Update, bubbletea calls it sequentially.
type Model struct {
	panorama  *panorama.Panorama
	interval  time.Duration
	exportDir string

	width  int
	height int

	help        help.Model
	search      textinput.Model
	suggestions list.Model
	entries     []bandplan.Entry
	picked      bool

	showInstructions bool
	status           string
	drag             drag
}

type drag struct {
	active bool
	lastX  int
	moved  bool
}

type tickMsg time.Time

type suggestionItem struct {
	entry bandplan.Entry
}

func (i suggestionItem) Title() string       { return i.entry.Title }
func (i suggestionItem) Description() string { return core.FormatMHzRange(i.entry.Range) }
func (i suggestionItem) FilterValue() string { return i.entry.Title }

// New returns a model that shows the given panorama and animates it with the given frame rate.
func New(p *panorama.Panorama, framesPerSecond int) Model {
	if framesPerSecond <= 0 {
		framesPerSecond = core.DefaultConfiguration.FramesPerSecond
	}
	m := Model{
		panorama:         p,
		interval:         time.Second / time.Duration(framesPerSecond),
		exportDir:        ".",
		help:             help.New(),
		showInstructions: true,
		status:           "signalatlas ready",
	}

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "frequency (e.g. 7.074 MHz) or band name"
	m.search.CharLimit = 64

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	m.suggestions = list.New(nil, d, 0, 0)
	m.suggestions.SetShowTitle(false)
	m.suggestions.SetShowHelp(false)
	m.suggestions.SetShowStatusBar(false)
	m.suggestions.SetShowPagination(false)
	m.suggestions.SetFilteringEnabled(false)

	return m
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.panorama.Tick(time.Time(msg))
		return m, tick(m.interval)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.suggestions.SetWidth(msg.Width)
		m.panorama.SetStripWidth(core.Px(max(1, msg.Width-2)))
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panorama
	if !key.Matches(msg, keys.Help) {
		m.showInstructions = false
	}
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.ZoomIn):
		p.ZoomIn(m.center())
	case key.Matches(msg, keys.ZoomOut):
		p.ZoomOut(m.center())
	case key.Matches(msg, keys.PanLeft):
		p.PanBy(m.columns().toDistance(panColumns))
	case key.Matches(msg, keys.PanRight):
		p.PanBy(-m.columns().toDistance(panColumns))
	case key.Matches(msg, keys.Reset):
		p.ResetZoom()
	case key.Matches(msg, keys.Allocations):
		p.ToggleAllocations()
		m.status = fmt.Sprintf("allocations: %v", p.State().ShowAllocations)
	case key.Matches(msg, keys.Bands):
		p.ToggleBands()
		m.status = fmt.Sprintf("bands: %v", p.State().ShowBands)
	case key.Matches(msg, keys.Region):
		p.SetRegion(p.State().Region.Next())
		m.status = "region: " + p.State().Region.Label()
	case key.Matches(msg, keys.QuickBand):
		index := int(msg.String()[0] - '1')
		p.ZoomToQuickBand(index)
	case key.Matches(msg, keys.Export):
		m.export()
	case key.Matches(msg, keys.Close):
		p.ClearSelection()
		p.DismissMarker()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.showInstructions = m.help.ShowAll
	case key.Matches(msg, keys.Search):
		m.search.SetValue("")
		m.updateSuggestions()
		return m, m.search.Focus()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, searchKeys.Cancel):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, searchKeys.Submit):
		text := m.search.Value()
		index := m.suggestions.Index()
		if m.picked && index >= 0 && index < len(m.entries) {
			m.panorama.SelectEntry(m.entries[index])
			m.search.SetValue(m.entries[index].Title)
		} else if !m.panorama.Search(text) {
			m.status = fmt.Sprintf("nothing found for %q", text)
		}
		m.closeSearch()
		return m, nil
	case key.Matches(msg, searchKeys.Up):
		m.suggestions.CursorUp()
		m.picked = len(m.entries) > 0
		return m, nil
	case key.Matches(msg, searchKeys.Down):
		if m.picked {
			m.suggestions.CursorDown()
		}
		m.picked = len(m.entries) > 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.updateSuggestions()
	return m, cmd
}

func (m *Model) updateSuggestions() {
	m.entries = m.panorama.Suggestions(m.search.Value())
	items := make([]list.Item, len(m.entries))
	for i, e := range m.entries {
		items[i] = suggestionItem{entry: e}
	}
	m.suggestions.SetItems(items)
	m.suggestions.SetHeight(len(items))
	m.suggestions.Select(0)
	m.picked = false
}

func (m *Model) closeSearch() {
	m.search.Blur()
	m.entries = nil
	m.suggestions.SetItems(nil)
	m.suggestions.SetHeight(0)
	m.picked = false
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	p := m.panorama
	r, onSpectrum := m.rowAt(msg.Y)
	c := m.columns()
	x := c.toPx(msg.X)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if onSpectrum {
			p.ZoomIn(x)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if onSpectrum {
			p.ZoomOut(x)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.showInstructions = false
		m.drag = drag{active: onSpectrum, lastX: msg.X}
	case msg.Action == tea.MouseActionMotion:
		if m.drag.active && msg.X != m.drag.lastX {
			p.PanBy(c.toDistance(msg.X - m.drag.lastX))
			m.drag.lastX = msg.X
			m.drag.moved = true
		}
		if onSpectrum {
			p.SetPointer(x, r.logicalY())
		} else {
			p.ClearPointer()
		}
	case msg.Action == tea.MouseActionRelease:
		if m.drag.active && !m.drag.moved && onSpectrum {
			p.Click(x, r.logicalY())
		}
		m.drag = drag{}
	}
	return m
}

func (m *Model) export() {
	filename := filepath.Join(m.exportDir, fmt.Sprintf("signalatlas-%s.svg", time.Now().Format("20060102-150405")))
	if err := svg.ExportFile(filename, m.panorama.Data()); err != nil {
		m.status = "export failed: " + err.Error()
		return
	}
	m.status = "exported " + filename
}

func (m Model) columns() columns {
	return newColumns(m.panorama.Geometry(), m.width)
}

func (m Model) center() core.Px {
	g := m.panorama.Geometry()
	return (g.Left() + g.Right()) / 2
}

// spectrumTop is the screen row of the first spectrum row.
func (m Model) spectrumTop() int {
	result := 2
	if m.suggestionsVisible() {
		result += len(m.entries)
	}
	return result
}

func (m Model) suggestionsVisible() bool {
	return m.search.Focused() && len(m.entries) > 0
}

func (m Model) rowAt(y int) (row, bool) {
	spectrumRows := rows(m.panorama.Data())
	i := y - m.spectrumTop()
	if i < 0 || i >= len(spectrumRows) {
		return row{}, false
	}
	return spectrumRows[i], true
}
