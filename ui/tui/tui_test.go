package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := panorama.New(bandplan.MustLoad(), core.DefaultConfiguration, layout.FixedAdvance(0.6))
	m := New(p, 25)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(text string) []tea.Msg {
	result := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		result = append(result, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return result
}

func finish(m Model) {
	m.panorama.Tick(time.Now().Add(time.Hour))
}

func TestColumns(t *testing.T) {
	c := newColumns(core.DefaultGeometry, 116)

	assert.Equal(t, core.Px(25), c.toPx(0))
	assert.Equal(t, 0, c.toCol(25))
	assert.Equal(t, -1, c.toCol(19))
	assert.Equal(t, 115, c.toCol(1179))
	assert.Equal(t, core.Px(80), c.toDistance(8))
}

func TestBlend(t *testing.T) {
	assert.Equal(t, core.Color("#ffffff"), blend("#fff", 1))
	assert.Equal(t, background, blend("#ff4081", 0))
}

func TestInitialView(t *testing.T) {
	m := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "signalatlas")
	assert.Contains(t, view, "EHF")
	assert.Contains(t, view, "United States")
	assert.Contains(t, view, "Scroll or press +/- to zoom")
}

func TestKeys_ZoomAndReset(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("+")...)
	finish(m)
	assert.Greater(t, m.panorama.State().Transform.K, 1.0)
	assert.False(t, m.showInstructions)

	m = send(m, runes("r")...)
	finish(m)
	assert.InDelta(t, 1.0, m.panorama.State().Transform.K, 1e-9)
}

func TestKeys_Toggles(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("a")...)
	assert.False(t, m.panorama.State().ShowAllocations)
	assert.Equal(t, "allocations: false", m.status)

	m = send(m, runes("b")...)
	assert.False(t, m.panorama.State().ShowBands)

	m = send(m, runes("g")...)
	assert.Equal(t, core.RegionEU, m.panorama.State().Region)
}

func TestKeys_QuickBand(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("6")...)
	finish(m)

	visible := m.panorama.Data().VisibleRange
	assert.InDelta(t, 30e6, float64(visible.From), 1)
	assert.InDelta(t, 300e6, float64(visible.To), 1)
}

func TestSearch(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("/")...)
	require.True(t, m.search.Focused())
	m = send(m, runes("2m")...)
	assert.NotEmpty(t, m.entries)
	assert.True(t, m.suggestionsVisible())

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	finish(m)

	assert.False(t, m.search.Focused())
	assert.Empty(t, m.entries)
	selection := m.panorama.Data().Selection
	require.NotNil(t, selection)
	assert.Equal(t, "2m Amateur Band", selection.Name)
	assert.Contains(t, m.View(), "EME and CW")
}

func TestSearch_PickSuggestion(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("/noaa")...)
	require.Len(t, m.entries, 2)
	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "NOAA Weather Radio", m.search.Value())
	assert.False(t, m.search.Focused())
}

func TestSearch_NothingFound(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("/banana")...)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, `nothing found for "banana"`, m.status)
	assert.Equal(t, core.Identity, m.panorama.State().Transform)
}

func TestSearch_Cancel(t *testing.T) {
	m := newTestModel(t)

	m = send(m, runes("/2m")...)
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.search.Focused())
	assert.False(t, m.panorama.State().HasSelection)
}

func TestMouse_ClickSelectsBand(t *testing.T) {
	m := newTestModel(t)
	m.panorama.ZoomToBand(core.FrequencyRange{From: 144e6, To: 148e6})
	finish(m)
	bandRow := m.spectrumTop() + 2

	m = send(m,
		tea.MouseMsg{X: 60, Y: bandRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 60, Y: bandRow, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)

	selection := m.panorama.Data().Selection
	require.NotNil(t, selection)
	assert.Equal(t, "2m Amateur Band", selection.Name)
}

func TestMouse_DragPans(t *testing.T) {
	m := newTestModel(t)
	m.panorama.ZoomToBand(core.FrequencyRange{From: 144e6, To: 148e6})
	finish(m)
	before := m.panorama.Data().VisibleRange
	y := m.spectrumTop() + 1

	m = send(m,
		tea.MouseMsg{X: 60, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 70, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 70, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	finish(m)

	after := m.panorama.Data().VisibleRange
	assert.Less(t, float64(after.From), float64(before.From))
	assert.False(t, m.panorama.State().HasSelection)
}

func TestMouse_WheelZoomsAtPointer(t *testing.T) {
	m := newTestModel(t)
	y := m.spectrumTop() + 1

	m = send(m, tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	finish(m)

	assert.Greater(t, m.panorama.State().Transform.K, 1.0)
}

func TestMouse_Hover(t *testing.T) {
	m := newTestModel(t)

	m = send(m, tea.MouseMsg{X: 60, Y: m.spectrumTop() + 1, Action: tea.MouseActionMotion})
	assert.True(t, m.panorama.Data().Hover.Visible)

	m = send(m, tea.MouseMsg{X: 60, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.panorama.Data().Hover.Visible)
}

func TestSpectrum_Marker(t *testing.T) {
	p := panorama.New(bandplan.MustLoad(), core.DefaultConfiguration, layout.FixedAdvance(0.6))
	p.ZoomToFrequency(144.39e6)
	p.Tick(time.Now().Add(time.Hour))

	lines := spectrum(p.Data(), 116)

	assert.Contains(t, lines[0].String(), "144.390 MHz")
	assert.Equal(t, '│', lines[1][58].r)
	assert.Equal(t, len(rows(p.Data())), len(lines))
	assert.Contains(t, lines[len(lines)-2].String(), "┬")
}

func TestExport(t *testing.T) {
	m := newTestModel(t)
	m.exportDir = t.TempDir()

	m = send(m, runes("e")...)

	files, err := filepath.Glob(filepath.Join(m.exportDir, "signalatlas-*.svg"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(m.status, "exported "), m.status)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
