package app

import (
	"log"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/ui"
)

type chromeController interface {
	SetQuery(string)
	Search(string)
	SelectSuggestion(int)
	FocusSearch()
	FocusInstructions()
	DismissInstructions()
	ShowInstructions()
	SetRegion(core.Region)
	SetShowAllocations(bool)
	SetShowBands(bool)
}

type mainWindow struct {
	window     *gtk.ApplicationWindow
	controller Controller

	search            *gtk.Entry
	allocations       *gtk.CheckButton
	bands             *gtk.CheckButton
	region            *gtk.ComboBoxText
	suggestionBox     *gtk.Box
	instructionsBox   *gtk.Box
	quickBandBox      *gtk.Box
	suggestionButtons []*gtk.Button
	suggestions       []core.Suggestion
	quickBandsShown   bool
	export            func()

	// updating suppresses the signal handlers while the widgets follow the chrome state
	updating bool
}

func newMainWindow(builder *gtk.Builder, application *gtk.Application, controller Controller) *mainWindow {
	result := &mainWindow{controller: controller}

	result.window = ui.Get(builder, "mainWindow").(*gtk.ApplicationWindow)
	result.window.SetApplication(application)
	result.window.SetDefaultSize(1400, 700)

	result.search = ui.Get(builder, "searchEntry").(*gtk.Entry)
	result.allocations = ui.Get(builder, "allocationsCheck").(*gtk.CheckButton)
	result.bands = ui.Get(builder, "bandsCheck").(*gtk.CheckButton)
	result.region = ui.Get(builder, "regionCombo").(*gtk.ComboBoxText)
	result.suggestionBox = ui.Get(builder, "suggestionBox").(*gtk.Box)
	result.instructionsBox = ui.Get(builder, "instructionsBox").(*gtk.Box)
	result.quickBandBox = ui.Get(builder, "quickBandBox").(*gtk.Box)

	for _, region := range core.Regions {
		result.region.Append(string(region), region.Label())
	}

	result.search.Connect("changed", result.onSearchChanged)
	result.search.Connect("activate", result.onSearchActivate)
	result.search.Connect("focus-in-event", result.onSearchFocus)
	result.allocations.Connect("toggled", result.onAllocationsToggled)
	result.bands.Connect("toggled", result.onBandsToggled)
	result.region.Connect("changed", result.onRegionChanged)

	resetButton := ui.Get(builder, "resetButton").(*gtk.Button)
	resetButton.Connect("clicked", func() { controller.ResetZoom() })
	exportButton := ui.Get(builder, "exportButton").(*gtk.Button)
	exportButton.Connect("clicked", result.onExport)
	helpButton := ui.Get(builder, "helpButton").(*gtk.Button)
	helpButton.Connect("clicked", func() { controller.ShowInstructions() })
	instructionsClose := ui.Get(builder, "instructionsClose").(*gtk.Button)
	instructionsClose.Connect("clicked", func() { controller.DismissInstructions() })
	instructionsClose.Connect("focus-in-event", func() bool {
		controller.FocusInstructions()
		return false
	})

	return result
}

func (w *mainWindow) Show() {
	w.window.ShowAll()
}

func (w *mainWindow) OnExport(export func()) {
	w.export = export
}

// ShowChrome updates the controls. It may be called from any goroutine.
func (w *mainWindow) ShowChrome(chrome core.Chrome) {
	glib.IdleAdd(func() {
		w.updating = true
		defer func() { w.updating = false }()

		w.allocations.SetActive(chrome.ShowAllocations)
		w.bands.SetActive(chrome.ShowBands)
		w.region.SetActiveID(string(chrome.Region))
		if text, err := w.search.GetText(); err == nil && text != chrome.Query {
			w.search.SetText(chrome.Query)
		}

		w.showSuggestions(chrome.Suggestions, chrome.SuggestionsVisible)
		w.instructionsBox.SetVisible(chrome.InstructionsVisible)
		w.showQuickBands(chrome.QuickBands)
	})
}

func (w *mainWindow) showSuggestions(suggestions []core.Suggestion, visible bool) {
	if !sameSuggestions(w.suggestions, suggestions) {
		for _, button := range w.suggestionButtons {
			button.Destroy()
		}
		w.suggestionButtons = w.suggestionButtons[:0]
		w.suggestions = suggestions

		for i, s := range suggestions {
			button, err := gtk.ButtonNewWithLabel(s.Title + "  " + core.FormatMHzRange(s.Range))
			if err != nil {
				log.Printf("cannot create suggestion button: %v", err)
				continue
			}
			index := i
			button.SetRelief(gtk.RELIEF_NONE)
			button.Connect("clicked", func() { w.controller.SelectSuggestion(index) })
			button.Connect("focus-in-event", func() bool {
				w.controller.FocusSearch()
				return false
			})
			w.suggestionBox.PackStart(button, false, false, 0)
			w.suggestionButtons = append(w.suggestionButtons, button)
		}
	}

	if visible && len(suggestions) > 0 {
		w.suggestionBox.ShowAll()
	} else {
		w.suggestionBox.Hide()
	}
}

func sameSuggestions(a, b []core.Suggestion) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (w *mainWindow) showQuickBands(bands []core.QuickBand) {
	if w.quickBandsShown || len(bands) == 0 {
		return
	}
	for i, band := range bands {
		button, err := gtk.ButtonNewWithLabel(band.Name)
		if err != nil {
			log.Printf("cannot create quick band button: %v", err)
			continue
		}
		index := i
		button.SetTooltipText(core.FormatMHzRange(band.Range))
		button.Connect("clicked", func() { w.controller.ZoomToQuickBand(index) })
		w.quickBandBox.PackStart(button, false, false, 0)
	}
	w.quickBandBox.ShowAll()
	w.quickBandsShown = true
}

func (w *mainWindow) onSearchChanged(entry *gtk.Entry) {
	if w.updating {
		return
	}
	text, err := entry.GetText()
	if err != nil {
		log.Print(err)
		return
	}
	w.controller.SetQuery(text)
}

func (w *mainWindow) onSearchActivate(entry *gtk.Entry) {
	text, err := entry.GetText()
	if err != nil {
		log.Print(err)
		return
	}
	w.controller.Search(text)
}

func (w *mainWindow) onSearchFocus() bool {
	w.controller.FocusSearch()
	return false
}

func (w *mainWindow) onAllocationsToggled(button *gtk.CheckButton) {
	if w.updating {
		return
	}
	w.controller.SetShowAllocations(button.GetActive())
}

func (w *mainWindow) onBandsToggled(button *gtk.CheckButton) {
	if w.updating {
		return
	}
	w.controller.SetShowBands(button.GetActive())
}

func (w *mainWindow) onRegionChanged(combo *gtk.ComboBoxText) {
	if w.updating {
		return
	}
	region, ok := core.ParseRegion(combo.GetActiveID())
	if !ok {
		return
	}
	w.controller.SetRegion(region)
}

func (w *mainWindow) onExport() {
	if w.export != nil {
		w.export()
	}
}
