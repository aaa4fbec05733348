package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	Reset       key.Binding
	Allocations key.Binding
	Bands       key.Binding
	Region      key.Binding
	Search      key.Binding
	QuickBand   key.Binding
	Export      key.Binding
	Close       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	PanLeft:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "pan left")),
	PanRight:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "pan right")),
	Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Allocations: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "allocations")),
	Bands:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bands")),
	Region:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "region")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	QuickBand:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "quick bands")),
	Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export svg")),
	Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.Reset},
		{k.Allocations, k.Bands, k.Region, k.QuickBand},
		{k.Search, k.Export, k.Close, k.Help, k.Quit},
	}
}

// searchKeys are active while the search input has the focus.
type searchKeyMap struct {
	Submit key.Binding
	Up     key.Binding
	Down   key.Binding
	Cancel key.Binding
}

var searchKeys = searchKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Up, k.Down, k.Cancel}
}

func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
