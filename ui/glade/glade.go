package glade

import (
	_ "embed"
)

// UI is the glade definition of the main window.
//
//go:embed ui.glade
var UI string
