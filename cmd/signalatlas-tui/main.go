package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	coreapp "github.com/ftl/signalatlas/core/app"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/cfg"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
	"github.com/ftl/signalatlas/ui/tui"
)

func main() {
	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}

	// the terminal belongs to the user interface
	if configuration.LogFile != "" {
		defer coreapp.SetupLogging(configuration.LogFile).Close()
	} else {
		coreapp.DiscardLogging()
	}

	plan, err := bandplan.Load(configuration.DataDir)
	if err != nil {
		log.Printf("cannot load reference data from %s, using the built-in tables: %v", configuration.DataDir, err)
		plan = bandplan.MustLoad()
	}
	p := panorama.New(plan, configuration, layout.DefaultMeasurer())

	m := tui.New(p, configuration.FramesPerSecond)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
