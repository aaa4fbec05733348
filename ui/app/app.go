package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/ftl/signalatlas/core"
	coreapp "github.com/ftl/signalatlas/core/app"
	"github.com/ftl/signalatlas/ui/detail"
	"github.com/ftl/signalatlas/ui/glade"
	"github.com/ftl/signalatlas/ui/panorama"
	"github.com/ftl/signalatlas/ui/svg"
)

// Run the application
func Run(controller Controller, args []string) {
	var err error
	a := &application{id: "ft.signalatlas", controller: controller}
	a.app, err = gtk.ApplicationNew(a.id, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		log.Fatal("Cannot create application: ", err)
	}

	a.app.Connect("activate", a.activate)
	a.app.Connect("shutdown", a.shutdown)

	a.app.Run(args)
}

// Controller of the application, usually the core application controller.
type Controller interface {
	panorama.Controller
	detail.Controller
	chromeController

	Startup()
	Shutdown()
	SetPanoramaView(coreapp.PanoramaView)
	SetChromeView(coreapp.ChromeView)
}

type application struct {
	id         string
	app        *gtk.Application
	builder    *gtk.Builder
	mainWindow *mainWindow
	controller Controller
	panorama   *panorama.View
	detail     *detail.View
}

func (a *application) activate() {
	a.builder = setupBuilder()

	a.mainWindow = newMainWindow(a.builder, a.app, a.controller)
	a.panorama = panorama.New(a.builder, a.controller)
	a.panorama.OnExport(a.export)
	a.detail = detail.New(a.builder, a.controller)
	a.mainWindow.OnExport(a.export)

	a.controller.SetPanoramaView(&panoramaView{View: a.panorama, detail: a.detail})
	a.controller.SetChromeView(a.mainWindow)
	a.controller.Startup()

	a.mainWindow.Show()
}

func (a *application) shutdown() {
	a.controller.Shutdown()
}

func (a *application) export() {
	filename := fmt.Sprintf("signalatlas-%s.svg", time.Now().Format("20060102-150405"))
	if err := svg.ExportFile(filename, a.panorama.Data()); err != nil {
		log.Printf("export failed: %v", err)
		return
	}
	log.Printf("exported the current view to %s", filename)
}

func setupBuilder() *gtk.Builder {
	builder, err := gtk.BuilderNew()
	if err != nil {
		log.Fatal("Cannot create builder: ", err)
	}

	err = builder.AddFromString(glade.UI)
	if err != nil {
		log.Fatal("Cannot load glade resource: ", err)
	}

	return builder
}

// panoramaView also keeps the detail view in sync with the selection of each frame.
type panoramaView struct {
	*panorama.View
	detail *detail.View

	lastSelection *core.Selection
}

func (v *panoramaView) ShowPanorama(data core.Panorama) {
	v.View.ShowPanorama(data)
	glib.IdleAdd(func() {
		if sameSelection(v.lastSelection, data.Selection) {
			return
		}
		v.lastSelection = data.Selection
		v.detail.ShowSelection(data.Selection)
	})
}

func sameSelection(a, b *core.Selection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && a.Range == b.Range && a.Strip.Width == b.Strip.Width
}
