package app

import (
	"io"
	"log"
	"sync"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
	"github.com/ftl/signalatlas/core/vfo"
)

// New returns a new instance of the application controller.
func New(configuration core.Configuration) *Controller {
	return &Controller{
		configuration: configuration,
	}
}

// PanoramaView shows the frames of the spectrum view.
type PanoramaView interface {
	ShowPanorama(core.Panorama)
}

// ChromeView shows the state of the controls.
type ChromeView interface {
	ShowChrome(core.Chrome)
}

// Controller for the application.
type Controller struct {
	*mainLoop

	configuration core.Configuration
	done          chan struct{}
	subProcesses  *sync.WaitGroup
	logFile       io.Closer

	panoramaView PanoramaView
	chromeView   ChromeView
}

// Startup the application.
func (c *Controller) Startup() {
	c.done = make(chan struct{})
	c.subProcesses = new(sync.WaitGroup)
	if c.configuration.LogFile != "" {
		c.logFile = SetupLogging(c.configuration.LogFile)
	}

	plan, err := bandplan.Load(c.configuration.DataDir)
	if err != nil {
		log.Printf("cannot load reference data from %s, using the built-in tables: %v", c.configuration.DataDir, err)
		plan = bandplan.MustLoad()
	}
	p := panorama.New(plan, c.configuration, layout.DefaultMeasurer())

	var rig vfoType
	if c.configuration.VFOHost != "" {
		v, err := vfo.Open(c.configuration.VFOHost)
		if err != nil {
			log.Printf("rig follow disabled: %v", err)
		} else {
			v.Run(c.done, c.subProcesses)
			rig = v
		}
	}

	c.mainLoop = newMainLoop(p, rig, c.configuration.FramesPerSecond)

	c.subProcesses.Add(2)
	go func() {
		defer c.subProcesses.Done()
		c.mainLoop.Run(c.done)
	}()
	go func() {
		defer c.subProcesses.Done()
		c.forward()
	}()
}

func (c *Controller) forward() {
	for {
		select {
		case data := <-c.mainLoop.Panorama():
			if c.panoramaView != nil {
				c.panoramaView.ShowPanorama(data)
			}
		case chrome := <-c.mainLoop.Chrome():
			if c.chromeView != nil {
				c.chromeView.ShowChrome(chrome)
			}
		case <-c.done:
			return
		}
	}
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	close(c.done)
	c.subProcesses.Wait()
	if c.logFile != nil {
		c.logFile.Close()
	}
}

// SetPanoramaView sets the panorama view. It must be called before Startup.
func (c *Controller) SetPanoramaView(view PanoramaView) {
	c.panoramaView = view
}

// SetChromeView sets the view of the controls. It must be called before Startup.
func (c *Controller) SetChromeView(view ChromeView) {
	c.chromeView = view
}
