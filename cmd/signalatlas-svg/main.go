// signalatlas-svg renders one view of the spectrum into an SVG file without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ftl/signalatlas/core"
	coreapp "github.com/ftl/signalatlas/core/app"
	"github.com/ftl/signalatlas/core/bandplan"
	"github.com/ftl/signalatlas/core/cfg"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
	"github.com/ftl/signalatlas/ui/svg"
)

func main() {
	region := flag.String("region", "", "allocation table: US, EU or APAC")
	search := flag.String("search", "", "frequency or band to show, e.g. \"7.074 MHz\" or \"2m\"")
	output := flag.String("o", "-", "output file, - for stdout")
	allocations := flag.Bool("allocations", true, "show the regulatory allocations")
	bands := flag.Bool("bands", true, "show the bands")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	if !*verbose {
		coreapp.DiscardLogging()
	}

	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}
	if *region != "" {
		r, ok := core.ParseRegion(*region)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown region %q\n", *region)
			os.Exit(2)
		}
		configuration.Region = r
	}
	configuration.ShowAllocations = *allocations
	configuration.ShowBands = *bands

	plan, err := bandplan.Load(configuration.DataDir)
	if err != nil {
		log.Printf("cannot load reference data from %s, using the built-in tables: %v", configuration.DataDir, err)
		plan = bandplan.MustLoad()
	}
	p := panorama.New(plan, configuration, layout.DefaultMeasurer())
	if *search != "" && !p.Search(*search) {
		fmt.Fprintf(os.Stderr, "nothing found for %q\n", *search)
		os.Exit(1)
	}
	p.Tick(time.Now().Add(time.Hour))

	if err := write(*output, p.Data()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func write(output string, frame core.Panorama) error {
	if output == "-" {
		return svg.Write(os.Stdout, frame)
	}
	return svg.ExportFile(output, frame)
}
