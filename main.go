package main

import (
	"log"
	"os"

	coreapp "github.com/ftl/signalatlas/core/app"
	"github.com/ftl/signalatlas/core/cfg"
	uiapp "github.com/ftl/signalatlas/ui/app"
)

func main() {
	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}

	controller := coreapp.New(configuration)
	uiapp.Run(controller, os.Args)
}
