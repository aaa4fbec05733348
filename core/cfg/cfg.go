package cfg

import (
	"time"

	"github.com/ftl/hamradio/cfg"
	"github.com/pkg/errors"

	"github.com/ftl/signalatlas/core"
)

const (
	region            cfg.Key = "signalatlas.region"
	showAllocations   cfg.Key = "signalatlas.showAllocations"
	showBands         cfg.Key = "signalatlas.showBands"
	framesPerSecond   cfg.Key = "signalatlas.framesPerSecond"
	animationDuration cfg.Key = "signalatlas.animationDuration"
	dataDir           cfg.Key = "signalatlas.dataDir"
	logFile           cfg.Key = "signalatlas.logFile"
	vfoHost           cfg.Key = "signalatlas.vfoHost"
)

// Load the configuration from the default configuration file.
func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, "cannot load configuration")
	}
	return read(configuration)
}

type getter interface {
	Get(key cfg.Key, defaultValue interface{}) interface{}
}

func read(configuration getter) (core.Configuration, error) {
	defaults := core.DefaultConfiguration

	regionName := configuration.Get(region, string(defaults.Region)).(string)
	r, ok := core.ParseRegion(regionName)
	if !ok {
		return core.Configuration{}, errors.Errorf("unknown region %q", regionName)
	}

	result := core.Configuration{
		Region:            r,
		ShowAllocations:   configuration.Get(showAllocations, defaults.ShowAllocations).(bool),
		ShowBands:         configuration.Get(showBands, defaults.ShowBands).(bool),
		FramesPerSecond:   int(configuration.Get(framesPerSecond, float64(defaults.FramesPerSecond)).(float64)),
		AnimationDuration: time.Duration(configuration.Get(animationDuration, float64(defaults.AnimationDuration/time.Millisecond)).(float64)) * time.Millisecond,
		DataDir:           configuration.Get(dataDir, "").(string),
		LogFile:           configuration.Get(logFile, "").(string),
		VFOHost:           configuration.Get(vfoHost, "").(string),
	}
	if result.FramesPerSecond <= 0 {
		result.FramesPerSecond = defaults.FramesPerSecond
	}

	return result, nil
}

// Static returns the built-in configuration.
func Static() core.Configuration {
	return core.DefaultConfiguration
}
