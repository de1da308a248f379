// Package api provides the HTTP API for the application
package api

import (
	"brewprints/internal/platform/config"
	"brewprints/internal/platform/logger"
	phttp "brewprints/internal/platform/net/http"
	"brewprints/internal/platform/store"

	"brewprints/internal/modkit"
	"brewprints/internal/modkit/httpkit"
	"brewprints/internal/modkit/module"
	"brewprints/internal/modkit/swaggerkit"

	calcdomain "brewprints/internal/services/api/calc/domain"
	calcmod "brewprints/internal/services/api/calc/module"
	metamod "brewprints/internal/services/api/meta/module"
	recipesmod "brewprints/internal/services/api/recipes/module"
	statsmod "brewprints/internal/services/api/stats/module"

	// Headless run telemetry module (owns the Recorder port)
	runsmod "brewprints/internal/services/runs/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the runs module first and extract its Recorder port. It
	// degrades to a no op recorder when clickhouse is disabled, so calc can
	// always take the port
	runs := runsmod.New(deps)
	rec := module.MustPortsOf[runsmod.Ports](runs).Recorder

	// Calc owns the engines; recipes needs its ServicePort to compute
	// reports for stored recipes
	calc := calcmod.New(deps, modkit.WithPorts(calcmod.Ports{Recorder: rec}))
	calcPort := module.MustPortsOf[calcdomain.ServicePort](calc)

	recipes := recipesmod.New(deps, modkit.WithPorts(recipesmod.Ports{Calc: calcPort}))

	mods := []module.Module{
		metamod.New(deps),
		runs, // include runs so its ports are registered
		calc,
		recipes, // API module that depends on calc's ServicePort
	}
	if deps.CH != nil {
		// stats aggregates over run telemetry; without clickhouse there is
		// nothing to aggregate
		mods = append(mods, statsmod.New(deps))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
