// Package api provides the HTTP API for the application.
package api

import (
	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/platform/config"
	"reviewsentry/internal/platform/metrics"
	phttp "reviewsentry/internal/platform/net/http"
	"reviewsentry/internal/platform/store"

	"reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	"reviewsentry/internal/modkit/module"
	"reviewsentry/internal/modkit/swaggerkit"

	analyticsmod "reviewsentry/internal/services/api/analytics/module"
	devicesmod "reviewsentry/internal/services/api/devices/module"
	metamod "reviewsentry/internal/services/api/meta/module"
	predictdomain "reviewsentry/internal/services/api/predict/domain"
	predictmod "reviewsentry/internal/services/api/predict/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store // optional; nil when no archive store is configured
	Engine *analytics.Engine

	// Predict overrides the config derived predict options when non nil
	Predict *predictmod.Options

	// CORSOrigins empty allows any origin
	CORSOrigins []string

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.Engine == nil {
		panic("api: nil analytics engine")
	}

	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	popt := predictmod.FromConfig(deps.Cfg)
	if opt.Predict != nil {
		popt = *opt.Predict
	}
	predict := predictmod.New(deps, opt.Engine, popt)
	status := module.MustPortsOf[predictdomain.StatusPort](predict)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Events: opt.Engine,
			Model:  status,
		})),
		devicesmod.New(deps, opt.Engine),
		analyticsmod.New(deps, opt.Engine),
		predict,
	}

	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// unversioned API with a common middleware stack
	httpkit.MountAPIRoot(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		swaggerkit.Mount(api, opt.EnableSwagger)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
