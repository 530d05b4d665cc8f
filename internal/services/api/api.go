// Package api provides the HTTP API for the application
package api

import (
	"context"

	"labelit/internal/platform/config"
	"labelit/internal/platform/logger"
	"labelit/internal/platform/net/middleware"
	phttp "labelit/internal/platform/net/http"
	"labelit/internal/platform/store"
	pstrings "labelit/internal/platform/strings"

	"labelit/internal/modkit"
	"labelit/internal/modkit/httpkit"
	"labelit/internal/modkit/module"
	"labelit/internal/modkit/swaggerkit"

	labelingdom "labelit/internal/services/api/labeling/domain"
	labelingmod "labelit/internal/services/api/labeling/module"
	metamod "labelit/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Corpus replaces the remote corpus loader when set
	Corpus labelingdom.CorpusPort
}

// Mount starts the labeling session and mounts the pages and the API onto the given router
// a corpus or store failure is returned before anything is mounted
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		SQL: opt.Store.SQL,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Get()
	}

	var lopts []modkit.Option
	if opt.Corpus != nil {
		lopts = append(lopts, modkit.WithPorts(labelingmod.Ports{Corpus: opt.Corpus}))
	}
	labeling := labelingmod.New(deps, labelingmod.FromConfig(deps.Cfg), lopts...)
	if err := labeling.Start(ctx); err != nil {
		return err
	}

	mods := []modkit.Module{
		metamod.New(deps),
		labeling,
	}

	api := deps.Cfg.Prefix("API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     api.MayDuration("REQUEST_TIMEOUT", 0),
		SlowRequest: api.MayDuration("SLOW_REQUEST", 0),
		CORS: middleware.CORSOptions{
			AllowedOrigins: pstrings.SplitList(api.MayString("CORS_ORIGINS", "")),
		},
	}, labeling)

	// liveness answers before any routing
	r.Use(middleware.Heartbeat("/health"))

	// Swagger + profiler
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			// ports are registered under the module name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
			deps.Log.Debug().Str("module", m.Name()).Str("prefix", "/api/v1"+m.Prefix()).Msg("module mounted")
		}
	})

	// annotator pages at the root
	r.Group(func(root httpkit.Router) {
		root.Use(stack...)
		labeling.MountPages(root)
	})
	return nil
}
