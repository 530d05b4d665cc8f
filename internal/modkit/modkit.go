// Package modkit builds API modules from shared deps and functional options
package modkit

import (
	"net/http"

	"labelit/internal/modkit/httpkit"
	"labelit/internal/modkit/repokit"
	"labelit/internal/platform/config"
	"labelit/internal/platform/logger"
)

// Deps are handed to every module constructor
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	SQL repokit.TxRunner
}

// Module is what the api mounts under /api/v1
type Module interface {
	Name() string
	Prefix() string
	MountRoutes(r httpkit.Router)
	Ports() any
}

// MountFunc attaches a module's endpoints to its prefixed router
type MountFunc func(httpkit.Router)

// Middlewares is the per module chain applied under its prefix
type Middlewares = []func(http.Handler) http.Handler
