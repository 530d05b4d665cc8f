// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"net/http"
	"time"

	modkit "labelit/internal/modkit"
	"labelit/internal/modkit/httpkit"
	"labelit/internal/modkit/module"
	str "labelit/internal/platform/strings"
	labelingdom "labelit/internal/services/api/labeling/domain"

	metahttp "labelit/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	mount  modkit.MountFunc
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{
		ServiceName: "labelit",
		StartedAt:   time.Now(),
		SQL:         deps.SQL,
		Session:     sessionPhase,
	}
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		mount:  b.Chain(func(r httpkit.Router) { metahttp.Register(r, d) }),
	}
}

// sessionPhase looks the labeling ports up at call time so module order does not matter
func sessionPhase() metahttp.PhaseFunc {
	svc, ok := module.PortsAs[labelingdom.ServicePort]("labeling")
	if !ok {
		return nil
	}
	return func(ctx context.Context) (string, error) {
		v, err := svc.Session(ctx)
		return v.Phase, err
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { httpkit.MountUnder(r, m.prefix, m.mws, m.mount) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
