// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"labelit/internal/core/version"
	"labelit/internal/modkit/httpkit"
	ptime "labelit/internal/platform/time"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// PhaseFunc reports the phase of the running labeling session
type PhaseFunc func(stdctx.Context) (string, error)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	SQL         any

	// Session is resolved per request, nil until the labeling module registers
	Session func() PhaseFunc
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"labelit"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"sqlite"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"sqlite: sql: database is closed"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"labelit"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "login success"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: ptime.Stamp(h.deps.StartedAt),
		Now:     ptime.Stamp(time.Now()),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	parent := stdctx.Background()
	if r != nil {
		parent = r.Context()
	}
	ctx, cancel := stdctx.WithTimeout(parent, 2*time.Second)
	defer cancel()

	checks := []ReadyCheck{pingCheck(ctx, "sqlite", h.deps.SQL), h.sessionCheck(ctx)}

	overall := "ok"
	for _, c := range checks {
		switch c.Status {
		case "ok":
		case "fail":
			overall = "fail"
		default:
			if overall == "ok" {
				overall = "degraded"
			}
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    ptime.Stamp(time.Now()),
	}, nil
}

func pingCheck(ctx stdctx.Context, name string, c any) ReadyCheck {
	if c == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := c.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// sessionCheck is ok while the session is ACTIVE or COMPLETE
func (h *handlers) sessionCheck(ctx stdctx.Context) ReadyCheck {
	var phase PhaseFunc
	if h.deps.Session != nil {
		phase = h.deps.Session()
	}
	if phase == nil {
		return ReadyCheck{Name: "session", Status: "skipped"}
	}
	p, err := phase(ctx)
	if err != nil {
		return ReadyCheck{Name: "session", Status: "fail", Error: err.Error()}
	}
	switch p {
	case "ACTIVE", "COMPLETE":
		return ReadyCheck{Name: "session", Status: "ok"}
	case "FAILED":
		return ReadyCheck{Name: "session", Status: "fail", Error: "session failed"}
	default:
		return ReadyCheck{Name: "session", Status: "unknown", Error: "phase " + p}
	}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: ptime.Stamp(h.deps.StartedAt),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
