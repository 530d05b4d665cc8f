// Package http provides http transport for labeling
package http

import (
	stdhttp "net/http"

	"labelit/internal/modkit/httpkit"
	"labelit/internal/services/api/labeling/domain"
	svc "labelit/internal/services/api/labeling/service"
)

// Register mounts the labeling JSON endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/session", h.session)
	httpkit.PostJSON[domain.SubmitInput](r, "/submit", h.submit)
	httpkit.Post(r, "/done", h.done)
	httpkit.Get(r, "/annotations", h.annotations)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /labeling/session Labeling labelingSession
// @Summary Current session snapshot
// @Tags Labeling
// @Produce json
// @Success 200 {object} domain.SessionView "ok"
// @Router /labeling/session [get]
func (h *handlers) session(r *stdhttp.Request) (any, error) {
	return h.svc.Session(r.Context())
}

// swagger:route POST /labeling/submit Labeling labelingSubmit
// @Summary Label the current item and advance
// @Tags Labeling
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Submission"
// @Success 200 {object} domain.SessionView "ok"
// @Failure 409 {object} ErrorResponse "stale item or closed session"
// @Router /labeling/submit [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in)
}

// swagger:route POST /labeling/done Labeling labelingDone
// @Summary End the session early
// @Tags Labeling
// @Produce json
// @Success 200 {object} domain.SessionView "ok"
// @Router /labeling/done [post]
func (h *handlers) done(r *stdhttp.Request) (any, error) {
	return h.svc.Done(r.Context())
}

// swagger:route GET /labeling/annotations Labeling labelingAnnotations
// @Summary Every stored annotation in insertion order
// @Tags Labeling
// @Produce json
// @Success 200 {array} annotate.Annotation "ok"
// @Router /labeling/annotations [get]
func (h *handlers) annotations(r *stdhttp.Request) (any, error) {
	return h.svc.Annotations(r.Context())
}
