// Package http holds the router seam, the JSON envelope and the api server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "labelit/internal/platform/errors"
	pnet "labelit/internal/platform/net"
)

// Envelope wraps every JSON body the api writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce
// a Body holding an error is written as an error envelope with the mapped status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error maps err to its status when written
func Error(err error) Response { return Response{Body: err} }

// JSON writes v with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handle adapts a return style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	status := resp.Status
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		env.Code, env.Error = wire.Code, wire.Message
	} else {
		env.Data = resp.Body
	}
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	env.StatusCode, env.Status = status, stdhttp.StatusText(status)
	JSON(w, status, env)
}
