package httpkit

import "net/http"

// Get mounts a body-less JSON endpoint
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a body-less JSON endpoint, for commands that take no payload
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// PostJSON mounts an endpoint taking a validated T body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
