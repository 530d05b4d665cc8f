// Package httpkit is the http surface service modules import
// it re-exports the platform seam so modules never reach into platform/net/http
package httpkit

import (
	"net/http"

	phttp "labelit/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Response lets a handler choose its own status
	Response = phttp.Response
)

// JSON binds and validates a T body then wraps the result in the envelope
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call wraps a body-less handler result in the envelope
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }
