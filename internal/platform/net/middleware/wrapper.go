// Package middleware wraps chi and cors middlewares and adds the in house ones
// callers only see func(http.Handler) http.Handler
package middleware

import (
	"net/http"
	"time"

	pstrings "labelit/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID propagates X-Request-Id or mints one and stores it on the context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Real-IP or X-Forwarded-For
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache keeps the labeling page and its downloads out of browser caches
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips or deflates text responses at level
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// RedirectSlashes sends /foo/ to /foo
func RedirectSlashes() func(http.Handler) http.Handler { return chimw.RedirectSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is the subset of go-chi/cors settings the api exposes
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies go-chi/cors, the session header is always exposed to scripts
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: []string{SessionHeader, "Content-Disposition"},
		MaxAge:         o.MaxAge,
	})
}
