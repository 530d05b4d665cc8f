package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"labelit/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration // per request, default 30s
	SlowRequest time.Duration // access log warn threshold, default 500ms
	CORS        middleware.CORSOptions
}

// CommonStack is the chain both the pages and the api run behind
// Session goes last so the session id lands on the request scoped logger
func CommonStack(o StackOptions, session middleware.SessionPort) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Session(session),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
