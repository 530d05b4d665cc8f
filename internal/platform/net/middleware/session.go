package middleware

import (
	"net/http"

	"labelit/internal/platform/logger"
	pnet "labelit/internal/platform/net"
)

// SessionHeader carries the active labeling session id on every response
const SessionHeader = "X-Labelit-Session"

// SessionPort exposes the id of the session currently being served
type SessionPort interface {
	SessionID() string
}

// Session stamps the active session id on the request context, the request logger and the response
// a nil port or an empty id passes through untouched
func Session(p SessionPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			id := p.SessionID()
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			reqID := pnet.RequestID(ctx)
			ctx = pnet.WithRequest(ctx, reqID, id)
			ctx = logger.WithRequest(ctx, reqID, id)
			w.Header().Set(SessionHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
