package middleware

import (
	"net/http"
	"time"

	"labelit/internal/platform/logger"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn, 0 never does
	Slow time.Duration
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// AccessLog writes one zerolog line per request through the request scoped logger
// server errors log at error, slow requests at warn
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sr, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case sr.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sr.status).
				Int("bytes", sr.bytes).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
