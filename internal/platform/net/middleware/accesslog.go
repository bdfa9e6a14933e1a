// Package middleware holds the http middleware stack.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	mw "github.com/go-chi/chi/v5/middleware"

	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/platform/metrics"
)

// AccessLogOptions tunes AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs at warn at or above this latency; 0 never does
	Slow time.Duration

	// Metrics feeds the api request counter and histogram
	Metrics bool
}

// AccessLogZerolog writes one line per request through the request logger
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := mw.NewWrapResponseWriter(w, r.ProtoMajor)
			if opt.Metrics {
				metrics.TrackActiveRequest(true)
				defer metrics.TrackActiveRequest(false)
			}
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r)
			if opt.Metrics {
				metrics.RecordAPIRequest(r.Method, route, status, took)
			}

			l := logger.C(r.Context())
			ev := l.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				ev = l.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}

// routeLabel is the chi pattern, never the raw path, so ids do not become label values
func routeLabel(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc == nil || rc.RoutePattern() == "" {
		return "unmatched"
	}
	return rc.RoutePattern()
}
