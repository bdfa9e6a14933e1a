package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"reviewsentry/internal/platform/net/middleware"
)

// CommonStack returns the baseline per module middleware slice
// request id and device context come first so the access log can see them.
// No origins means any origin
func CommonStack(corsOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Second, Metrics: true}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins, MaxAge: 300}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// RateLimit is the per IP limiter for modules that take abusable input
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return middleware.RateLimitByIP(limit, window)
}
