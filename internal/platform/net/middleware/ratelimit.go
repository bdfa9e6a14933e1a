package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	perr "reviewsentry/internal/platform/errors"
	pnet "reviewsentry/internal/platform/net"
)

// RateLimitByIP allows limit requests per window per client ip.
// Rejections get the 429 envelope. limit <= 0 disables the limiter
func RateLimitByIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			status, body := pnet.Error(perr.TooManyRequestsf("rate limit exceeded, retry later"), pnet.RequestID(r.Context()))
			pnet.WriteJSON(w, status, body)
		}),
	)
}
