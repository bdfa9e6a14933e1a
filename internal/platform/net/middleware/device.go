package middleware

import (
	"net/http"
	"strings"

	"reviewsentry/internal/platform/logger"
	pnet "reviewsentry/internal/platform/net"
)

const maxDeviceHeaderLen = 128

// RequestContext copies the request id and any X-Device-ID header onto the context
// for both the net getters and the request scoped logger. Mount after RequestID
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := pnet.RequestID(ctx)

			dev := strings.TrimSpace(r.Header.Get(pnet.DeviceHeader))
			if len(dev) > maxDeviceHeaderLen {
				dev = ""
			}

			ctx = pnet.WithRequest(ctx, reqID, dev)
			ctx = logger.WithRequest(ctx, reqID, dev)
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
