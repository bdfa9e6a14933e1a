package middleware

import (
	"net/http"
	"runtime/debug"

	perr "reviewsentry/internal/platform/errors"
	"reviewsentry/internal/platform/logger"
	pnet "reviewsentry/internal/platform/net"
)

// RecoverJSON answers a panicking handler with the 500 envelope.
// The stack is logged and never sent. http.ErrAbortHandler is re-raised
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case http.ErrAbortHandler:
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("internal server error"), reqID)
			pnet.WriteJSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
