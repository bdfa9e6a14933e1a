// Package httpkit re-exports the platform handler and routing helpers for modules
// so module code never imports internal/platform/net/http directly.
package httpkit

import (
	"net/http"

	phttp "reviewsentry/internal/platform/net/http"
	"reviewsentry/internal/platform/net/http/bind"
)

type (
	// Envelope is the body enveloped endpoints and every error write
	Envelope = phttp.Envelope

	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// maxBody caps JSON request bodies; batch predictions are the largest payload
const maxBody = 1 << 20

// Message returns a flat 200 response carrying only a message
func Message(msg string) Response { return phttp.Message(msg) }

// Flat returns a 200 response written without the envelope
func Flat(data any) Response { return phttp.Flat(data) }

// JSONLenient binds a JSON body that may carry unknown fields.
// An empty body binds the zero T so the service reports what is missing
func JSONLenient[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn, bind.JSONOptions{MaxBytes: maxBody, AllowEmptyBody: true})
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.NoBody(fn)
}
