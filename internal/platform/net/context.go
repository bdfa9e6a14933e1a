// Package net holds the transport neutral pieces of the http stack: request ids and the json envelope.
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type deviceKey struct{}

// DeviceHeader lets a client tag any request with its device id
const DeviceHeader = "X-Device-ID"

// WithRequest stores the request id under chi's key, so chimw.GetReqID sees it too.
// Empty ids are skipped
func WithRequest(ctx context.Context, reqID, deviceID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if deviceID != "" {
		ctx = context.WithValue(ctx, deviceKey{}, deviceID)
	}
	return ctx
}

func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// DeviceID is client asserted and untrusted; it only correlates activity in logs
func DeviceID(ctx context.Context) string {
	id, _ := ctx.Value(deviceKey{}).(string)
	return id
}
