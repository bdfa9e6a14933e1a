// Package module defines the contract api.Mount expects from a module.
package module

import (
	phttp "reviewsentry/internal/platform/net/http"
)

// Module mounts routes and exposes the ports other modules consume
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
