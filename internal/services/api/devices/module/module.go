// Package module wires device registration and stats into the API using modkit.
package module

import (
	"net/http"

	modkit "reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	str "reviewsentry/internal/platform/strings"
	"reviewsentry/internal/services/api/devices/domain"
	devhttp "reviewsentry/internal/services/api/devices/http"
	devsvc "reviewsentry/internal/services/api/devices/service"
)

// Module implements the devices module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	svc devsvc.Service
}

// New constructs the devices module over the engine registry
func New(_ modkit.Deps, reg domain.Registry, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("devices"), modkit.WithPrefix("/device")}, opts...)...)
	return &Module{
		name:   b.Name,
		prefix: str.MustPrefix(b.Prefix),
		mws:    b.Mw,
		svc:    devsvc.New(reg),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		devhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "devices") }

// Ports returns the devices service for cross module use
func (m *Module) Ports() any { return m.svc }
