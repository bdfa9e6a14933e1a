// Package module wires analytics reports into the API using modkit.
package module

import (
	"net/http"

	modkit "reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	str "reviewsentry/internal/platform/strings"
	"reviewsentry/internal/services/api/analytics/domain"
	anhttp "reviewsentry/internal/services/api/analytics/http"
	ansvc "reviewsentry/internal/services/api/analytics/service"
)

// Module implements the analytics module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	svc ansvc.Service
}

// New constructs the analytics module over the engine read side.
// Routes live at /analytics/... and /temporal/... so the default prefix is empty
func New(_ modkit.Deps, reader domain.Reader, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analytics")}, opts...)...)
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    ansvc.New(reader),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		anhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "analytics") }

// Ports returns the analytics service for cross module use
func (m *Module) Ports() any { return m.svc }
