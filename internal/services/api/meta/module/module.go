// Package module wires meta endpoints into the API using a tiny module.
package module

import (
	"net/http"
	"time"

	modkit "reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	str "reviewsentry/internal/platform/strings"

	metahttp "reviewsentry/internal/services/api/meta/http"
)

// ServiceName is reported by /service
const ServiceName = "reviewsentry-api"

// Ports are the status sources the meta endpoints report on
type Ports struct {
	Events metahttp.EventCounter
	Model  metahttp.ModelStatus
}

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	deps   metahttp.Deps
}

// New constructs a meta module. Status sources arrive through modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	p, _ := b.Ports.(Ports)

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		deps: metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   time.Now(),
			Events:      p.Events,
			Model:       p.Model,
			PG:          deps.PG,
			CH:          deps.CH,
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
