// Package module wires the archive exporter and exposes its ports.
package module

import (
	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	dom "reviewsentry/internal/services/archive/domain"
	"reviewsentry/internal/services/archive/repo"
	"reviewsentry/internal/services/archive/service"
)

// Ports holds the ports exposed by the archive module
type Ports struct {
	Sink   analytics.Sink
	Runner dom.RunnerPort
}

// Module defines the archive worker module
type Module struct {
	deps  modkit.Deps
	svc   *service.Exporter
	ports Ports
}

// Enabled reports whether deps carry any archive backend
func Enabled(deps modkit.Deps) bool { return deps.PG != nil || deps.CH != nil }

// New constructs the archive module. Callers check Enabled first
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.QueueSize != 0 {
		opts.QueueSize = overrides.QueueSize
	}
	if overrides.BatchSize != 0 {
		opts.BatchSize = overrides.BatchSize
	}
	if overrides.FlushInterval != 0 {
		opts.FlushInterval = overrides.FlushInterval
	}
	if overrides.FlushTimeout != 0 {
		opts.FlushTimeout = overrides.FlushTimeout
	}

	var col dom.ColumnWriter
	if deps.CH != nil {
		col = repo.NewCH(deps.CH)
	}

	svc := service.New(deps.PG, repo.NewPG(), col, service.Config{
		QueueSize:     opts.QueueSize,
		BatchSize:     opts.BatchSize,
		FlushInterval: opts.FlushInterval,
		FlushTimeout:  opts.FlushTimeout,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{
		Sink:   svc,
		Runner: svc,
	}
	return m
}

// Exporter returns the underlying exporter
func (m *Module) Exporter() *service.Exporter { return m.svc }

// Ports returns the module ports (Sink, Runner)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "archive" }

// MountRoutes is a no-op; the exporter has no HTTP surface
func (m *Module) MountRoutes(_ httpkit.Router) {}
