package modkit

import "net/http"

// Built is what a module constructor resolves its options into
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Option adjusts a Built
type Option func(*Built)

// Build folds opts left to right
func Build(opts ...Option) Built {
	var b Built
	for _, apply := range opts {
		apply(&b)
	}
	return b
}

// WithName is the module name used in logs
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix instead of at the api root
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares wraps only this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw[:len(b.Mw):len(b.Mw)], mw...) }
}

// WithPorts passes p through Built.Ports; the module asserts its concrete type
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }
