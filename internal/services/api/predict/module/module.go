// Package module wires review classification into the API using modkit.
package module

import (
	"net/http"

	"reviewsentry/internal/core/classifier"
	"reviewsentry/internal/core/textfeat"
	modkit "reviewsentry/internal/modkit"
	"reviewsentry/internal/modkit/httpkit"
	"reviewsentry/internal/platform/logger"
	str "reviewsentry/internal/platform/strings"
	"reviewsentry/internal/services/api/predict/domain"
	predhttp "reviewsentry/internal/services/api/predict/http"
	predsvc "reviewsentry/internal/services/api/predict/service"
)

// Ports exposed by the predict module
type Ports struct {
	Status  domain.StatusPort
	Service domain.ServicePort
}

// Module implements the predict module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	svc   predsvc.Service
	ports Ports
}

// New loads the model artifacts and constructs the predict module. A missing or
// invalid artifact is logged and the module serves ModelUnavailable instead of failing.
func New(deps modkit.Deps, rec domain.Recorder, opt Options, opts ...modkit.Option) modkit.Module {
	base := []modkit.Option{modkit.WithName("predict")}
	if opt.RateLimit > 0 {
		base = append(base, modkit.WithMiddlewares(httpkit.RateLimit(opt.RateLimit, opt.RateWindow)))
	}
	b := modkit.Build(append(base, opts...)...)

	clf := opt.Classifier
	if clf == nil {
		clf = load(opt)
	}

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    predsvc.New(clf, rec),
	}
	m.ports = Ports{Status: m.svc, Service: m.svc}
	return m
}

// load returns nil when either artifact is unusable
func load(opt Options) domain.Classifier {
	log := logger.Named("predict")

	vec, err := textfeat.Load(opt.VectorizerPath)
	if err != nil {
		log.Error().Err(err).Str("path", opt.VectorizerPath).Msg("vectorizer not loaded")
		return nil
	}
	model, err := classifier.Load(opt.ModelPath)
	if err != nil {
		log.Error().Err(err).Str("path", opt.ModelPath).Msg("model not loaded")
		return nil
	}
	clf, err := predsvc.NewClassifier(vec, model, opt.Breaker)
	if err != nil {
		log.Error().Err(err).Msg("model and vectorizer do not fit together")
		return nil
	}
	log.Info().
		Int("vocabulary", vec.Dim()).
		Int("features", model.NFeatures()).
		Msg("model and vectorizer loaded")
	return clf
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		predhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "predict") }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
