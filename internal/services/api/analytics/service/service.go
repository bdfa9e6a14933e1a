// Package service implements the analytics read service.
package service

import (
	"errors"

	"reviewsentry/internal/core/analytics"
	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/services/api/analytics/domain"
)

// Service is the analytics service
type Service interface {
	domain.ServicePort
}

type svc struct {
	r domain.Reader
}

// New constructs the analytics service over r
func New(r domain.Reader) Service {
	if r == nil {
		panic("analytics service: nil reader")
	}
	return &svc{r: r}
}

func (s *svc) Summary() analytics.Summary { return s.r.Summary() }

func (s *svc) TemporalPatterns() (analytics.TemporalPatterns, bool) {
	p, err := s.r.TemporalPatterns()
	switch {
	case errors.Is(err, analytics.ErrNoData):
		return analytics.TemporalPatterns{}, false
	case err != nil:
		// the engine only fails with ErrNoData; anything else is a bug worth seeing
		logger.Named("analytics").Error().Err(err).Msg("temporal patterns failed")
		return analytics.TemporalPatterns{}, false
	}
	return p, true
}
