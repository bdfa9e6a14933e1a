// Package http provides http transport for analytics reports.
package http

import (
	stdhttp "net/http"

	"reviewsentry/internal/modkit/httpkit"
	"reviewsentry/internal/services/api/analytics/domain"
	svc "reviewsentry/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// global counters and most active device
	httpkit.Get(r, "/analytics/summary", h.summary)

	// hour of day fake share and rolling windows
	httpkit.Get(r, "/temporal/patterns", h.patterns)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /analytics/summary Analytics analyticsSummary
// @Summary Global review counters by day, ISO week and month
// @Tags Analytics
// @Produce json
// @Success 200 {object} domain.SummaryResponse "ok"
// @Router /analytics/summary [get]
func (h *handlers) summary(_ *stdhttp.Request) (any, error) {
	return httpkit.Flat(h.svc.Summary()), nil
}

// swagger:route GET /temporal/patterns Analytics temporalPatterns
// @Summary Machine generated share per hour of day plus 24h and 7d windows
// @Tags Analytics
// @Produce json
// @Success 200 {object} domain.PatternsResponse "ok, or {message} before the first review"
// @Router /temporal/patterns [get]
func (h *handlers) patterns(_ *stdhttp.Request) (any, error) {
	p, ok := h.svc.TemporalPatterns()
	if !ok {
		return httpkit.Message(domain.NoDataMessage), nil
	}
	return httpkit.Flat(p), nil
}
