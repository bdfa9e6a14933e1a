// Package http provides http transport for devices.
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"reviewsentry/internal/modkit/httpkit"
	svc "reviewsentry/internal/services/api/devices/service"
)

// Register mounts device endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// issue an anonymous device id
	httpkit.Post(r, "/register", h.register)

	// posting pattern report for one device
	httpkit.Get(r, "/{device_id}/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /device/register Devices deviceRegister
// @Summary Issue an anonymous device id
// @Tags Devices
// @Produce json
// @Success 200 {object} domain.RegisterResponse "ok"
// @Router /device/register [post]
func (h *handlers) register(_ *stdhttp.Request) (any, error) {
	return httpkit.Flat(h.svc.Register()), nil
}

// swagger:route GET /device/{device_id}/stats Devices deviceStats
// @Summary Posting hours, weekdays and recent activity for a device
// @Tags Devices
// @Produce json
// @Param device_id path string true "Device id"
// @Success 200 {object} analytics.DeviceStats "ok"
// @Failure 404 {object} httpkit.Envelope "device not found"
// @Router /device/{device_id}/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	st, err := h.svc.Stats(chi.URLParam(r, "device_id"))
	if err != nil {
		return nil, err
	}
	return httpkit.Flat(st), nil
}
