// Package service implements device registration and per-device stats.
package service

import (
	"errors"
	"strings"

	"reviewsentry/internal/core/analytics"
	perr "reviewsentry/internal/platform/errors"
	"reviewsentry/internal/services/api/devices/domain"
)

// Service is the devices service
type Service interface {
	domain.ServicePort
}

type svc struct {
	reg domain.Registry
}

// New constructs the devices service over reg
func New(reg domain.Registry) Service {
	if reg == nil {
		panic("devices service: nil registry")
	}
	return &svc{reg: reg}
}

func (s *svc) Register() domain.RegisterResponse {
	d := s.reg.Register()
	return domain.RegisterResponse{
		DeviceID:  d.ID,
		Status:    domain.StatusRegistered,
		Timestamp: d.CreatedAt,
	}
}

// Stats maps an unknown id to a 404 project error
func (s *svc) Stats(id string) (analytics.DeviceStats, error) {
	id = strings.TrimSpace(id)
	st, err := s.reg.DeviceStats(id)
	if errors.Is(err, analytics.ErrDeviceNotFound) {
		return analytics.DeviceStats{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeNotFound, "Device not found"), "device_id")
	}
	return st, err
}
