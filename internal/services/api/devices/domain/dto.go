package domain

import "time"

// StatusRegistered is the status reported for a freshly issued device id
const StatusRegistered = "registered"

// RegisterResponse is returned by POST /device/register
type RegisterResponse struct {
	DeviceID  string    `json:"device_id" example:"0b6f7f1e-4a0e-4c57-9a0a-3f1f3c3e9d11"`
	Status    string    `json:"status"    example:"registered"`
	Timestamp time.Time `json:"timestamp" example:"2025-09-03T13:05:00Z"`
}
