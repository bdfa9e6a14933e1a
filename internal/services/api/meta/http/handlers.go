// Package http serves the meta endpoints: health, readiness, greeting and build info.
package http

import (
	"context"
	"net/http"
	"time"

	"reviewsentry/internal/core/version"
	"reviewsentry/internal/modkit/httpkit"
)

// HelloMessage is the /hello greeting
const HelloMessage = "Hello from Fake Review Detection API!"

const readyTimeout = 2 * time.Second

// Pinger is any backend that can be probed for readiness
type Pinger interface {
	Ping(context.Context) error
}

// EventCounter is the retained event count of the analytics engine
type EventCounter interface {
	Len() int
}

// ModelStatus reports whether the classifier artifacts loaded
type ModelStatus interface {
	ModelLoaded() bool
}

// Deps for the meta handlers. PG and CH are nil when the archive is off;
// a non nil value that is not a Pinger reports as unknown
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Events      EventCounter
	Model       ModelStatus
	PG          any
	CH          any
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/hello", h.hello)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the /health payload
type HealthResponse struct {
	Status         string    `json:"status"          example:"healthy"`
	Timestamp      time.Time `json:"timestamp"       example:"2025-09-03T13:05:00Z"`
	AnalyticsTotal int       `json:"analytics_total" example:"42"`
	ModelLoaded    bool      `json:"model_loaded"    example:"true"`
}

// HelloResponse is the /hello payload
type HelloResponse struct {
	Message string `json:"message" example:"Hello from Fake Review Detection API!"`
	Version string `json:"version" example:"1.0.0"`
}

// ReadyCheck is one dependency probe. Status is ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is the /ready payload. Status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is the /service payload; Uptime is in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"reviewsentry-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check with model status and retained event count
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /health [get]
func (h handlers) health(*http.Request) (any, error) {
	resp := HealthResponse{Status: "healthy", Timestamp: time.Now().UTC(), ModelLoaded: h.loaded()}
	if !resp.ModelLoaded {
		resp.Status = "unhealthy"
	}
	if h.Events != nil {
		resp.AnalyticsTotal = h.Events.Len()
	}
	return httpkit.Flat(resp), nil
}

// @Summary Greeting and API contract version
// @Tags Meta
// @Produce json
// @Success 200 {object} HelloResponse "ok"
// @Router /hello [get]
func (h handlers) hello(*http.Request) (any, error) {
	return httpkit.Flat(HelloResponse{Message: HelloMessage, Version: version.APIVersion}), nil
}

// @Summary Readiness probe with model and store checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	model := ReadyCheck{Name: "model", Status: "ok"}
	if !h.loaded() {
		model.Status, model.Error = "fail", "model not loaded"
	}
	checks := []ReadyCheck{model, probe(ctx, "pg", h.PG), probe(ctx, "ch", h.CH)}
	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.StartedAt).Seconds()),
	}, nil
}

func (h handlers) loaded() bool { return h.Model != nil && h.Model.ModelLoaded() }

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name}
	p, ok := dep.(Pinger)
	switch {
	case dep == nil:
		c.Status = "skipped"
	case !ok:
		c.Status = "unknown"
	default:
		c.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// overall is fail if any check failed, degraded if any is unknown.
// skipped stores do not count against readiness
func overall(checks []ReadyCheck) string {
	status := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "unknown":
			status = "degraded"
		}
	}
	return status
}
