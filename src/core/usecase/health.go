package usecase

import (
	"context"
	"log/slog"
	"time"

	"inventory/src/core/ports"
)

// HealthService reports liveness and the reachability of the store.
type HealthService struct {
	store   ports.Repository
	backend string
	started time.Time
	log     *slog.Logger
}

// NewHealthService creates a new HealthService. backend names the store
// driver in detailed reports.
func NewHealthService(store ports.Repository, backend string, log *slog.Logger) *HealthService {
	return &HealthService{
		store:   store,
		backend: backend,
		started: time.Now(),
		log:     log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Uptime     string                     `json:"uptime,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether every component is up.
func (s *HealthStatus) Healthy() bool {
	return s.Status == "ok"
}

// Live reports that the process is serving requests.
func (s *HealthService) Live() *HealthStatus {
	return &HealthStatus{Status: "ok"}
}

// Check pings the store and reports "degraded" when it is unreachable.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Components: make(map[string]ComponentHealth),
	}

	start := time.Now()
	err := s.store.Health(ctx)
	component := ComponentHealth{
		Status:  "healthy",
		Backend: s.backend,
		Latency: time.Since(start).String(),
	}
	if err != nil {
		s.log.Warn("store health check failed", "backend", s.backend, "error", err)
		status.Status = "degraded"
		component.Status = "unhealthy"
		component.Message = err.Error()
	}
	status.Components["store"] = component

	return status
}
