package services

import (
	"context"
	"log/slog"
	"os"
	"time"

	"trunkreport/internal/files"
)

// HealthStatus is the payload returned by the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	BuildTime string    `json:"build_time"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check reports the state of one dependency.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthService reports service liveness and build information.
type HealthService struct {
	version   string
	buildTime string
	artifacts *files.Manager
	logger    *slog.Logger
}

// NewHealthService creates a health service with build information.
func NewHealthService(version, buildTime string, artifacts *files.Manager, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		artifacts: artifacts,
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Status runs the dependency checks and aggregates an overall status.
func (s *HealthService) Status(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Version:   s.version,
		BuildTime: s.buildTime,
		Timestamp: time.Now().UTC(),
	}

	check := Check{Name: "processed_dir", Status: "ok"}
	if info, err := os.Stat(s.artifacts.Dir()); err != nil {
		check.Status = "degraded"
		check.Detail = err.Error()
		status.Status = "degraded"
	} else if !info.IsDir() {
		check.Status = "failed"
		check.Detail = "not a directory"
		status.Status = "unhealthy"
	}
	status.Checks = append(status.Checks, check)

	return status
}

// Version returns the build version string.
func (s *HealthService) Version() string {
	return s.version
}
