package application

import (
	"context"
	"time"

	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// HealthStatus values reported by HealthService.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// HealthReport is the result of a single health probe.
type HealthReport struct {
	Status  string
	Storage string // "ok" or the storage error message.
	Time    time.Time
}

// HealthService probes the storage backend for the health endpoint.
type HealthService struct {
	storage driven.Pinger
	timeout time.Duration
}

// NewHealthService creates a new HealthService. Each probe is bounded by a
// two second timeout.
func NewHealthService(storage driven.Pinger) *HealthService {
	return &HealthService{
		storage: storage,
		timeout: 2 * time.Second,
	}
}

// Check pings storage and reports HealthStatusDegraded if it fails.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := HealthReport{
		Status:  HealthStatusOK,
		Storage: HealthStatusOK,
		Time:    time.Now().UTC(),
	}

	if err := s.storage.Ping(ctx); err != nil {
		report.Status = HealthStatusDegraded
		report.Storage = err.Error()
	}

	return report
}
