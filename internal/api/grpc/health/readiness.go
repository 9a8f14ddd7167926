// Package health publishes database readiness through the standard gRPC
// health checking protocol.
package health

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/parishkeeper/parish-server/internal/logger"
)

// ServiceName is the health service name reported next to the overall "" entry.
const ServiceName = "parish.v1.API"

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readiness keeps the health server in sync with the database.
type Readiness struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewReadiness creates a Readiness that reports NOT_SERVING until the first
// successful check.
func NewReadiness(db Pinger, interval time.Duration, logger *logger.Logger) *Readiness {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	r := &Readiness{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
		logger:   logger,
	}
	r.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return r
}

// Server returns the health service implementation to register.
func (r *Readiness) Server() healthpb.HealthServer {
	return r.server
}

func (r *Readiness) set(status healthpb.HealthCheckResponse_ServingStatus) {
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}

// Check pings the database once and publishes the result.
func (r *Readiness) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := r.db.Ping(ctx); err != nil {
		r.logger.Warn("Readiness: database ping failed", "error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	r.set(status)
	return status
}

// Run checks on every interval until ctx is cancelled, then marks every
// service NOT_SERVING for good.
func (r *Readiness) Run(ctx context.Context) {
	r.Check(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
			r.Check(ctx)
		}
	}
}
