package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name product_service reports under in grpc.health.v1.
const ServiceName = "product_service"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReporter keeps the gRPC health status in step with database reachability.
type HealthReporter struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	log      *logrus.Logger
}

func NewHealthReporter(db Pinger, interval, timeout time.Duration, logger *logrus.Logger) *HealthReporter {
	server := health.NewServer()
	server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthReporter{
		server:   server,
		db:       db,
		interval: interval,
		timeout:  timeout,
		log:      logger,
	}
}

func (h *HealthReporter) Server() healthpb.HealthServer {
	return h.server
}

// Refresh pings the database once and publishes the result.
func (h *HealthReporter) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warnf("gRPC Health: database ping failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus(ServiceName, status)
	h.server.SetServingStatus("", status)
	return status
}

// Run refreshes the status every interval until ctx is done, then marks
// every service NOT_SERVING.
func (h *HealthReporter) Run(ctx context.Context) {
	h.Refresh(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			h.log.Info("gRPC Health: reporter stopped")
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}
