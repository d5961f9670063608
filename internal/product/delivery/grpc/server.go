// Package grpc exposes the standard gRPC health service for the catalog,
// with serving status following store reachability.
package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/catalog-service/pkg/logger"
)

// ServiceName is the health service key reported for the catalog.
const ServiceName = "catalog.v1.CatalogService"

// Pinger reports store reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer builds a gRPC server with tracing, metrics and logging and
// registers the health and reflection services on it.
func NewServer(healthSrv *health.Server, metrics *Metrics) *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			metrics.UnaryInterceptor,
			LoggingInterceptor,
		),
	)
	healthpb.RegisterHealthServer(srv, healthSrv)
	reflection.Register(srv)
	return srv
}

// HealthWatcher mirrors store reachability into the health server.
type HealthWatcher struct {
	health   *health.Server
	db       Pinger
	interval time.Duration
}

// NewHealthWatcher accepts a nil db for stores that cannot become unreachable.
func NewHealthWatcher(healthSrv *health.Server, db Pinger, interval time.Duration) *HealthWatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthWatcher{health: healthSrv, db: db, interval: interval}
}

// Check pings the store once and updates the serving status.
func (w *HealthWatcher) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if w.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, w.interval/2)
		err := w.db.PingContext(pingCtx)
		cancel()
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Store unreachable, reporting NOT_SERVING")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	w.health.SetServingStatus("", status)
	w.health.SetServingStatus(ServiceName, status)
	return status
}

// Run checks on every tick until ctx is done.
func (w *HealthWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			w.health.Shutdown()
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}
