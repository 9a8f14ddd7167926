package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/parishkeeper/parish-server/internal/api/grpc/middleware"
	"github.com/parishkeeper/parish-server/internal/logger"
)

// Router builds the gRPC server that exposes parish readiness.
type Router struct {
	health healthpb.HealthServer
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(health healthpb.HealthServer, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

// Register creates the gRPC server with recovery and logging interceptors and
// registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryHandler := logging.RecoveryHandler()

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryHandler),
			logging.UnaryInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryHandler),
			logging.StreamInterceptor(),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
