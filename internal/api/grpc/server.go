// Package grpcapi hosts the gRPC listener used for health probes and
// debugging via reflection.
package grpcapi

import (
	"net"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"ai-voice-guard-service/internal/observability"
	"ai-voice-guard-service/internal/observability/metrics"
)

// ServiceName is the health-checked service name.
const ServiceName = "ai.voice.guard.VoiceGuard"

// Server wraps a grpc.Server with health and reflection registered.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

// New creates a gRPC server whose unary calls are recorded in m.
// Health starts as NOT_SERVING until SetServing(true).
func New(m *metrics.Metrics) *Server {
	g := grpc.NewServer(
		grpc.UnaryInterceptor(observability.UnaryServerInterceptor(m)),
	)

	// Register gRPC health check service
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(g, hs)

	// Enable gRPC reflection for debugging tools like grpcurl
	reflection.Register(g)

	s := &Server{grpc: g, health: hs}
	s.SetServing(false)
	return s
}

// SetServing updates the overall and per-service health status.
func (s *Server) SetServing(serving bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Serve accepts connections on lis until Stop or GracefulStop.
func (s *Server) Serve(lis net.Listener) error {
	log.Info().Str("addr", lis.Addr().String()).Msg("gRPC server started")
	return s.grpc.Serve(lis)
}

// GracefulStop marks the server not serving and waits for in-flight calls.
func (s *Server) GracefulStop() {
	s.SetServing(false)
	s.grpc.GracefulStop()
}
