// Package health exposes the standard gRPC health service for orchestrator probes.
package health

import (
	"context"
	"net"

	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "gw-employee-service"

// Server reports SERVING while the HTTP API is up.
type Server struct {
	address string
	grpc    *grpc.Server
	health  *health.Server
}

// NewServer creates a health server that will listen on address. Everything starts NOT_SERVING.
func NewServer(address string) *Server {
	h := health.NewServer()
	h.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, h)

	return &Server{address: address, grpc: srv, health: h}
}

// SetServing flips the reported status of the service.
func (s *Server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done, then reports NOT_SERVING and stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		logger.Log.Info("Stopping gRPC health server...")
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()

	logger.Log.Infow("Starting gRPC health server", "address", lis.Addr().String())
	return s.grpc.Serve(lis)
}
