// Package grpcserver exposes a gRPC health-check endpoint so an
// orchestrator (k8s readiness/liveness probes, a supervisor process) can
// watch a long-running hwdata batch job the same way it would watch a
// daemon. Grounded on adapters/grpc/daemon_server.go's
// "grpc.NewServer() + register + Serve(listener)" shape, trimmed down to
// just the health service since nothing else in this engine is served
// over the network.
package grpcserver

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps a gRPC server exposing only the standard health service.
type Server struct {
	listener net.Listener
	grpc     *grpc.Server
	health   *health.Server
}

// NewServer binds addr and registers the health service in the NOT_SERVING
// state; call SetServing once the correlation run has completed.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{listener: listener, grpc: grpcServer, health: healthServer}, nil
}

// Serve blocks until the listener is closed or Stop is called.
func (s *Server) Serve() error {
	return s.grpc.Serve(s.listener)
}

// SetServing flips the health service to SERVING.
func (s *Server) SetServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// SetNotServing flips the health service to NOT_SERVING, e.g. when a
// fatal parse error has aborted the run.
func (s *Server) SetNotServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

// Addr returns the address the server is actually bound to (useful when
// addr was "host:0").
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}
