// Package grpchealth exposes the standard gRPC health-checking protocol
// (grpc.health.v1.Health) next to the HTTP health endpoints.
package grpchealth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported as SERVING alongside the empty (whole server) name.
const ServiceName = "calavail.Health"

// NewServer returns a gRPC server with the health service registered and
// every known service marked SERVING.
func NewServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// Serve runs the health server on lis until ctx is cancelled. On shutdown all
// services flip to NOT_SERVING before the server stops.
func Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := NewServer()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting gRPC health server", "listen", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gRPC health server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down gRPC health server")
		hs.Shutdown()
		srv.GracefulStop()
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, lis)
}
