package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
	"github.com/rishii-05/stroke-prediction-project/pkg/tlsutil"
)

// Server serves the stroke assessment gRPC API together with the standard
// health service.
type Server struct {
	address    string
	grpcServer *grpc.Server
	handler    *StrokeServiceHandler
	logger     *slog.Logger
}

// NewServer assembles the gRPC server: auth interceptor, optional TLS from
// the environment, health service, and the assessment handler.
func NewServer(handler *StrokeServiceHandler, address string, logger *slog.Logger, jwtService *auth.JWTService) *Server {
	grpcServer := grpc.NewServer(serverOptions(logger, jwtService)...)

	RegisterStrokeServiceServer(grpcServer, handler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("stroke-assessment", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Reflection stays off unless explicitly requested; grpcurl against
	// production should not enumerate the API by default.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:    address,
		grpcServer: grpcServer,
		handler:    handler,
		logger:     logger,
	}
}

func serverOptions(logger *slog.Logger, jwtService *auth.JWTService) []grpc.ServerOption {
	// Health probes authenticate with nothing, so they bypass the token check.
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})),
	}

	certFile := os.Getenv("GRPC_TLS_CERT_FILE")
	keyFile := os.Getenv("GRPC_TLS_KEY_FILE")
	if certFile == "" || keyFile == "" {
		logger.Info("gRPC TLS not configured, running without TLS")
		return opts
	}

	creds, err := tlsutil.ServerTLSConfig(certFile, keyFile)
	if err != nil {
		logger.Error("failed to load TLS credentials, starting without TLS", "error", err)
		return opts
	}

	logger.Info("gRPC TLS enabled", "cert", certFile, "key", keyFile)
	return append(opts, grpc.Creds(creds))
}

// Start listens on the configured address and serves until ctx is cancelled
// or the server fails.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.logger.Info("gRPC server starting", slog.String("address", s.address))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down gRPC server")
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.grpcServer.GracefulStop()
}
