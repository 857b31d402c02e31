package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
	"github.com/rishii-05/stroke-prediction-project/internal/infrastructure/config"
	kafkainfra "github.com/rishii-05/stroke-prediction-project/internal/infrastructure/kafka"
	"github.com/rishii-05/stroke-prediction-project/internal/infrastructure/ml"
	"github.com/rishii-05/stroke-prediction-project/internal/infrastructure/postgres"
	grpcpresentation "github.com/rishii-05/stroke-prediction-project/internal/presentation/grpc"
	"github.com/rishii-05/stroke-prediction-project/internal/presentation/rest"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
	kafkapkg "github.com/rishii-05/stroke-prediction-project/pkg/kafka"
	"github.com/rishii-05/stroke-prediction-project/pkg/observability"
	pgpkg "github.com/rishii-05/stroke-prediction-project/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting stroke-assessment",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown

	// Load model artifacts. The service refuses to start without a usable
	// classifier and scaler.
	classifier, err := ml.LoadModel(cfg.Model.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "error", err, "path", cfg.Model.ModelPath)
		os.Exit(1)
	}
	scaler, err := ml.LoadScaler(cfg.Model.ScalerPath)
	if err != nil {
		logger.Error("failed to load scaler artifact", "error", err, "path", cfg.Model.ScalerPath)
		os.Exit(1)
	}

	engine, err := service.NewAssessmentEngine(
		service.NewFeatureNormalizer(scaler),
		classifier,
		service.NewRiskPolicy(),
		logger,
	)
	if err != nil {
		logger.Error("failed to build assessment engine", "error", err)
		os.Exit(1)
	}
	logger.Info("risk model loaded",
		"model_path", cfg.Model.ModelPath,
		"scaler_path", cfg.Model.ScalerPath,
		"features", classifier.InputSize(),
	)

	// Initialize database.
	dbCfg := pgpkg.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		AppName:  "strokerd",
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}
	pool, err := pgpkg.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run migrations.
	if migErr := pgpkg.RunMigrations(dbCfg.DSN(), "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Initialize Kafka producer.
	kafkaCfg := kafkapkg.Config{
		Brokers: cfg.Kafka.Brokers,
		TLS:     cfg.Kafka.TLS,
	}
	if cfg.Kafka.SASLUsername != "" {
		kafkaCfg.SASL = &kafkapkg.SASL{
			Mechanism: cfg.Kafka.SASLMechanism,
			Username:  cfg.Kafka.SASLUsername,
			Password:  cfg.Kafka.SASLPassword,
		}
	}
	producer, err := kafkapkg.NewProducer(kafkaCfg)
	if err != nil {
		logger.Error("failed to configure kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	// Wire infrastructure adapters.
	assessmentRepo := postgres.NewAssessmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	publisher := kafkainfra.NewPublisher(producer, cfg.Kafka.AssessmentTopic, logger)

	// JWT service (signing-capable: private key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: cfg.ServiceName,
	}
	switch {
	case os.Getenv("JWT_PRIVATE_KEY") != "":
		jwtCfg.PrivateKeyPEM = os.Getenv("JWT_PRIVATE_KEY")
	case os.Getenv("JWT_PRIVATE_KEY_FILE") != "":
		keyData, keyErr := auth.LoadKeyFromFile(os.Getenv("JWT_PRIVATE_KEY_FILE"))
		if keyErr != nil {
			logger.Error("failed to load JWT private key file", "error", keyErr)
			os.Exit(1)
		}
		jwtCfg.PrivateKeyPEM = keyData
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "dev-secret-change-in-prod" // development only
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	assessUC := usecase.NewAssessPatient(assessmentRepo, publisher, engine)
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)
	listAssessmentsUC := usecase.NewListAssessments(assessmentRepo)
	statsUC := usecase.NewGetAssessmentStats(assessmentRepo)
	registerUC := usecase.NewRegisterUser(userRepo, jwtSvc)
	loginUC := usecase.NewLoginUser(userRepo, jwtSvc)

	// gRPC server.
	grpcHandler := grpcpresentation.NewStrokeServiceHandler(assessUC, getAssessmentUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, fmt.Sprintf(":%d", cfg.GRPCPort), logger, jwtSvc)

	// HTTP server (API, health checks, metrics).
	authHandler := rest.NewAuthHandler(registerUC, loginUC, logger)
	assessmentHandler := rest.NewAssessmentHandler(assessUC, getAssessmentUC, listAssessmentsUC, statsUC, logger)
	healthHandler := rest.NewHealthHandler(
		func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) },
		cfg.ServiceName,
		logger,
	)
	router := rest.NewRouter(authHandler, assessmentHandler, healthHandler, metricsHandler, jwtSvc, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start(ctx)
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.Stop()

	logger.Info("stroke-assessment stopped")
}
