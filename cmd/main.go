package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"product_service/config"
	"product_service/internal/clients"
	"product_service/internal/delivery"
	grpcHandler "product_service/internal/delivery/grpc"
	"product_service/internal/repository"
	"product_service/internal/usecase"
	"product_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	logger := setupLogger("info", "json")

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger = setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting Product Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	database, err := db.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBPingTimeout)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()
	logger.Infof("Database connection established (%s).", cfg.DatabaseDriver)

	dialect, err := repository.DialectFor(cfg.DatabaseDriver)
	if err != nil {
		logger.Fatalf("Failed to select SQL dialect: %v", err)
	}
	if err := repository.EnsureSchema(ctx, database, dialect, logger); err != nil {
		logger.Fatalf("Failed to prepare schema: %v", err)
	}

	// --- Wiring ---
	productRepo := repository.NewSQLProductRepository(database, dialect, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)

	gin.SetMode(gin.ReleaseMode)
	router := delivery.NewRouter(productHandler, database, cfg.DBPingTimeout, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.HTTPPort, err)
	}
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	if cfg.SelfCheck {
		baseURL, err := localBaseURL(cfg.HTTPPort)
		if err != nil {
			logger.Fatalf("Self-check: %v", err)
		}
		client := clients.NewProductHTTPClient(baseURL, cfg.DBPingTimeout, logger)
		if err := selfCheck(ctx, client, logger); err != nil {
			logger.Fatalf("%v", err)
		}
	}

	var grpcServer *grpc.Server
	if cfg.GrpcPort != "" {
		reporter := grpcHandler.NewHealthReporter(database, cfg.HealthInterval, cfg.DBPingTimeout, logger)
		go reporter.Run(ctx)

		grpcServer = grpc.NewServer()
		healthpb.RegisterHealthServer(grpcServer, reporter.Server())
		reflection.Register(grpcServer)

		lis, err := net.Listen("tcp", cfg.GrpcPort)
		if err != nil {
			logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
		}
		go func() {
			logger.Infof("gRPC health server listening on %s", cfg.GrpcPort)
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				logger.Fatalf("Failed to serve gRPC: %v", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Warn("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown failed: %v", err)
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
		logger.Info("gRPC server gracefully stopped.")
	}
	logger.Info("Product Service shut down gracefully.")
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
