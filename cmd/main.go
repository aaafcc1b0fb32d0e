package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-employee-service/docs"
	"github.com/sbilibin2017/gw-employee-service/internal/config"
	"github.com/sbilibin2017/gw-employee-service/internal/hasher"
	"github.com/sbilibin2017/gw-employee-service/internal/health"
	"github.com/sbilibin2017/gw-employee-service/internal/jwt"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/middlewares"
	"github.com/sbilibin2017/gw-employee-service/internal/repositories"
	"github.com/sbilibin2017/gw-employee-service/internal/router"
	"github.com/sbilibin2017/gw-employee-service/internal/services"
	"github.com/sbilibin2017/gw-employee-service/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-employee-service API
// @version 1.0.0
// @description Employee records service with JWT-protected CRUD and profile photo uploads
// @host localhost:8092
// @BasePath /gbc-service/comp3123
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run wires storage, services and routes, serves HTTP (and gRPC health when configured)
// and shuts everything down when ctx is cancelled or a termination signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()
	logger.Log.Infow("Logger initialized", "level", cfg.LogLevel)

	// PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PostgresHost, "port", cfg.PostgresPort, "db", cfg.PostgresDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PostgresMaxOpenConns)
	db.SetMaxIdleConns(cfg.PostgresMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}
	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		return err
	}

	// Redis
	var cache services.EmployeeCache
	if addr := cfg.RedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewEmployeeCacheRepository(rdb, cfg.CacheTTL)
		logger.Log.Infow("Employee cache enabled", "addr", addr, "ttl", cfg.CacheTTL)
	}

	// Kafka
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaEmployeeTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer func() {
			if err := w.Close(); err != nil {
				logger.Log.Errorw("Kafka writer close error", "error", err)
			}
		}()
		kafkaWriter = w
		logger.Log.Infow("Employee events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaEmployeeTopic)
	}

	// Photo storage
	var (
		photos  services.PhotoStore
		uploads http.Handler
	)
	switch cfg.PhotoStorage {
	case config.PhotoStorageS3:
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return err
		}
		photos = s3Store
	default:
		localStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.ContextPath+"/uploads")
		if err != nil {
			return err
		}
		photos = localStore
		uploads = localStore.Handler()
	}

	// Auth
	tokens, err := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExpiration))
	if err != nil {
		return err
	}
	passwords := hasher.New(hasher.WithCost(cfg.BcryptCost))

	// Repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	employeeReadRepo := repositories.NewEmployeeReadRepository(db, middlewares.GetTxFromContext)
	employeeWriteRepo := repositories.NewEmployeeWriteRepository(db, middlewares.GetTxFromContext)

	// Services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, passwords, tokens)
	employeeService := services.NewEmployeeService(employeeReadRepo, employeeWriteRepo, cache, photos, kafkaWriter, middlewares.TxCallbacks{})

	addr := net.JoinHostPort(cfg.AppHost, cfg.AppPort)
	handler := router.New(router.Deps{
		ContextPath:    cfg.ContextPath,
		SwaggerURL:     fmt.Sprintf("http://%s/swagger/doc.json", addr),
		MaxUploadBytes: cfg.UploadMaxBytes,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		DB:             db,
		Tokener:        tokens,
		Auth:           authService,
		Employees:      employeeService,
		Uploads:        uploads,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	var healthSrv *health.Server
	if cfg.GRPCHealthPort != "" {
		healthSrv = health.NewServer(net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort))
		go func() {
			if err := healthSrv.Run(ctxShutdown); err != nil {
				errChan <- fmt.Errorf("gRPC health server failed: %w", err)
			}
		}()
	}

	go func() {
		logger.Log.Infow("HTTP server listening", "addr", addr, "context_path", cfg.ContextPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()
	if healthSrv != nil {
		healthSrv.SetServing(true)
	}

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	if healthSrv != nil {
		healthSrv.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
