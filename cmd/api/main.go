package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/config"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/dynamo"
	"github.com/picstash/picstash/internal/ingest"
	"github.com/picstash/picstash/internal/logger"
	"github.com/picstash/picstash/internal/postgres"
	"github.com/picstash/picstash/internal/redis"
	"github.com/picstash/picstash/internal/repository"
	transporthttp "github.com/picstash/picstash/internal/transport/http"
	"github.com/picstash/picstash/internal/usecase"
)

func main() {
	// ═══════════════════════════════════════════════
	// Phase 1: Load Configuration
	// ═══════════════════════════════════════════════
	// Read from environment, validate, fail fast if anything’s missing
	cfg := config.LoadFromEnv()

	// ═══════════════════════════════════════════════
	// Phase 2: Setup Observability
	// ═══════════════════════════════════════════════
	// Get logging working BEFORE everything else—you’ll need it
	logg := logger.New(cfg.LogLevel)
	logg.Info("starting application", "version", cfg.Version, "env", cfg.Environment)

	ctx := context.Background()

	// ═══════════════════════════════════════════════
	// Phase 3: Initialize Infrastructure (Object Store, Metadata Store, Redis)
	// ═══════════════════════════════════════════════

	// AWS SDK configuration, shared by S3 and DynamoDB clients
	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		log.Fatalf("💥 failed to load AWS configuration: %v", err)
	}

	// S3 client; a custom endpoint points it at MinIO or localstack
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3ForcePathStyle
	})

	photoStore, err := blob.NewS3Store(s3Client, cfg.PhotoBucket, logg)
	if err != nil {
		log.Fatalf("💥 failed to create photo store: %v", err)
	}
	thumbnailStore, err := blob.NewS3Store(s3Client, cfg.ThumbnailBucket, logg)
	if err != nil {
		log.Fatalf("💥 failed to create thumbnail store: %v", err)
	}
	logg.Info("✓ object stores ready",
		"photo_bucket", cfg.PhotoBucket,
		"thumbnail_bucket", cfg.ThumbnailBucket)

	// Metadata repository, backend selected by configuration
	var photoRepo domain.PhotoRepository
	switch cfg.MetadataBackend {
	case "postgres":
		pgPool, err := postgres.NewPgxPool(cfg.PostgresDSN, logg)
		if err != nil {
			log.Fatalf("💥 failed to connect to postgres: %v", err)
		}
		defer pgPool.Close()
		if err := repository.EnsureSchema(ctx, pgPool); err != nil {
			log.Fatalf("💥 failed to ensure postgres schema: %v", err)
		}
		photoRepo = repository.NewPhotoRepo(pgPool, logg)
		logg.Info("✓ postgres metadata store ready", "dsn", cfg.DatabaseURL())
	default:
		photoRepo = dynamo.NewPhotoRepo(awsCfg, cfg.MetadataTable, logg)
		logg.Info("✓ dynamodb metadata store ready", "table", cfg.MetadataTable)
	}

	// Redis-backed rate limiter; optional, falls back to in-memory
	var limiter transporthttp.Limiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer redisClient.Close()
		limiter = redis.NewFixedWindowLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute, logg)
		logg.Info("✓ redis rate limiter initialized", "addr", cfg.RedisAddr)
	} else if cfg.RateLimitPerMinute > 0 {
		limiter = transporthttp.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	// ═══════════════════════════════════════════════
	// Phase 4: Build Dependency Graph (Stores → Services → Handlers)
	// ═══════════════════════════════════════════════

	uploadSvc := usecase.NewUploadService(photoStore, cfg.UploadURLExpiration, cfg.MaxUploadBytes, logg)
	gallerySvc := usecase.NewGalleryService(photoRepo, photoStore, thumbnailStore, cfg.URLExpiration, logg)
	photoSvc := usecase.NewPhotoService(photoRepo, photoStore, thumbnailStore, logg)
	pipeline := ingest.NewPipeline(photoStore, thumbnailStore, photoRepo, cfg.ThumbnailMaxSize, logg)

	photoHandler := transporthttp.NewPhotoHandler(uploadSvc, gallerySvc, photoSvc, logg)
	eventHandler := transporthttp.NewEventHandler(pipeline, logg)

	logg.Info("✓ services initialized",
		"upload_service", "ready",
		"gallery_service", "ready",
		"ingestion_pipeline", "ready")

	// ═══════════════════════════════════════════════
	// Phase 5: Setup HTTP Transport with Middleware
	// ═══════════════════════════════════════════════

	routerConfig := transporthttp.RouterConfig{
		Logger:         logg,
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
		MaxBodySize:    cfg.MaxBodySize,
	}

	router := transporthttp.NewRouter(routerConfig, photoHandler, eventHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logg.Info("✓ middleware stack configured",
		"cors", cfg.EnableCORS,
		"rate_limit", cfg.RateLimitPerMinute,
	)

	// ═══════════════════════════════════════════════
	// Phase 6: Start Server with Graceful Shutdown
	// ═══════════════════════════════════════════════

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start HTTP server in a goroutine so it doesn’t block
	go func() {
		logg.Info("🚀 server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("💥 server failed to start: %v", err)
		}
	}()

	// Block until we receive a signal (Ctrl+C or SIGTERM from orchestrator)
	<-stop
	logg.Info("🛑 shutdown signal received, draining connections...")

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Gracefully shutdown: finish in-flight requests, then stop
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("💥 server shutdown failed: %v", err)
	}

	logg.Info("✓ server stopped gracefully")
}
