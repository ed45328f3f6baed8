package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "qtirender/docs"
	"qtirender/internal/config"
	"qtirender/internal/handler"
	"qtirender/internal/notify/noop"
	"qtirender/internal/notify/ses"
	"qtirender/internal/port"
	"qtirender/internal/render"
	"qtirender/internal/repository/postgres"
	"qtirender/internal/router"
	"qtirender/internal/service"
	s3storage "qtirender/internal/storage/s3"
)

// @title QTI Render API
// @version 1.0
// @description Accessible rendering of assessment items with inline blanks, plus learner responses and exports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token.

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	itemRepo := postgres.NewItemRepo(db)
	responseRepo := postgres.NewResponseRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	renderer := render.New(render.Options{
		IDPrefix:         cfg.Render.IDPrefix,
		MaxFragmentBytes: cfg.Render.MaxFragmentBytes,
		Sanitize:         cfg.Render.Sanitize,
		Minify:           cfg.Render.Minify,
	})

	// Initialize render failure alerts
	var notifier port.RenderFailureNotifier
	if cfg.Notify.Provider == "ses" {
		notifier, err = ses.NewSESNotifier(cfg.Notify.Region, cfg.Notify.FromAddress, cfg.Notify.FromName,
			cfg.Notify.Recipients, cfg.Notify.ItemURLBase)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
		log.Printf("Render failure alerts via SES to %d recipient(s)", len(cfg.Notify.Recipients))
	} else {
		notifier = noop.NewNoopNotifier()
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	itemSvc := service.NewItemService(itemRepo, renderer, s3Client, notifier, service.ItemServiceConfig{
		Bucket:         cfg.S3.Bucket,
		PresignExpiry:  cfg.S3.PresignExpiry,
		MaxSourceBytes: cfg.Render.MaxFragmentBytes,
	})
	responseSvc := service.NewResponseService(itemRepo, responseRepo)

	// Initialize handlers
	maxBody := handler.BodyLimit(cfg.Render.MaxFragmentBytes)
	r := router.Setup(authSvc, router.Handlers{
		Render:   handler.NewRenderHandler(renderer, maxBody),
		Item:     handler.NewItemHandler(itemSvc, maxBody),
		Response: handler.NewResponseHandler(itemSvc, responseSvc),
		Health: handler.NewHealthHandler(map[string]port.HealthChecker{
			"database": postgres.NewHealthChecker(db),
			"storage":  s3Client,
		}),
	}, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := service.NewRenderQueueWorker(itemRepo, itemSvc, service.RenderQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		Concurrency:  cfg.Queue.Concurrency,
		Timeout:      time.Duration(cfg.Queue.TimeoutSecs) * time.Second,
	})
	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		stop()
		<-workerDone
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone
	log.Printf("Server stopped")
	return nil
}

// setupLogging installs the default slog handler. The stdlib log package
// writes through it as well.
func setupLogging(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
