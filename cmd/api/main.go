package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"carcatalog/docs"
	"carcatalog/internal/auth"
	"carcatalog/internal/config"
	"carcatalog/internal/database"
	"carcatalog/internal/database/migration"
	handlers "carcatalog/internal/http/handler"
	"carcatalog/internal/http/middleware"
	"carcatalog/internal/logging"
	tracing "carcatalog/internal/otel"
	"carcatalog/internal/repository/postgres"
	"carcatalog/internal/service"
	"carcatalog/internal/storage"
)

// @title						Car Catalog API
// @version					1.0
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracing_shutdown_failed", "error", err)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("image_storage_disabled", "reason", "MINIO_ENDPOINT is empty")
	case err != nil:
		return fmt.Errorf("init object storage: %w", err)
	}

	carRepo := postgres.NewCarPostgres(db)
	categoryRepo := postgres.NewCategoryPostgres(db)
	carSvc := service.NewCarService(carRepo, categoryRepo, store, service.Options{
		PageSize:    cfg.Catalog.PageSize,
		MaxPageSize: cfg.Catalog.MaxPageSize,
		ImageURLTTL: time.Duration(cfg.MinIO.PresignTTLSec) * time.Second,
	}, logger)
	categorySvc := service.NewCategoryService(categoryRepo, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	var verifier *auth.Verifier
	if cfg.Auth.JWTSecret != "" {
		if verifier, err = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer); err != nil {
			return fmt.Errorf("init auth: %w", err)
		}
	} else {
		logger.Warn("auth_disabled", "reason", "AUTH_JWT_SECRET is empty")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
		BodyLimit:             10 << 20,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", handlers.Metrics(reg))
	handlers.RegisterRoutes(app, db, carSvc, categorySvc, middleware.BearerAuth(verifier))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logger.Info("server_started", "addr", addr, "public_host", cfg.AppHost)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutting_down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
