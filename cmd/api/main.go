package main

import (
	"context"
	"errors"
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

	"realtyapi/docs"
	"realtyapi/internal/config"
	"realtyapi/internal/database"
	"realtyapi/internal/database/migration"
	"realtyapi/internal/events"
	handlers "realtyapi/internal/http/handler"
	"realtyapi/internal/http/middleware"
	"realtyapi/internal/logger"
	"realtyapi/internal/metrics"
	appotel "realtyapi/internal/otel"
	"realtyapi/internal/repository/postgres"
	"realtyapi/internal/service"
	"realtyapi/internal/storage"
)

// @title Realty Dashboard API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx)
	if err != nil {
		fatal("failed to initialize tracing", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		fatal("failed to migrate database", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		fatal("failed to initialize object storage", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(reg)
	if err != nil {
		fatal("failed to register metrics", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal("failed to register http metrics", err)
	}

	// Repositories
	aggRepo := postgres.NewAggregatePostgres(db)
	propRepo := postgres.NewPropertyPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	notifRepo := postgres.NewNotificationPostgres(db)

	notifier := service.NewNotifier(notifRepo, service.WithNotifierMetrics(appMetrics))

	// Document changes go through Kafka when brokers are configured, otherwise
	// the notifier is called in-process.
	var (
		publisher events.Publisher
		consumer  *events.Consumer
	)
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			fatal("failed to initialize kafka publisher", err)
		}
		defer kp.Close()
		publisher = kp

		consumer, err = events.NewConsumer(cfg.Kafka, notifier.HandleChange)
		if err != nil {
			fatal("failed to initialize kafka consumer", err)
		}
		defer consumer.Close()
	} else {
		slog.Info("kafka not configured, dispatching document changes in-process")
		publisher = events.NewDirectPublisher(notifier.HandleChange)
	}

	svcs := handlers.Services{
		Dashboard: service.NewDashboardService(aggRepo, propRepo,
			service.WithDashboardLocation(loc),
			service.WithDashboardMetrics(appMetrics),
		),
		Documents:     service.NewDocumentService(objStore, docRepo, publisher),
		Notifications: service.NewNotificationService(notifRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Recovery())

	handlers.RegisterRoutes(app, db, reg, cfg.Auth, svcs)

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

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if consumer == nil {
			return
		}
		if err := consumer.Run(ctx); err != nil {
			slog.Error("document change consumer stopped", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		slog.Info("server starting", "addr", addr)
		serverErr <- app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server...")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("server stopped", "error", err)
		}
		stop()
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	<-consumerDone

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		slog.Error("tracing shutdown failed", "error", err)
	}

	slog.Info("server exited gracefully")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
