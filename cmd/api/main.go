package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"applicantpool/docs"
	"applicantpool/internal/config"
	"applicantpool/internal/database"
	"applicantpool/internal/database/migration"
	handlers "applicantpool/internal/http/handler"
	"applicantpool/internal/http/middleware"
	"applicantpool/internal/logger"
	"applicantpool/internal/otel"
	"applicantpool/internal/repository/postgres"
	"applicantpool/internal/service"
	"applicantpool/internal/storage"
)

// @title Applicant Pool API
// @version 1.0
// @description Ingests job-applicant registration spreadsheets and answers search and statistics queries.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.Error(err))
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Archive for raw uploads: local disk or S3-compatible storage
	archive, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize upload storage", zap.Error(err))
	}

	reg := prometheus.DefaultRegisterer
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}
	ingestMetrics, err := service.NewIngestMetrics(reg)
	if err != nil {
		log.Fatal("failed to register ingest metrics", zap.Error(err))
	}

	// Repositories are stateless; every call receives the session it runs on.
	applicantRepo := postgres.NewApplicantPostgres()
	applicationRepo := postgres.NewApplicationPostgres()

	ingestSvc := service.NewIngestService(
		db,
		archive,
		service.NewApplicantDirectory(applicantRepo),
		service.NewApplicationLedger(applicationRepo),
		log,
		loc,
		ingestMetrics,
	)
	searchSvc := service.NewSearchService(db, applicantRepo, applicationRepo, cfg.ExportDir, log, loc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, ingestSvc, searchSvc)

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

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("server_shutdown")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr), zap.String("timezone", loc.String()))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
