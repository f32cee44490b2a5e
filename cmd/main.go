package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mostruario/internal/analytics"
	"mostruario/internal/caching"
	"mostruario/internal/common"
	"mostruario/internal/config"
	_ "mostruario/internal/docs" // swagger docs
	"mostruario/internal/handlers"
	"mostruario/internal/jobs/background"
	"mostruario/internal/middleware"
	"mostruario/internal/repositories"
	"mostruario/internal/services"
	"mostruario/pkg/logger"
)

//	@title			Mostruário Digital API
//	@version		1.0.0
//	@description	Read-only catalog browser: filtered products grouped by band, filter options and operational endpoints.
//	@BasePath		/

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger depends on config, so this is the only plain stderr exit
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// Cache service
	var cacheSvc caching.CacheService
	if cfg.Redis.Addr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	} else {
		log.Info("REDIS_ADDR not set, using in-process cache")
		cacheSvc = caching.NewMemoryCacheService()
	}
	defer cacheSvc.Close()

	// Remote image tier: object store when configured, otherwise the public base URL
	var minioSvc services.MinioService
	var remote services.RemoteImageSource
	if cfg.Minio.Enabled() {
		minioSvc, err = services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatal("failed to initialize MinIO service", "error", err)
		}
		remote = services.NewMinioImageSource(minioSvc, cfg.Minio.Bucket, cfg.Minio.PresignExpiry)
	} else if cfg.Images.BaseURL != "" {
		remote = services.NewBaseURLSource(cfg.Images.BaseURL, cfg.Images.ProbeRemote, cfg.Images.ProbeTTL, cfg.Images.ProbeTimeout, cacheSvc)
	}

	resolver := services.NewImageResolver(cfg.Catalog.AssetRoot, remote, cfg.Images.PlaceholderURL, log.With("component", "image-resolver"))
	catalogRepo := repositories.NewCatalogRepository(cfg.Catalog.CSVPath, cfg.Catalog.CacheTTL)
	catalogSvc := services.NewCatalogService(catalogRepo, resolver, cfg.Catalog.GridColumns, log.With("component", "catalog"))

	// Warm the memo so the first request does not pay for the read
	if err := catalogSvc.Refresh(context.Background()); err != nil {
		log.Warn("catalog not loaded at startup", "path", cfg.Catalog.CSVPath, "error", err)
	}

	scheduler, err := background.NewJobScheduler(catalogSvc, cfg.Jobs, log.With("component", "jobs"))
	if err != nil {
		log.Fatal("failed to create job scheduler", "error", err)
	}

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		log.Fatal("failed to load templates", "error", err)
	}

	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc, cacheSvc, scheduler, cfg.Catalog, log)
	var bucket string
	if minioSvc != nil {
		bucket = cfg.Minio.Bucket
	}
	healthHandlers := handlers.NewHealthHandlers(catalogSvc, cacheSvc, minioSvc, bucket)
	jobHandlers := handlers.NewJobHandlers(scheduler, log)
	analyticsSvc := analytics.NewAnalyticsService(catalogRepo, cacheSvc, cfg.Catalog.CacheTTL, log.With("component", "analytics"))
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc, log)
	if cfg.Jobs.RefreshInterval > 0 {
		err := scheduler.AddJob(background.SummaryRefreshJob, cfg.Jobs.RefreshInterval, func(ctx context.Context) error {
			_, err := analyticsSvc.CatalogSummary(ctx)
			return err
		})
		if err != nil {
			log.Fatal("failed to schedule summary refresh", "error", err)
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = common.HTTPErrorHandler(log, "/v1")

	// Global middleware
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Error("request failed", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.NewAuditMiddleware(log).AuditRequest())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Version middleware
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Page and static files
	e.GET("/", catalogHandlers.CatalogPage)
	e.GET("/branding/logo", catalogHandlers.Logo)
	e.GET(services.AssetURLPrefix+"*", catalogHandlers.Asset)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	v1 := versionMiddleware.VersionRoute(e, "v1")
	v1.GET("/products", catalogHandlers.ListProducts)
	v1.GET("/options", catalogHandlers.GetOptions)
	v1.GET("/diagnostics", catalogHandlers.GetDiagnostics)
	v1.POST("/catalog/reload", catalogHandlers.ReloadCatalog)
	v1.GET("/summary", analyticsHandlers.GetCatalogSummary)
	v1.GET("/jobs", jobHandlers.ListJobs)
	v1.POST("/jobs/:name/run", jobHandlers.RunJob)

	scheduler.Start()

	go func() {
		log.Info("mostruario server starting", "version", handlers.Version, "port", cfg.Server.Port, "catalog", cfg.Catalog.CSVPath)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := scheduler.Stop(); err != nil {
		log.Error("failed to stop job scheduler", "error", err)
	}
	if err := e.Shutdown(ctx); err != nil {
		log.Error("failed to shut down server", "error", err)
	}
}
