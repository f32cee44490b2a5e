package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"mostruario/internal/caching"
	"mostruario/internal/services"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

const checkTimeout = 2 * time.Second

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	catalogSvc services.CatalogService
	cacheSvc   caching.CacheService
	minioSvc   services.MinioService
	bucket     string
	startedAt  time.Time
}

// NewHealthHandlers creates a new health handlers instance. minioSvc may be nil when
// images are not served from an object store.
func NewHealthHandlers(catalogSvc services.CatalogService, cacheSvc caching.CacheService, minioSvc services.MinioService, bucket string) *HealthHandlers {
	return &HealthHandlers{
		catalogSvc: catalogSvc,
		cacheSvc:   cacheSvc,
		minioSvc:   minioSvc,
		bucket:     bucket,
		startedAt:  time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports every dependency. A failing dependency degrades the status but
// the process itself is still alive.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string),
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Version:    Version,
		Goroutines: runtime.NumGoroutine(),
	}

	for name, err := range h.runChecks(ctx) {
		if err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
			continue
		}
		health.Services[name] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	failures := make(map[string]string)
	for name, err := range h.runChecks(ctx) {
		if err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"message":  "Critical services unavailable",
			"failures": failures,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

func (h *HealthHandlers) runChecks(ctx context.Context) map[string]error {
	checks := map[string]error{
		"catalog": h.catalogSvc.Ready(ctx),
	}
	if h.cacheSvc != nil {
		checks["cache"] = h.cacheSvc.Ping(ctx)
	}
	if h.minioSvc != nil {
		checks["storage"] = h.checkMinIO(ctx)
	}
	return checks
}

// checkMinIO verifies the image bucket is reachable
func (h *HealthHandlers) checkMinIO(ctx context.Context) error {
	exists, err := h.minioSvc.BucketExists(ctx, h.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", h.bucket)
	}
	return nil
}
