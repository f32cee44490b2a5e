package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mostruario/internal/analytics"
	"mostruario/pkg/logger"
)

type AnalyticsHandlers struct {
	analyticsSvc *analytics.AnalyticsService
	log          *logger.Logger
}

func NewAnalyticsHandlers(analyticsSvc *analytics.AnalyticsService, log *logger.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsSvc: analyticsSvc, log: log}
}

// GetCatalogSummary returns row counts by status, band and supplier
//
//	@Summary	Catalog summary
//	@Tags		Operations
//	@Produce	json
//	@Success	200	{object}	analytics.CatalogSummary
//	@Failure	503	{object}	map[string]string
//	@Router		/v1/summary [get]
func (h *AnalyticsHandlers) GetCatalogSummary(c echo.Context) error {
	summary, err := h.analyticsSvc.CatalogSummary(c.Request().Context())
	if err != nil {
		h.log.Warn("catalog summary unavailable", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Catalog unavailable")
	}
	return c.JSON(http.StatusOK, summary)
}
