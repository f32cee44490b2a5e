package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"mostruario/internal/caching"
	"mostruario/internal/config"
	"mostruario/internal/jobs/background"
	"mostruario/internal/models"
	"mostruario/internal/services"
	"mostruario/pkg/logger"
)

const (
	PageTitle = "MOSTRUÁRIO DIGITAL"
	BrandText = "clami"
)

// JobStatusProvider reports the scheduled background jobs
type JobStatusProvider interface {
	GetJobStatus() []background.JobStatus
}

// CatalogHandlers serves the catalog page and its JSON API
type CatalogHandlers struct {
	catalogSvc services.CatalogService
	cacheSvc   caching.CacheService
	jobs       JobStatusProvider
	assetRoot  string
	logoPath   string
	sourceName string
	log        *logger.Logger
}

// imageExtensions are the only files served from the asset root
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// NewCatalogHandlers creates a new catalog handlers instance. jobs may be nil.
func NewCatalogHandlers(catalogSvc services.CatalogService, cacheSvc caching.CacheService, jobs JobStatusProvider,
	catalogCfg config.CatalogConfig, log *logger.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		catalogSvc: catalogSvc,
		cacheSvc:   cacheSvc,
		jobs:       jobs,
		assetRoot:  catalogCfg.AssetRoot,
		logoPath:   catalogCfg.LogoPath,
		sourceName: filepath.Base(catalogCfg.CSVPath),
		log:        log,
	}
}

type catalogPage struct {
	Title     string
	BrandText string
	HasLogo   bool
	AllOption string
	Footer    string
	View      *models.CatalogView
}

// ProductsResponse is the JSON form of the catalog view
type ProductsResponse struct {
	*models.CatalogView
	LatestUpdate string `json:"ultima_atualizacao_label"`
}

// OptionsResponse carries the selector contents for a supplier code
type OptionsResponse struct {
	models.FilterOptions
	LatestUpdateLabel string `json:"ultima_atualizacao_label"`
}

// DiagnosticsResponse combines catalog and job state
type DiagnosticsResponse struct {
	Catalog models.CatalogDiagnostics `json:"catalog"`
	Jobs    []background.JobStatus    `json:"jobs"`
}

func (h *CatalogHandlers) bindCriteria(c echo.Context) (models.FilterCriteria, error) {
	var criteria models.FilterCriteria
	if err := c.Bind(&criteria); err != nil {
		return criteria, echo.NewHTTPError(http.StatusBadRequest, "Invalid filter parameters")
	}
	return criteria, nil
}

func (h *CatalogHandlers) buildView(c echo.Context) (*models.CatalogView, error) {
	criteria, err := h.bindCriteria(c)
	if err != nil {
		return nil, err
	}
	view, err := h.catalogSvc.BuildView(c.Request().Context(), criteria)
	if err != nil {
		h.log.Warn("catalog view aborted", "error", err)
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "Request cancelled")
	}
	return view, nil
}

// CatalogPage handles GET /
func (h *CatalogHandlers) CatalogPage(c echo.Context) error {
	view, err := h.buildView(c)
	if err != nil {
		return err
	}

	page := catalogPage{
		Title:     PageTitle,
		BrandText: BrandText,
		HasLogo:   h.hasLogo(),
		AllOption: models.AllOption,
		Footer:    "Catálogo gerado localmente — Clami. Atualize o arquivo " + h.sourceName + " para alterar o conteúdo.",
		View:      view,
	}
	return c.Render(http.StatusOK, "catalog.html", page)
}

// ListProducts returns the filtered, grouped catalog
//
//	@Summary		List catalog products
//	@Description	Filters the catalog and returns the rows grouped by band with resolved images and status colors
//	@Tags			Catalog
//	@Produce		json
//	@Param			codigo	query		string		false	"Supplier code, Todos for any"
//	@Param			faixa	query		[]string	false	"Bands"	collectionFormat(multi)
//	@Param			status	query		string		false	"Exact status, Todos for any"
//	@Param			q		query		string		false	"Case-insensitive text matched against reference and composition"
//	@Success		200		{object}	ProductsResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/v1/products [get]
func (h *CatalogHandlers) ListProducts(c echo.Context) error {
	view, err := h.buildView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProductsResponse{
		CatalogView:  view,
		LatestUpdate: view.Options.LatestUpdateLabel(),
	})
}

// GetOptions returns the selector contents
//
//	@Summary		Filter options
//	@Description	Supplier codes, statuses, and the bands and latest update for the selected code
//	@Tags			Catalog
//	@Produce		json
//	@Param			codigo	query		string	false	"Supplier code scoping bands and latest update"
//	@Success		200		{object}	OptionsResponse
//	@Router			/v1/options [get]
func (h *CatalogHandlers) GetOptions(c echo.Context) error {
	opts, err := h.catalogSvc.Options(c.Request().Context(), c.QueryParam("codigo"))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Request cancelled")
	}
	return c.JSON(http.StatusOK, OptionsResponse{
		FilterOptions:     opts,
		LatestUpdateLabel: opts.LatestUpdateLabel(),
	})
}

// GetDiagnostics reports the loaded snapshot, image resolution counts and jobs
//
//	@Summary		Catalog diagnostics
//	@Tags			Operations
//	@Produce		json
//	@Success		200	{object}	DiagnosticsResponse
//	@Router			/v1/diagnostics [get]
func (h *CatalogHandlers) GetDiagnostics(c echo.Context) error {
	resp := DiagnosticsResponse{
		Catalog: h.catalogSvc.Diagnostics(c.Request().Context()),
		Jobs:    []background.JobStatus{},
	}
	if h.jobs != nil {
		resp.Jobs = h.jobs.GetJobStatus()
	}
	return c.JSON(http.StatusOK, resp)
}

// ReloadCatalog drops the memoized catalog and everything cached for it (image probes,
// summaries), then reloads the file
//
//	@Summary		Reload catalog
//	@Tags			Operations
//	@Produce		json
//	@Success		200	{object}	models.CatalogDiagnostics
//	@Failure		503	{object}	map[string]string
//	@Router			/v1/catalog/reload [post]
func (h *CatalogHandlers) ReloadCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cacheSvc != nil {
		if err := h.cacheSvc.InvalidateAllCache(ctx); err != nil {
			h.log.Warn("failed to clear catalog cache", "error", err)
		}
	}

	if err := h.catalogSvc.Refresh(ctx); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Failed to reload catalog: "+err.Error())
	}
	return c.JSON(http.StatusOK, h.catalogSvc.Diagnostics(ctx))
}

// Asset serves an image file from the asset root. Other file types under the root,
// including the catalog itself, are not exposed.
func (h *CatalogHandlers) Asset(c echo.Context) error {
	rel, err := url.PathUnescape(c.Param("*"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid asset path")
	}
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" || !imageExtensions[strings.ToLower(path.Ext(rel))] {
		return echo.NewHTTPError(http.StatusNotFound, "Asset not found")
	}
	return c.File(filepath.Join(h.assetRoot, filepath.FromSlash(rel)))
}

// Logo serves the branding image
func (h *CatalogHandlers) Logo(c echo.Context) error {
	if !h.hasLogo() {
		return echo.NewHTTPError(http.StatusNotFound, "Logo not found")
	}
	return c.File(h.logoPath)
}

func (h *CatalogHandlers) hasLogo() bool {
	if h.logoPath == "" {
		return false
	}
	info, err := os.Stat(h.logoPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.log.Warn("cannot read logo", "path", h.logoPath, "error", err)
		}
		return false
	}
	return info.Mode().IsRegular()
}
