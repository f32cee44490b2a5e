package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"mostruario/internal/caching"
	"mostruario/internal/models"
	"mostruario/internal/repositories"
	"mostruario/internal/services"
	"mostruario/pkg/logger"
)

// CatalogSummary aggregates a catalog snapshot for the operations endpoints
type CatalogSummary struct {
	SnapshotID       string         `json:"snapshot_id"`
	Rows             int            `json:"rows"`
	Suppliers        int            `json:"suppliers"`
	ByStatus         map[string]int `json:"by_status"`
	ByStatusColor    map[string]int `json:"by_status_color"`
	ByBand           map[string]int `json:"by_band"`
	MissingImagePath int            `json:"missing_image_path"`
	LatestUpdate     string         `json:"latest_update"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

// AnalyticsService computes catalog summaries and caches them per snapshot
type AnalyticsService struct {
	repo         repositories.CatalogRepository
	cacheService caching.CacheService
	ttl          time.Duration
	log          *logger.Logger
	now          func() time.Time

	mu      sync.Mutex
	lastKey string
}

func NewAnalyticsService(repo repositories.CatalogRepository, cacheService caching.CacheService, ttl time.Duration, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:         repo,
		cacheService: cacheService,
		ttl:          ttl,
		log:          log,
		now:          time.Now,
	}
}

// CatalogSummary returns the summary of the current snapshot. A snapshot is immutable,
// so a cached summary stays valid for as long as its snapshot ID is current.
func (a *AnalyticsService) CatalogSummary(ctx context.Context) (*CatalogSummary, error) {
	snapshot, err := a.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for summary: %w", err)
	}

	key := caching.Key("summary", snapshot.ID.String())
	a.dropPrevious(ctx, key)
	if cached, err := a.cacheService.GetString(ctx, key); err == nil && cached != "" {
		var summary CatalogSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
		a.log.Warn("discarding unreadable cached summary", "key", key)
	}

	summary := Summarize(snapshot.Rows)
	summary.SnapshotID = snapshot.ID.String()
	summary.GeneratedAt = a.now().UTC()

	if data, err := json.Marshal(summary); err == nil {
		if err := a.cacheService.SetString(ctx, key, string(data), a.ttl); err != nil {
			a.log.Warn("failed to cache catalog summary", "error", err)
		}
	}
	return &summary, nil
}

// Summarize counts rows by status, status color, band and supplier
func Summarize(rows []models.CatalogRow) CatalogSummary {
	summary := CatalogSummary{
		Rows:          len(rows),
		ByStatus:      make(map[string]int),
		ByStatusColor: make(map[string]int),
		ByBand:        make(map[string]int),
	}

	suppliers := make(map[string]struct{})
	for _, row := range rows {
		summary.ByStatus[row.Status]++
		summary.ByStatusColor[services.ClassifyStatus(row.Status).Name]++
		summary.ByBand[row.Band]++
		if row.Code != "" {
			suppliers[row.Code] = struct{}{}
		}
		if row.ImagePath == "" {
			summary.MissingImagePath++
		}
	}
	summary.Suppliers = len(suppliers)

	summary.LatestUpdate = "-"
	if latest, ok := services.LatestUpdate(rows); ok {
		summary.LatestUpdate = latest.Format("02/01/2006")
	}
	return summary
}

// dropPrevious deletes the summary of the snapshot served before key. Summaries of
// replaced snapshots are never read again.
func (a *AnalyticsService) dropPrevious(ctx context.Context, key string) {
	a.mu.Lock()
	previous := a.lastKey
	a.lastKey = key
	a.mu.Unlock()

	if previous == "" || previous == key {
		return
	}
	if err := a.cacheService.Delete(ctx, previous); err != nil {
		a.log.Warn("failed to drop previous catalog summary", "key", previous, "error", err)
	}
}
