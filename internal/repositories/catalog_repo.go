package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"mostruario/internal/models"
	"mostruario/pkg/tabular"
)

// CatalogRepository gives read access to the catalog file
type CatalogRepository interface {
	// Load returns the current snapshot, reading the file only when the memo is stale
	Load(ctx context.Context) (*models.CatalogSnapshot, error)
	// Invalidate drops the memo so the next Load reads the file again
	Invalidate()
	// Source is the path of the catalog file
	Source() string
}

type catalogRepo struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu     sync.RWMutex
	cached *models.CatalogSnapshot
}

// NewCatalogRepository creates a file-backed repository memoized by path, modification
// time and ttl. A non-positive ttl keeps the memo until the file changes.
func NewCatalogRepository(path string, ttl time.Duration) CatalogRepository {
	return newCatalogRepo(path, ttl, time.Now)
}

func newCatalogRepo(path string, ttl time.Duration, now func() time.Time) *catalogRepo {
	return &catalogRepo{path: path, ttl: ttl, now: now}
}

func (r *catalogRepo) Source() string {
	return r.path
}

func (r *catalogRepo) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog %s: %w", r.path, err)
	}
	modTime := info.ModTime()

	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()
	if r.fresh(cached, modTime) {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request may have reloaded while we waited
	if r.fresh(r.cached, modTime) {
		return r.cached, nil
	}

	table, err := tabular.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	snapshot := &models.CatalogSnapshot{
		ID:       uuid.New(),
		Source:   r.path,
		ModTime:  modTime,
		LoadedAt: r.now(),
		Columns:  append([]string(nil), table.Header...),
		Rows:     RowsFromTable(table),
	}
	r.cached = snapshot
	return snapshot, nil
}

func (r *catalogRepo) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}

func (r *catalogRepo) fresh(s *models.CatalogSnapshot, modTime time.Time) bool {
	if s == nil || !s.ModTime.Equal(modTime) {
		return false
	}
	if r.ttl <= 0 {
		return true
	}
	return r.now().Sub(s.LoadedAt) < r.ttl
}

// RowsFromTable projects a decoded table onto catalog rows.
// Recognized columns missing from the header yield empty strings.
func RowsFromTable(t *tabular.Table) []models.CatalogRow {
	idx := make(map[string]int, len(models.CatalogColumns))
	for _, column := range models.CatalogColumns {
		idx[column] = t.Index(column)
	}

	rows := make([]models.CatalogRow, 0, len(t.Records))
	for _, record := range t.Records {
		rows = append(rows, models.CatalogRow{
			Code:        t.Value(record, idx[models.ColumnCode]),
			Band:        t.Value(record, idx[models.ColumnBand]),
			Reference:   t.Value(record, idx[models.ColumnReference]),
			Composition: t.Value(record, idx[models.ColumnComposition]),
			Status:      t.Value(record, idx[models.ColumnStatus]),
			LastUpdated: t.Value(record, idx[models.ColumnLastUpdated]),
			ImagePath:   t.Value(record, idx[models.ColumnImagePath]),
		})
	}
	return rows
}
