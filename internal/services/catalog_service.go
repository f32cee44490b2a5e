package services

import (
	"context"
	"fmt"
	"time"

	"mostruario/internal/models"
	"mostruario/internal/repositories"
	"mostruario/pkg/logger"
)

type CatalogService interface {
	// BuildView loads the catalog, filters, groups and decorates the rows for display.
	// Selected bands not offered for the selected code are dropped before filtering.
	// A catalog that cannot be read yields an empty view carrying LoadError.
	BuildView(ctx context.Context, criteria models.FilterCriteria) (*models.CatalogView, error)
	Options(ctx context.Context, code string) (models.FilterOptions, error)
	// Refresh drops the memoized snapshot and loads the file again
	Refresh(ctx context.Context) error
	Diagnostics(ctx context.Context) models.CatalogDiagnostics
	Ready(ctx context.Context) error
}

type catalogService struct {
	repo     repositories.CatalogRepository
	resolver *ImageResolver
	columns  int
	log      *logger.Logger
}

func NewCatalogService(repo repositories.CatalogRepository, resolver *ImageResolver, columns int, log *logger.Logger) CatalogService {
	if columns <= 0 {
		columns = DefaultGridColumns
	}
	return &catalogService{
		repo:     repo,
		resolver: resolver,
		columns:  columns,
		log:      log,
	}
}

func (s *catalogService) BuildView(ctx context.Context, criteria models.FilterCriteria) (*models.CatalogView, error) {
	view := &models.CatalogView{
		Criteria: criteria,
		Columns:  s.columns,
		Groups:   []models.CardGroup{},
	}

	rows, snapshotID, loadErr := s.rows(ctx)
	if loadErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		view.LoadError = loadErr.Error()
	}
	view.SnapshotID = snapshotID
	view.Options = DeriveOptions(rows, criteria.Code)
	criteria.Bands = SelectableBands(criteria.Bands, view.Options.Bands)
	view.Criteria = criteria

	result := ApplyFilters(rows, criteria)
	switch {
	case !result.Active:
		view.State = models.ViewStatePrompt
		view.Message = models.PromptMessage
		return view, nil
	case len(result.Rows) == 0:
		view.State = models.ViewStateNoResults
		view.Message = models.NoResultsMessage
		return view, nil
	}

	view.State = models.ViewStateResults
	view.Total = len(result.Rows)
	for _, group := range Present(result.Rows, s.columns) {
		view.Groups = append(view.Groups, s.decorate(ctx, group))
	}
	return view, nil
}

func (s *catalogService) Options(ctx context.Context, code string) (models.FilterOptions, error) {
	rows, _, err := s.rows(ctx)
	if err != nil && ctx.Err() != nil {
		return models.FilterOptions{}, ctx.Err()
	}
	return DeriveOptions(rows, code), nil
}

func (s *catalogService) Refresh(ctx context.Context) error {
	s.repo.Invalidate()
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Error("catalog refresh failed", "source", s.repo.Source(), "error", err)
		return err
	}
	s.log.Info("catalog refreshed", "source", snapshot.Source, "rows", len(snapshot.Rows), "snapshot", snapshot.ID.String())
	return nil
}

func (s *catalogService) Diagnostics(ctx context.Context) models.CatalogDiagnostics {
	diag := models.CatalogDiagnostics{
		Source: s.repo.Source(),
		Images: s.resolver.Stats(),
	}
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		diag.LoadError = err.Error()
		return diag
	}
	diag.SnapshotID = snapshot.ID.String()
	diag.Rows = snapshot.RowCount()
	diag.LoadedAt = snapshot.LoadedAt.UTC().Format(time.RFC3339)
	return diag
}

func (s *catalogService) Ready(ctx context.Context) error {
	_, err := s.repo.Load(ctx)
	return err
}

// rows returns the snapshot rows, or no rows and a user-facing error when the file
// cannot be read. Processing continues with the empty table.
func (s *catalogService) rows(ctx context.Context) ([]models.CatalogRow, string, error) {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Error("failed to load catalog", "source", s.repo.Source(), "error", err)
		return nil, "", fmt.Errorf("Erro ao ler %s: %w", s.repo.Source(), err)
	}
	return snapshot.Rows, snapshot.ID.String(), nil
}

func (s *catalogService) decorate(ctx context.Context, group models.Group) models.CardGroup {
	cards := models.CardGroup{Band: group.Band, Divider: group.Divider}
	for _, gridRow := range group.Grid {
		line := make([]models.CatalogCard, 0, len(gridRow))
		for _, row := range gridRow {
			line = append(line, models.CatalogCard{
				Row:         row,
				Image:       s.resolver.Resolve(ctx, row),
				StatusColor: ClassifyStatus(row.Status),
			})
		}
		cards.Rows = append(cards.Rows, line)
	}
	return cards
}
