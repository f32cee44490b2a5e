package services

import (
	"strings"

	"mostruario/internal/models"
)

// ApplyFilters returns the rows matching every active predicate of criteria, in input order.
// When no predicate is active the result is empty and marked inactive, so callers can tell
// "nothing selected yet" apart from "nothing matched".
func ApplyFilters(rows []models.CatalogRow, criteria models.FilterCriteria) models.FilterResult {
	if !criteria.Active() {
		return models.FilterResult{Active: false}
	}

	bands := make(map[string]struct{}, len(criteria.Bands))
	for _, band := range criteria.Bands {
		bands[band] = struct{}{}
	}
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	matched := make([]models.CatalogRow, 0)
	for _, row := range rows {
		if criteria.HasCode() && row.Code != criteria.Code {
			continue
		}
		if len(bands) > 0 {
			if _, ok := bands[row.Band]; !ok {
				continue
			}
		}
		if criteria.HasStatus() && row.Status != criteria.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(row.Reference), query) &&
			!strings.Contains(strings.ToLower(row.Composition), query) {
			continue
		}
		matched = append(matched, row)
	}

	return models.FilterResult{Active: true, Rows: matched}
}
