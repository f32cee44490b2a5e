package services

import (
	"sort"

	"mostruario/internal/models"
)

// DefaultGridColumns is the number of cards per grid row
const DefaultGridColumns = 5

// Present orders rows by (band, reference) and groups them by band.
// Each group carries its rows chunked into grid rows of the given width.
func Present(rows []models.CatalogRow, columns int) []models.Group {
	if columns <= 0 {
		columns = DefaultGridColumns
	}

	sorted := make([]models.CatalogRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Band != sorted[j].Band {
			return sorted[i].Band < sorted[j].Band
		}
		return sorted[i].Reference < sorted[j].Reference
	})

	groups := make([]models.Group, 0)
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].Band == sorted[start].Band {
			end++
		}
		groupRows := sorted[start:end:end]
		groups = append(groups, models.Group{
			Band:    sorted[start].Band,
			Rows:    groupRows,
			Grid:    chunkRows(groupRows, columns),
			Divider: len(groups) > 0,
		})
		start = end
	}
	return groups
}

// chunkRows splits rows into consecutive slices of at most size elements
func chunkRows(rows []models.CatalogRow, size int) [][]models.CatalogRow {
	var grid [][]models.CatalogRow
	for i := 0; i < len(rows); i += size {
		end := i + size
		if end > len(rows) {
			end = len(rows)
		}
		grid = append(grid, rows[i:end:end])
	}
	return grid
}
