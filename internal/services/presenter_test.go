package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mostruario/internal/models"
)

func TestPresent_SortsAndGroupsByBand(t *testing.T) {
	rows := []models.CatalogRow{
		{Band: "B", Reference: "R9"},
		{Band: "A", Reference: "R2"},
		{Band: "B", Reference: "R1"},
		{Band: "A", Reference: "R1"},
	}

	groups := Present(rows, 5)

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Band)
	assert.Equal(t, []string{"R1", "R2"}, references(groups[0].Rows))
	assert.False(t, groups[0].Divider)
	assert.Equal(t, "B", groups[1].Band)
	assert.Equal(t, []string{"R1", "R9"}, references(groups[1].Rows))
	assert.True(t, groups[1].Divider)
}

func TestPresent_ChunksGrid(t *testing.T) {
	rows := make([]models.CatalogRow, 0, 12)
	for _, ref := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"} {
		rows = append(rows, models.CatalogRow{Band: "A", Reference: ref})
	}

	groups := Present(rows, 5)

	require.Len(t, groups, 1)
	grid := groups[0].Grid
	require.Len(t, grid, 3)
	assert.Len(t, grid[0], 5)
	assert.Len(t, grid[1], 5)
	assert.Len(t, grid[2], 2)
	assert.Equal(t, "11", grid[2][0].Reference)
}

func TestPresent_DefaultsColumns(t *testing.T) {
	rows := make([]models.CatalogRow, 7)
	for i := range rows {
		rows[i] = models.CatalogRow{Band: "A"}
	}

	groups := Present(rows, 0)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Grid, 2)
	assert.Len(t, groups[0].Grid[0], DefaultGridColumns)
}

func TestPresent_NoRowOmittedOrDuplicated(t *testing.T) {
	rows := sampleRows()

	groups := Present(rows, 2)

	var flattened []models.CatalogRow
	for _, g := range groups {
		for _, line := range g.Grid {
			flattened = append(flattened, line...)
		}
	}
	assert.ElementsMatch(t, rows, flattened)
}

func TestPresent_EmptyBandGroupsFirst(t *testing.T) {
	rows := []models.CatalogRow{
		{Band: "A", Reference: "R1"},
		{Band: "", Reference: "R2"},
	}

	groups := Present(rows, 5)

	require.Len(t, groups, 2)
	assert.Equal(t, "", groups[0].Band)
	assert.Equal(t, "A", groups[1].Band)
}

func TestPresent_DoesNotReorderInput(t *testing.T) {
	rows := []models.CatalogRow{{Band: "B"}, {Band: "A"}}

	Present(rows, 5)

	assert.Equal(t, "B", rows[0].Band)
	assert.Empty(t, Present(nil, 5))
}
