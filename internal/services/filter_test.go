package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mostruario/internal/models"
)

func sampleRows() []models.CatalogRow {
	return []models.CatalogRow{
		{Code: "001", Band: "A", Reference: "R1", Composition: "100% Algodão", Status: "Ativo"},
		{Code: "002", Band: "B", Reference: "R2", Composition: "Poliéster", Status: "Fora de linha"},
		{Code: "001", Band: "B", Reference: "R3", Composition: "Linho misto", Status: "Suspenso"},
		{Code: "003", Band: "A", Reference: "Tecido R4", Composition: "algodão penteado", Status: "Ativo"},
		{Code: "002", Band: "C", Reference: "R5", Composition: "", Status: ""},
	}
}

func references(rows []models.CatalogRow) []string {
	refs := make([]string, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, r.Reference)
	}
	return refs
}

func TestApplyFilters_ByCodeScenario(t *testing.T) {
	rows := []models.CatalogRow{
		{Code: "001", Band: "A", Reference: "R1", Status: "Ativo"},
		{Code: "002", Band: "B", Reference: "R2", Status: "Fora de linha"},
	}

	result := ApplyFilters(rows, models.FilterCriteria{Code: "001"})

	assert.True(t, result.Active)
	assert.Equal(t, []string{"R1"}, references(result.Rows))
}

func TestApplyFilters_QueryIsCaseInsensitiveScenario(t *testing.T) {
	rows := []models.CatalogRow{
		{Code: "001", Band: "A", Reference: "R1", Status: "Ativo"},
		{Code: "002", Band: "B", Reference: "R2", Status: "Fora de linha"},
	}

	result := ApplyFilters(rows, models.FilterCriteria{Query: "r2"})

	assert.True(t, result.Active)
	assert.Equal(t, []string{"R2"}, references(result.Rows))
}

func TestApplyFilters_NoCriteria(t *testing.T) {
	for _, criteria := range []models.FilterCriteria{
		{},
		{Code: models.AllOption, Status: models.AllOption},
		{Code: " ", Query: "   "},
	} {
		result := ApplyFilters(sampleRows(), criteria)
		assert.False(t, result.Active, "criteria %+v should be inactive", criteria)
		assert.Empty(t, result.Rows)
	}
}

func TestApplyFilters_ValuesNamedAllAreMatchedLiterally(t *testing.T) {
	rows := []models.CatalogRow{
		{Code: "ALL", Band: "A", Reference: "R1", Status: "All"},
		{Code: "002", Band: "A", Reference: "R2", Status: "Ativo"},
	}

	byCode := ApplyFilters(rows, models.FilterCriteria{Code: "ALL"})
	byStatus := ApplyFilters(rows, models.FilterCriteria{Status: "All"})

	assert.True(t, byCode.Active)
	assert.Equal(t, []string{"R1"}, references(byCode.Rows))
	assert.True(t, byStatus.Active)
	assert.Equal(t, []string{"R1"}, references(byStatus.Rows))
}

func TestApplyFilters_NoMatchesIsActive(t *testing.T) {
	result := ApplyFilters(sampleRows(), models.FilterCriteria{Status: "NonExistent"})

	assert.True(t, result.Active)
	assert.Empty(t, result.Rows)
	assert.NotNil(t, result.Rows)
}

func TestApplyFilters_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.FilterCriteria
		expected []string
	}{
		{"bands", models.FilterCriteria{Bands: []string{"B", "C"}}, []string{"R2", "R3", "R5"}},
		{"status exact", models.FilterCriteria{Status: "Ativo"}, []string{"R1", "Tecido R4"}},
		{"status is not a substring match", models.FilterCriteria{Status: "Ativ"}, []string{}},
		{"query on composition", models.FilterCriteria{Query: "ALGODÃO"}, []string{"R1", "Tecido R4"}},
		{"query on reference", models.FilterCriteria{Query: "tecido"}, []string{"Tecido R4"}},
		{"query is trimmed", models.FilterCriteria{Query: "  linho "}, []string{"R3"}},
		{"code and band", models.FilterCriteria{Code: "001", Bands: []string{"B"}}, []string{"R3"}},
		{"all four", models.FilterCriteria{Code: "003", Bands: []string{"A"}, Status: "Ativo", Query: "r4"}, []string{"Tecido R4"}},
		{"sentinel code with band", models.FilterCriteria{Code: models.AllOption, Bands: []string{"A"}}, []string{"R1", "Tecido R4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyFilters(sampleRows(), tt.criteria)
			require.True(t, result.Active)
			assert.Equal(t, tt.expected, references(result.Rows))
		})
	}
}

func TestApplyFilters_CompositionEqualsIntersection(t *testing.T) {
	rows := sampleRows()
	for _, code := range []string{"001", "002", "003"} {
		for _, status := range []string{"Ativo", "Fora de linha", "Suspenso", ""} {
			combined := ApplyFilters(rows, models.FilterCriteria{Code: code, Status: status})
			byCode := ApplyFilters(rows, models.FilterCriteria{Code: code})
			byStatus := ApplyFilters(rows, models.FilterCriteria{Status: status})

			expected := intersect(byCode.Rows, byStatus.Rows)
			if status == "" {
				// an empty status selector is "no restriction"
				expected = byCode.Rows
			}
			assert.ElementsMatch(t, expected, combined.Rows, "code=%s status=%s", code, status)
		}
	}
}

func TestApplyFilters_SubsetAndDeterministic(t *testing.T) {
	rows := sampleRows()
	criteria := models.FilterCriteria{Bands: []string{"A", "B"}, Query: "r"}

	first := ApplyFilters(rows, criteria)
	second := ApplyFilters(rows, criteria)

	assert.Equal(t, first, second)
	for _, r := range first.Rows {
		assert.Contains(t, rows, r)
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	before := append([]models.CatalogRow(nil), rows...)

	ApplyFilters(rows, models.FilterCriteria{Code: "001"})

	assert.Equal(t, before, rows)
}

func intersect(a, b []models.CatalogRow) []models.CatalogRow {
	out := make([]models.CatalogRow, 0)
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
