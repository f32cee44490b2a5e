package testhelpers

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mostruario/internal/caching"
	"mostruario/internal/models"
)

// SampleRows returns a small catalog spanning three suppliers and three bands
func SampleRows() []models.CatalogRow {
	return []models.CatalogRow{
		{Code: "001", Band: "A", Reference: "R1", Composition: "100% Algodão", Status: "Ativo", LastUpdated: "2024-01-10", ImagePath: "imagens/001/r1.jpg"},
		{Code: "002", Band: "B", Reference: "R2", Composition: "Poliéster", Status: "Fora de linha", LastUpdated: "2024-03-05", ImagePath: "imagens/002/r2.jpg"},
		{Code: "001", Band: "B", Reference: "R3", Composition: "Linho", Status: "Suspenso", LastUpdated: "2024-02-01"},
		{Code: "003", Band: "C", Reference: "R4", Composition: "Viscose", Status: ""},
	}
}

// CatalogRecords converts rows to CSV records, header first
func CatalogRecords(rows []models.CatalogRow) [][]string {
	records := [][]string{models.CatalogColumns}
	for _, r := range rows {
		records = append(records, []string{r.Code, r.Band, r.Reference, r.Composition, r.Status, r.LastUpdated, r.ImagePath})
	}
	return records
}

// WriteCatalogCSV writes rows as catalogo.csv under dir and returns its path
func WriteCatalogCSV(t *testing.T, dir string, rows []models.CatalogRow) string {
	t.Helper()

	path := filepath.Join(dir, "catalogo.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(CatalogRecords(rows)))
	return path
}

// NewCache returns an in-process cache
func NewCache() caching.CacheService {
	return caching.NewMemoryCacheService()
}
