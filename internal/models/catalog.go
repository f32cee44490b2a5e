package models

import (
	"time"

	"github.com/google/uuid"
)

// Recognized CSV columns. Header names are matched after trimming and lowercasing.
const (
	ColumnCode        = "codigo"
	ColumnBand        = "faixa"
	ColumnReference   = "referencia"
	ColumnComposition = "composicao"
	ColumnStatus      = "status"
	ColumnLastUpdated = "data_atualizacao"
	ColumnImagePath   = "imagem_url"
)

// CatalogColumns lists the recognized columns in their canonical order
var CatalogColumns = []string{
	ColumnCode,
	ColumnBand,
	ColumnReference,
	ColumnComposition,
	ColumnStatus,
	ColumnLastUpdated,
	ColumnImagePath,
}

// CatalogRow is one product entry of the catalog file
type CatalogRow struct {
	Code        string `json:"codigo"`
	Band        string `json:"faixa"`
	Reference   string `json:"referencia"`
	Composition string `json:"composicao"`
	Status      string `json:"status"`
	LastUpdated string `json:"data_atualizacao"`
	ImagePath   string `json:"imagem_url"`
}

// CatalogSnapshot is an immutable, fully loaded copy of the catalog file
type CatalogSnapshot struct {
	ID       uuid.UUID    `json:"id"`
	Source   string       `json:"source"`
	ModTime  time.Time    `json:"mod_time"`
	LoadedAt time.Time    `json:"loaded_at"`
	Columns  []string     `json:"columns"`
	Rows     []CatalogRow `json:"-"`
}

// RowCount returns the number of rows in the snapshot, zero for nil snapshots
func (s *CatalogSnapshot) RowCount() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}
