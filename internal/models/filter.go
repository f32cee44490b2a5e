package models

import (
	"strings"
	"time"
)

// AllOption is the selector label meaning "no restriction"
const AllOption = "Todos"

// IsAll reports whether a selector value means "no restriction": empty or the UI label.
// Any other value, including "all", is matched literally.
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == AllOption
}

// FilterCriteria holds the user's current selection
type FilterCriteria struct {
	Code   string   `json:"codigo,omitempty" query:"codigo"`
	Bands  []string `json:"faixa,omitempty" query:"faixa"`
	Status string   `json:"status,omitempty" query:"status"`
	Query  string   `json:"q,omitempty" query:"q"`
}

// HasCode reports whether a specific supplier code is selected
func (c FilterCriteria) HasCode() bool {
	return !IsAll(c.Code)
}

// HasStatus reports whether a specific status is selected
func (c FilterCriteria) HasStatus() bool {
	return !IsAll(c.Status)
}

// HasQuery reports whether the free-text search is non-blank
func (c FilterCriteria) HasQuery() bool {
	return strings.TrimSpace(c.Query) != ""
}

// Active reports whether any predicate is in effect
func (c FilterCriteria) Active() bool {
	return c.HasCode() || len(c.Bands) > 0 || c.HasStatus() || c.HasQuery()
}

// FilterResult is the outcome of applying criteria to a table.
// Active is false when no predicate was in effect; Rows is then always empty.
type FilterResult struct {
	Active bool         `json:"active"`
	Rows   []CatalogRow `json:"rows"`
}

// FilterOptions feeds the side panel selectors
type FilterOptions struct {
	Codes        []string   `json:"codigos"`
	Bands        []string   `json:"faixas"`
	Statuses     []string   `json:"status"`
	LatestUpdate *time.Time `json:"ultima_atualizacao,omitempty"`
}

// LatestUpdateLabel formats the latest update as dd/mm/yyyy, or "-" when unknown
func (o FilterOptions) LatestUpdateLabel() string {
	if o.LatestUpdate == nil {
		return "-"
	}
	return o.LatestUpdate.Format("02/01/2006")
}
