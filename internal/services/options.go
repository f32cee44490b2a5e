package services

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"mostruario/internal/models"
)

// DeriveOptions computes the selector contents for the side panel.
// Selecting a supplier code narrows the offered bands and the latest update to that code.
func DeriveOptions(rows []models.CatalogRow, code string) models.FilterOptions {
	scoped := rows
	if !models.IsAll(code) {
		scoped = make([]models.CatalogRow, 0)
		for _, row := range rows {
			if row.Code == code {
				scoped = append(scoped, row)
			}
		}
	}

	opts := models.FilterOptions{
		Codes:    distinctSorted(rows, func(r models.CatalogRow) string { return r.Code }),
		Bands:    distinctSorted(scoped, func(r models.CatalogRow) string { return r.Band }),
		Statuses: distinctSorted(rows, func(r models.CatalogRow) string { return r.Status }),
	}
	if latest, ok := LatestUpdate(scoped); ok {
		opts.LatestUpdate = &latest
	}
	return opts
}

// BandOptions returns the bands a user may pick given the selected supplier code
func BandOptions(rows []models.CatalogRow, code string) []string {
	return DeriveOptions(rows, code).Bands
}

// SelectableBands keeps the selected bands that are still offered, in selection order.
// Bands picked under a previously selected supplier are dropped.
func SelectableBands(selected, offered []string) []string {
	var kept []string
	for _, band := range selected {
		if slices.Contains(offered, band) && !slices.Contains(kept, band) {
			kept = append(kept, band)
		}
	}
	return kept
}

// LatestUpdate returns the most recent parseable LastUpdated value.
// Values that do not parse are skipped.
func LatestUpdate(rows []models.CatalogRow) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, row := range rows {
		t, ok := ParseUpdateDate(row.LastUpdated)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// ParseUpdateDate parses a date leniently. Ambiguous day/month values are read
// month-first and retried day-first when that fails.
func ParseUpdateDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(value, dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func distinctSorted(rows []models.CatalogRow, field func(models.CatalogRow) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, row := range rows {
		v := field(row)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
