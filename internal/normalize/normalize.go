// Package normalize rewrites absolute image locators captured on a workstation
// into paths relative to the catalog project root.
package normalize

import (
	"fmt"
	"strings"

	"mostruario/pkg/tabular"
)

const (
	DefaultColumn = "imagem_url"
	DefaultMarker = "catalogo_digital"
)

// Report summarizes one normalization run
type Report struct {
	Rows        int `json:"rows"`
	Rewritten   int `json:"rewritten"`
	Passthrough int `json:"passthrough"`
	// Suspicious counts values that are still not relative after rewriting,
	// typically paths that never contained the marker.
	Suspicious int `json:"suspicious"`
}

// Path rewrites a single locator. When marker occurs, everything up to and
// including its last occurrence is dropped, leading separators are removed and
// backslashes become forward slashes. Other values are only trimmed.
// Applying Path twice gives the same result.
func Path(value, marker string) string {
	p := strings.TrimSpace(value)
	if marker == "" {
		return p
	}
	i := strings.LastIndex(p, marker)
	if i < 0 {
		return p
	}
	p = strings.TrimLeft(p[i+len(marker):], " \t\\/")
	return strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
}

// Table normalizes column in place across every record of t
func Table(t *tabular.Table, column, marker string) (Report, error) {
	idx := t.Index(column)
	if idx < 0 {
		return Report{}, fmt.Errorf("column %q not found in header %v", column, t.Header)
	}

	report := Report{Rows: len(t.Records)}
	for _, record := range t.Records {
		if idx >= len(record) {
			report.Passthrough++
			continue
		}
		original := record[idx]
		normalized := Path(original, marker)
		if normalized == original {
			report.Passthrough++
		} else {
			record[idx] = normalized
			report.Rewritten++
		}
		if looksAbsolute(normalized) {
			report.Suspicious++
		}
	}
	return report, nil
}

// File reads input, normalizes column and writes the result to output
func File(input, output, column, marker string) (Report, error) {
	t, err := tabular.ReadFile(input)
	if err != nil {
		return Report{}, err
	}
	report, err := Table(t, column, marker)
	if err != nil {
		return Report{}, err
	}
	t.Encoding = tabular.EncodingUTF8
	if err := tabular.WriteFile(output, t); err != nil {
		return Report{}, err
	}
	return report, nil
}

// looksAbsolute reports values that are not clean relative paths: a drive letter or
// scheme, a leading slash or a remaining backslash.
func looksAbsolute(p string) bool {
	return strings.ContainsAny(p, `:\`) || strings.HasPrefix(p, "/")
}
