package services

import (
	"strings"

	"mostruario/internal/models"
)

var (
	StatusRed    = models.StatusColor{Name: "red", Hex: "#D9534F"}
	StatusOrange = models.StatusColor{Name: "orange", Hex: "#F0AD4E"}
	StatusGreen  = models.StatusColor{Name: "green", Hex: "#5CB85C"}
	StatusGray   = models.StatusColor{Name: "gray", Hex: "#6c757d"}
)

// statusRules are evaluated in order; the first matching substring wins.
// A label mentioning both "fora" and "ativo" is red.
var statusRules = []struct {
	substring string
	color     models.StatusColor
}{
	{"fora", StatusRed},
	{"susp", StatusOrange},
	{"ativo", StatusGreen},
}

// ClassifyStatus maps a free-text status label to its display color.
// Unknown and empty labels are both gray.
func ClassifyStatus(status string) models.StatusColor {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, rule := range statusRules {
		if strings.Contains(s, rule.substring) {
			return rule.color
		}
	}
	return StatusGray
}
