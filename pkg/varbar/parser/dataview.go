package parser

import (
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// headerAliases maps normalised header text to a data role.
var headerAliases = map[string]string{
	"category":      models.RoleCategory,
	"categories":    models.RoleCategory,
	"actual":        models.RoleActual,
	"actuals":       models.RoleActual,
	"actualrevenue": models.RoleActual,
	"revenue":       models.RoleActual,
	"target":        models.RoleTarget,
	"targets":       models.RoleTarget,
	"targetrevenue": models.RoleTarget,
	"colorhex":      models.RoleColorHex,
	"color":         models.RoleColorHex,
	"hex":           models.RoleColorHex,
}

// positionalRoles is used when the header names no category or actual column.
var positionalRoles = []string{models.RoleCategory, models.RoleActual, models.RoleTarget, models.RoleColorHex}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// mapColumns returns the column index of each role found in header.
func mapColumns(header []string) map[string]int {
	byName := make(map[string]int)
	for i, h := range header {
		role, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := byName[role]; !dup {
			byName[role] = i
		}
	}

	_, hasCat := byName[models.RoleCategory]
	_, hasActual := byName[models.RoleActual]
	if hasCat && hasActual {
		return byName
	}

	byPos := make(map[string]int)
	for i, role := range positionalRoles {
		if i < len(header) {
			byPos[role] = i
		}
	}
	return byPos
}

// BuildDataView turns a header row and its records into a categorical data
// view. source qualifies the column query names.
func BuildDataView(source string, header []string, records [][]interface{}) *models.DataView {
	cols := mapColumns(header)

	column := func(role string) (models.Column, bool) {
		idx, ok := cols[role]
		if !ok {
			return models.Column{}, false
		}
		name := strings.TrimSpace(header[idx])
		if name == "" {
			name = role
		}
		c := models.Column{
			Source: models.ColumnSource{
				DisplayName: name,
				QueryName:   source + "." + name,
				Roles:       map[string]bool{role: true},
			},
			Values: make([]interface{}, len(records)),
		}
		for i, rec := range records {
			if idx < len(rec) {
				c.Values[i] = rec[idx]
			}
		}
		return c, true
	}

	cat := &models.Categorical{}
	if c, ok := column(models.RoleCategory); ok {
		cat.Categories = []models.Column{c}
	}
	for _, role := range positionalRoles[1:] {
		if c, ok := column(role); ok {
			cat.Values = append(cat.Values, c)
		}
	}

	return &models.DataView{Categorical: cat}
}
