package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// Columns are the resolved inputs of one data view.
type Columns struct {
	Category *models.Column
	Actual   *models.Column
	Target   *models.Column
	ColorHex *models.Column
}

// ResolveColumns picks the category column and the three value columns.
// Value columns are positional (actual, target, color hex) unless any of
// them declares a role, in which case roles decide.
func ResolveColumns(dv *models.DataView) (Columns, error) {
	if dv == nil {
		return Columns{}, ErrNoDataView
	}
	if dv.Categorical == nil {
		return Columns{}, ErrNoCategorical
	}
	cat := dv.Categorical
	if len(cat.Categories) == 0 {
		return Columns{}, ErrNoCategories
	}

	cols := Columns{Category: &cat.Categories[0]}
	if hasRoles(cat.Values) {
		for i := range cat.Values {
			c := &cat.Values[i]
			switch {
			case c.Source.HasRole(models.RoleActual) && cols.Actual == nil:
				cols.Actual = c
			case c.Source.HasRole(models.RoleTarget) && cols.Target == nil:
				cols.Target = c
			case c.Source.HasRole(models.RoleColorHex) && cols.ColorHex == nil:
				cols.ColorHex = c
			}
		}
	} else {
		positional := []**models.Column{&cols.Actual, &cols.Target, &cols.ColorHex}
		for i := 0; i < len(cat.Values) && i < len(positional); i++ {
			*positional[i] = &cat.Values[i]
		}
	}

	if cols.Actual == nil {
		return Columns{}, ErrNoActuals
	}
	return cols, nil
}

func hasRoles(values []models.Column) bool {
	for _, c := range values {
		if len(c.Source.Roles) > 0 {
			return true
		}
	}
	return false
}

// ExtractRows converts a data view into positional rows.
func ExtractRows(dv *models.DataView) ([]models.Row, error) {
	cols, err := ResolveColumns(dv)
	if err != nil {
		return nil, err
	}
	if cols.Category.Values == nil {
		return nil, ErrNoCategories
	}
	if cols.Actual.Values == nil {
		return nil, ErrNoActuals
	}
	if len(cols.Category.Values) != len(cols.Actual.Values) {
		return nil, fmt.Errorf("%w: %d categories, %d actuals", ErrLengthMismatch,
			len(cols.Category.Values), len(cols.Actual.Values))
	}

	rows := make([]models.Row, len(cols.Actual.Values))
	for i, v := range cols.Actual.Values {
		actual, _ := toFloat(v)
		rows[i] = models.Row{
			Category: toString(cols.Category.Values[i]),
			Actual:   actual,
		}
		if t, ok := valueAt(cols.Target, i); ok {
			if f, ok := toFloat(t); ok {
				rows[i].Target = &f
			}
		}
		if h, ok := valueAt(cols.ColorHex, i); ok {
			rows[i].ColorHex = strings.TrimSpace(toString(h))
		}
	}
	return rows, nil
}

// valueAt tolerates optional columns that are absent or shorter than the
// actual column.
func valueAt(c *models.Column, i int) (interface{}, bool) {
	if c == nil || i >= len(c.Values) || c.Values[i] == nil {
		return nil, false
	}
	return c.Values[i], true
}

// toFloat reports ok only for finite numbers; NaN and infinities read
// as missing.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
