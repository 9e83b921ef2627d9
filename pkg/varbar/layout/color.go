package layout

import (
	"regexp"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// Fixed achievement colors.
const (
	ColorBelow   = "#D32F2F"
	ColorNear    = "#F9A825"
	ColorReached = "#2E7D32"
)

var hexColorPattern = regexp.MustCompile(`(?i)^#([0-9a-f]{3}){1,2}$`)

// ValidHex reports whether s is a strict #RGB or #RRGGBB color.
func ValidHex(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ConditionalColor picks the bar fill for a row.
//
// In field mode a valid per-row hex wins verbatim. Otherwise a missing or
// zero target yields the N/A color, and the achievement ratio is compared
// against the two thresholds.
func ConditionalColor(actual float64, target *float64, colorHex string, cf settings.ConditionalFormatting) string {
	if cf.Mode == settings.ModeField && ValidHex(colorHex) {
		return colorHex
	}

	if target == nil || *target == 0 {
		return cf.NAColor
	}

	achievement := actual / *target
	if achievement < cf.Threshold1 {
		return ColorBelow
	}
	if achievement < cf.Threshold2 {
		return ColorNear
	}
	return ColorReached
}

// RowColor is ConditionalColor applied to a row.
func RowColor(r models.Row, cf settings.ConditionalFormatting) string {
	return ConditionalColor(r.Actual, r.Target, r.ColorHex, cf)
}
