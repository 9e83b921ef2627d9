package layout

import "github.com/ukaji3/varbar-go/pkg/varbar/models"

// NotAvailable is shown for values that need a usable target.
const NotAvailable = "N/A"

// Tooltip display names, in display order.
const (
	TipCategory    = "Category"
	TipActual      = "Actual Revenue"
	TipTarget      = "Target Revenue"
	TipAchievement = "Achievement %"
	TipVariance    = "Variance"
	TipVariancePct = "Variance %"
)

// BuildTooltip returns the six tooltip fields for a row.
// A zero target is still shown as a number but makes every derived field N/A.
func BuildTooltip(r models.Row, f *Formatter) []models.TooltipItem {
	target := NotAvailable
	if r.Target != nil {
		target = f.Number(*r.Target)
	}

	achievement, variance, variancePct := NotAvailable, NotAvailable, NotAvailable
	if r.HasTarget() {
		t := *r.Target
		achievement = f.Percent(r.Actual / t)
		variance = f.Number(r.Actual - t)
		variancePct = f.Percent((r.Actual - t) / t)
	}

	return []models.TooltipItem{
		{DisplayName: TipCategory, Value: r.Category},
		{DisplayName: TipActual, Value: f.Number(r.Actual)},
		{DisplayName: TipTarget, Value: target},
		{DisplayName: TipAchievement, Value: achievement},
		{DisplayName: TipVariance, Value: variance},
		{DisplayName: TipVariancePct, Value: variancePct},
	}
}
