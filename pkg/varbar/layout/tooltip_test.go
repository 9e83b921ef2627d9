package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

func tooltipValues(items []models.TooltipItem) map[string]string {
	m := make(map[string]string, len(items))
	for _, it := range items {
		m[it.DisplayName] = it.Value
	}
	return m
}

func TestBuildTooltip(t *testing.T) {
	items := BuildTooltip(models.Row{Category: "North", Actual: 1_200_000, Target: ptr(1_000_000)}, DefaultFormatter())

	require.Len(t, items, 6)
	assert.Equal(t, []string{TipCategory, TipActual, TipTarget, TipAchievement, TipVariance, TipVariancePct},
		[]string{items[0].DisplayName, items[1].DisplayName, items[2].DisplayName,
			items[3].DisplayName, items[4].DisplayName, items[5].DisplayName})

	v := tooltipValues(items)
	assert.Equal(t, "North", v[TipCategory])
	assert.Equal(t, "1,200,000", v[TipActual])
	assert.Equal(t, "1,000,000", v[TipTarget])
	assert.Equal(t, "120.0%", v[TipAchievement])
	assert.Equal(t, "200,000", v[TipVariance])
	assert.Equal(t, "20.0%", v[TipVariancePct])
}

func TestBuildTooltipWithoutTarget(t *testing.T) {
	tests := []struct {
		name   string
		target *float64
		shown  string
	}{
		{"nil target", nil, NotAvailable},
		{"zero target", ptr(0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tooltipValues(BuildTooltip(models.Row{Category: "X", Actual: 500, Target: tt.target}, DefaultFormatter()))
			assert.Equal(t, tt.shown, v[TipTarget])
			assert.Equal(t, NotAvailable, v[TipAchievement])
			assert.Equal(t, NotAvailable, v[TipVariance])
			assert.Equal(t, NotAvailable, v[TipVariancePct])
		})
	}
}

func TestBuildTooltipNegativeVariance(t *testing.T) {
	v := tooltipValues(BuildTooltip(models.Row{Category: "South", Actual: 750_000, Target: ptr(1_000_000)}, DefaultFormatter()))
	assert.Equal(t, "75.0%", v[TipAchievement])
	assert.Equal(t, "-250,000", v[TipVariance])
	assert.Equal(t, "-25.0%", v[TipVariancePct])
}
