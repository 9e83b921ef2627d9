package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

func regionColumn() models.Column {
	return models.Column{
		Source: models.ColumnSource{DisplayName: "Region", QueryName: "Sales.Region"},
		Values: []interface{}{"North", "South"},
	}
}

func TestSelectionIDDeterministic(t *testing.T) {
	b := NewSelectionIDBuilder()
	a1 := b.WithCategory(regionColumn(), 0).CreateSelectionID()
	a2 := NewSelectionIDBuilder().WithCategory(regionColumn(), 0).CreateSelectionID()
	other := b.WithCategory(regionColumn(), 1).CreateSelectionID()

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1.Key, other.Key)
	assert.Equal(t, "Sales.Region", a1.Column)
	assert.Equal(t, 1, other.Index)
	assert.Len(t, a1.Key, 36)
}

func TestSelectionIDWithoutCategory(t *testing.T) {
	id := NewSelectionIDBuilder().CreateSelectionID()
	assert.Equal(t, "", id.Key)
	assert.Equal(t, -1, id.Index)
}

func TestMemoryTooltips(t *testing.T) {
	m := NewMemory()
	m.TooltipService().AddTooltip("bar-0", func() []models.TooltipItem {
		return []models.TooltipItem{{DisplayName: "Category", Value: "North"}}
	})

	items, ok := m.Tooltip("bar-0")
	require.True(t, ok)
	assert.Equal(t, "North", items[0].Value)

	_, ok = m.Tooltip("bar-1")
	assert.False(t, ok)

	m.Reset()
	_, ok = m.Tooltip("bar-0")
	assert.False(t, ok)
}

func TestMemoryClickSelects(t *testing.T) {
	m := NewMemory()
	north := NewSelectionIDBuilder().WithCategory(regionColumn(), 0).CreateSelectionID()
	south := NewSelectionIDBuilder().WithCategory(regionColumn(), 1).CreateSelectionID()

	m.Events().OnClick("bar-0", func() { _ = m.SelectionManager().Select(north, false) })
	m.Events().OnClick("bar-1", func() { _ = m.SelectionManager().Select(south, false) })
	assert.Equal(t, []string{"bar-0", "bar-1"}, m.Elements())

	require.True(t, m.Click("bar-0"))
	assert.Equal(t, []models.SelectionID{north}, m.Selected())

	require.True(t, m.Click("bar-1"))
	assert.Equal(t, []models.SelectionID{south}, m.Selected(), "single select replaces")

	require.True(t, m.Click("bar-1"))
	assert.Empty(t, m.Selected(), "clicking the only selected row clears")

	assert.False(t, m.Click("bar-9"))
}

func TestMemoryMultiSelect(t *testing.T) {
	m := NewMemory()
	a := models.SelectionID{Key: "a"}
	b := models.SelectionID{Key: "b"}

	require.NoError(t, m.Select(a, true))
	require.NoError(t, m.Select(b, true))
	assert.Equal(t, []models.SelectionID{a, b}, m.Selected())

	require.NoError(t, m.Select(a, true))
	assert.Equal(t, []models.SelectionID{b}, m.Selected())

	m.Reset()
	assert.Equal(t, []models.SelectionID{b}, m.Selected(), "reset keeps the selection")

	m.ClearSelection()
	assert.Empty(t, m.Selected())
}
