package varbar

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/varbar-go/pkg/varbar/host"
	"github.com/ukaji3/varbar-go/pkg/varbar/layout"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

var testViewport = models.Viewport{Width: 800, Height: 560}

func sampleDataView() *models.DataView {
	return &models.DataView{
		Categorical: &models.Categorical{
			Categories: []models.Column{{
				Source: models.ColumnSource{DisplayName: "Region", QueryName: "Sales.Region"},
				Values: []interface{}{"North", "South", "East"},
			}},
			Values: []models.Column{
				{Source: models.ColumnSource{DisplayName: "Actual"}, Values: []interface{}{1_200_000.0, -300_000.0, 750_000.0}},
				{Source: models.ColumnSource{DisplayName: "Target"}, Values: []interface{}{1_000_000.0, 500_000.0, nil}},
			},
		},
	}
}

func newTestVisual(t *testing.T) (*Visual, *host.Memory, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := host.NewMemory()
	return NewVisual(h, opts), h, &logs
}

func TestUpdateRendersBars(t *testing.T) {
	v, h, logs := newTestVisual(t)

	frame := v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})

	require.True(t, frame.Drawn())
	require.Len(t, frame.Bars, 3)
	assert.Same(t, frame, v.Frame())
	assert.Equal(t, []string{"bar-0", "bar-1", "bar-2"}, h.Elements())
	assert.Contains(t, logs.String(), "Rendered frame")

	for _, bar := range frame.Bars {
		assert.NotEmpty(t, bar.SelectionID.Key)
		assert.Equal(t, "Sales.Region", bar.SelectionID.Column)
		assert.Equal(t, bar.Index, bar.SelectionID.Index)
	}
	assert.NotEqual(t, frame.Bars[0].SelectionID.Key, frame.Bars[1].SelectionID.Key)

	items, ok := h.Tooltip("bar-0")
	require.True(t, ok)
	require.Len(t, items, 6)
	assert.Equal(t, "North", items[0].Value)
}

func TestUpdateClickSelects(t *testing.T) {
	v, h, _ := newTestVisual(t)
	frame := v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})

	require.True(t, h.Click("bar-1"))
	assert.Equal(t, []models.SelectionID{frame.Bars[1].SelectionID}, h.Selected())

	require.True(t, h.Click("bar-0"))
	assert.Equal(t, []models.SelectionID{frame.Bars[0].SelectionID}, h.Selected())

	require.True(t, h.Click("bar-0"))
	assert.Empty(t, h.Selected())

	assert.False(t, h.Click("bar-9"))
}

func TestUpdateSelectionStableAcrossUpdates(t *testing.T) {
	v, h, _ := newTestVisual(t)
	first := v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})
	h.Click("bar-2")

	second := v.Update(UpdateOptions{Viewport: models.Viewport{Width: 400, Height: 300}, DataViews: []*models.DataView{sampleDataView()}})
	assert.Equal(t, first.Bars[2].SelectionID, second.Bars[2].SelectionID)
	assert.Equal(t, []models.SelectionID{second.Bars[2].SelectionID}, h.Selected())
}

func TestUpdateAborts(t *testing.T) {
	tests := []struct {
		name string
		dvs  []*models.DataView
		want error
	}{
		{"no data views", nil, layout.ErrNoCategorical},
		{"nil data view", []*models.DataView{nil}, layout.ErrNoCategorical},
		{"no categorical", []*models.DataView{{}}, layout.ErrNoCategorical},
		{"no categories", []*models.DataView{{Categorical: &models.Categorical{
			Values: []models.Column{{Values: []interface{}{1.0}}},
		}}}, layout.ErrNoCategories},
		{"no values", []*models.DataView{{Categorical: &models.Categorical{
			Categories: []models.Column{{Values: []interface{}{"A"}}},
		}}}, layout.ErrNoActuals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, h, logs := newTestVisual(t)
			v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})
			require.NotEmpty(t, h.Elements())

			frame := v.Update(UpdateOptions{Viewport: testViewport, DataViews: tt.dvs})

			assert.False(t, frame.Drawn())
			assert.Empty(t, frame.Bars)
			assert.Empty(t, h.Elements(), "previous bindings must be cleared")
			assert.Contains(t, logs.String(), "Update skipped")
			assert.Contains(t, logs.String(), tt.want.Error())
		})
	}
}

func TestUpdateTinyViewport(t *testing.T) {
	v, _, logs := newTestVisual(t)
	frame := v.Update(UpdateOptions{Viewport: models.Viewport{Width: 50, Height: 100}, DataViews: []*models.DataView{sampleDataView()}})

	assert.False(t, frame.Drawn())
	assert.Contains(t, logs.String(), layout.ErrPlotTooSmall.Error())
}

func TestUpdateAppliesObjects(t *testing.T) {
	v, _, _ := newTestVisual(t)
	dv := sampleDataView()
	dv.Metadata.Objects = map[string]map[string]interface{}{
		settings.CardBar:    {settings.PropBarRadius: 0.0},
		settings.CardMarker: {settings.PropColor: "#FF00FF"},
	}

	frame := v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{dv}})

	require.Len(t, frame.Bars, 3)
	assert.Equal(t, 0.0, frame.Bars[0].Radius)
	require.NotNil(t, frame.Bars[0].Marker)
	assert.Equal(t, "#FF00FF", frame.Bars[0].Marker.Stroke)
	assert.Equal(t, 0.0, v.Settings().Bar.Radius)

	radius, ok := v.FormattingModel().Slice(settings.CardBar, settings.PropBarRadius)
	require.True(t, ok)
	assert.Equal(t, 0.0, radius.Value)

	// Objects are not sticky: the next update starts from the base again.
	frame = v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})
	assert.Equal(t, 8.0, frame.Bars[0].Radius)
}

func TestUpdateBaseSettings(t *testing.T) {
	base := settings.Default()
	base.Conditional.ApplyToLabels = false
	opts := DefaultOptions()
	opts.Settings = &base

	v := NewVisual(host.NewMemory(), opts)
	frame := v.Update(UpdateOptions{Viewport: testViewport, DataViews: []*models.DataView{sampleDataView()}})

	require.Len(t, frame.Bars, 3)
	assert.Equal(t, layout.DefaultLabelColor, frame.Bars[0].ValueLabel.Color)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		ok       bool
	}{
		{"svg", FormatSVG, true},
		{"PNG", FormatPNG, true},
		{"json", FormatJSON, true},
		{"xlsx", FormatXLSX, true},
		{"pdf", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v, expected %q, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"chart.png", FormatPNG},
		{"out/chart.XLSX", FormatXLSX},
		{"frame.json", FormatJSON},
		{"chart", FormatSVG},
		{"chart.txt", FormatSVG},
	}

	for _, tt := range tests {
		if got := FormatForPath(tt.input); got != tt.expected {
			t.Errorf("FormatForPath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestLanguageTag(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "en-US", opts.LanguageTag().String())

	opts.Locale = "de-DE"
	assert.Equal(t, "de-DE", opts.LanguageTag().String())

	opts.Locale = "!!"
	assert.Equal(t, "en-US", opts.LanguageTag().String())
}

func TestRenderFileNotFound(t *testing.T) {
	_, _, err := Render(filepath.Join(t.TempDir(), "missing.json"), DefaultOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "load", re.Stage)
}

func TestRenderCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	data := "Category,Actual,Target\nNorth,1200000,1000000\nSouth,-300000,500000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	opts := DefaultOptions()
	opts.Viewport = testViewport
	frame, h, err := Render(path, opts)
	require.NoError(t, err)

	require.Len(t, frame.Bars, 2)
	assert.True(t, frame.Bars[1].Negative)
	assert.True(t, h.Click("bar-0"))
	assert.Len(t, h.Selected(), 1)

	for _, format := range []Format{FormatSVG, FormatPNG, FormatJSON, FormatXLSX} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, frame, format, false), format)
		assert.NotZero(t, buf.Len(), format)
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, frame, FormatJSON, true))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	assert.ErrorIs(t, Write(&buf, frame, Format("pdf"), false), ErrUnknownFormat)
}

func TestRenderNonFiniteCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	data := "Category,Actual,Target\nA,100,NaN\nB,Inf,50\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	opts := DefaultOptions()
	opts.Viewport = testViewport
	frame, _, err := Render(path, opts)
	require.NoError(t, err)

	require.Len(t, frame.Bars, 2)
	assert.Equal(t, 100.0, frame.MaxAbs)
	assert.Nil(t, frame.Bars[0].Marker)
	assert.Equal(t, "N/A", frame.Bars[0].Tooltip[3].Value)
	assert.Equal(t, 0.0, frame.Bars[1].Row.Actual)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, frame, FormatJSON, false))
	assert.NotContains(t, buf.String(), "NaN")
}
