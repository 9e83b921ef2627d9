package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/varbar-go/pkg/varbar"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

const updateBody = `{
  "viewport": {"width": 800, "height": 560},
  "dataViews": [{
    "metadata": {"objects": {"targetMarker": {"color": "#FF00FF"}}},
    "categorical": {
      "categories": [{"source": {"displayName": "Region"}, "values": ["North", "South"]}],
      "values": [
        {"source": {"displayName": "Actual"}, "values": [1200000, -300000]},
        {"source": {"displayName": "Target"}, "values": [1000000, 500000]}
      ]
    }
  }]
}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	opts := varbar.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(opts)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func scrape(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, data := do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return string(data)
}

func TestUpdateAndFrame(t *testing.T) {
	s, ts := newTestServer(t)

	resp, data := do(t, http.MethodPost, ts.URL+"/v1/update", updateBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var frame models.Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	require.Len(t, frame.Bars, 2)
	assert.True(t, frame.Bars[1].Negative)
	require.NotNil(t, frame.Bars[0].Marker)
	assert.Equal(t, "#FF00FF", frame.Bars[0].Marker.Stroke)

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/frame", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again models.Frame
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, frame.Bars[0].SelectionID, again.Bars[0].SelectionID)

	assert.Contains(t, scrape(t, ts), `varbar_updates_total{outcome="drawn"} 1`)
	assert.NotNil(t, s.Registry())
}

func TestUpdateOutcomes(t *testing.T) {
	s, ts := newTestServer(t)

	resp, _ := do(t, http.MethodPost, ts.URL+"/v1/update", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data := do(t, http.MethodPost, ts.URL+"/v1/update", `{"viewport": {"width": 800, "height": 560}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var frame models.Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Empty(t, frame.Bars)

	resp, _ = do(t, http.MethodGet, ts.URL+"/v1/chart.svg", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	metrics := scrape(t, ts)
	assert.Contains(t, metrics, `varbar_updates_total{outcome="invalid"} 1`)
	assert.Contains(t, metrics, `varbar_updates_total{outcome="empty"} 1`)
	assert.NotContains(t, metrics, `varbar_updates_total{outcome="drawn"}`)
	assert.False(t, s.frame().Drawn())
}

func TestCharts(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/v1/update", updateBody)

	resp, data := do(t, http.MethodGet, ts.URL+"/v1/chart.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(data), `id="bar-1"`)

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/chart.png", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/chart.xlsx", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestTooltipAndClick(t *testing.T) {
	s, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/v1/update", updateBody)

	resp, data := do(t, http.MethodGet, ts.URL+"/v1/tooltips/bar-0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.TooltipItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 6)
	assert.Equal(t, models.TooltipItem{DisplayName: "Achievement %", Value: "120.0%"}, items[3])

	resp, _ = do(t, http.MethodGet, ts.URL+"/v1/tooltips/bar-7", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, http.MethodPost, ts.URL+"/v1/elements/bar-1/click", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var selected []models.SelectionID
	require.NoError(t, json.Unmarshal(data, &selected))
	require.Len(t, selected, 1)
	assert.Equal(t, 1, selected[0].Index)

	resp, _ = do(t, http.MethodPost, ts.URL+"/v1/elements/bar-7/click", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, http.MethodGet, ts.URL+"/v1/selection", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &selected))
	assert.Len(t, selected, 1)

	resp, _ = do(t, http.MethodDelete, ts.URL+"/v1/selection", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.host.Selected())

	assert.Contains(t, scrape(t, ts), "varbar_clicks_total 1")
}

func TestFormattingModelAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, http.MethodPost, ts.URL+"/v1/update", updateBody)

	resp, data := do(t, http.MethodGet, ts.URL+"/v1/formatting-model", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"Marker Color"`)
	assert.Contains(t, string(data), `"#FF00FF"`)

	metrics := scrape(t, ts)
	assert.Contains(t, metrics, `varbar_updates_total{outcome="drawn"} 1`)
	assert.Contains(t, metrics, "varbar_rows_count 1")
}
