// Package settings holds the user-configurable chart options and their
// formatting model export.
package settings

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ColorMode selects how bar colors are chosen.
type ColorMode string

const (
	// ModeRule colors bars by achievement thresholds.
	ModeRule ColorMode = "rule"
	// ModeField uses the per-row color hex field when it is valid.
	ModeField ColorMode = "field"
)

// Card and property names as the host persists them.
const (
	CardBar         = "barSettings"
	CardConditional = "conditionalFormatting"
	CardMarker      = "targetMarker"

	PropBarRadius     = "barRadius"
	PropMode          = "mode"
	PropThreshold1    = "threshold1"
	PropThreshold2    = "threshold2"
	PropNAColor       = "naColor"
	PropApplyToLabels = "applyToLabels"
	PropColor         = "color"
	PropThickness     = "thickness"
)

// BarSettings configures bar shape.
type BarSettings struct {
	// Radius is the requested corner radius in pixels.
	Radius float64 `json:"barRadius" yaml:"bar_radius"`
}

// ConditionalFormatting configures the fill color policy.
type ConditionalFormatting struct {
	Mode          ColorMode `json:"mode" yaml:"mode"`
	Threshold1    float64   `json:"threshold1" yaml:"threshold1"`
	Threshold2    float64   `json:"threshold2" yaml:"threshold2"`
	NAColor       string    `json:"naColor" yaml:"na_color"`
	ApplyToLabels bool      `json:"applyToLabels" yaml:"apply_to_labels"`
}

// TargetMarker configures the target line drawn across each bar.
type TargetMarker struct {
	Color     string  `json:"color" yaml:"color"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

// Settings is the full option snapshot used for one update.
type Settings struct {
	Bar         BarSettings           `json:"barSettings" yaml:"bar_settings"`
	Conditional ConditionalFormatting `json:"conditionalFormatting" yaml:"conditional_formatting"`
	Marker      TargetMarker          `json:"targetMarker" yaml:"target_marker"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		Bar: BarSettings{Radius: 8},
		Conditional: ConditionalFormatting{
			Mode:          ModeRule,
			Threshold1:    0.8,
			Threshold2:    1.0,
			NAColor:       "#9E9E9E",
			ApplyToLabels: true,
		},
		Marker: TargetMarker{
			Color:     "#000000",
			Thickness: 2,
		},
	}
}

// Populate returns the default settings overridden by objects.
func Populate(objects map[string]map[string]interface{}) Settings {
	return Default().Apply(objects)
}

// Apply returns a copy of s with every recognised property in objects
// applied. Unknown properties and values of the wrong type are ignored.
func (s Settings) Apply(objects map[string]map[string]interface{}) Settings {
	if card, ok := objects[CardBar]; ok {
		if v, ok := numberValue(card[PropBarRadius]); ok {
			s.Bar.Radius = v
		}
	}

	if card, ok := objects[CardConditional]; ok {
		if v, ok := modeValue(card[PropMode]); ok {
			s.Conditional.Mode = v
		}
		if v, ok := numberValue(card[PropThreshold1]); ok {
			s.Conditional.Threshold1 = v
		}
		if v, ok := numberValue(card[PropThreshold2]); ok {
			s.Conditional.Threshold2 = v
		}
		if v, ok := colorValue(card[PropNAColor]); ok {
			s.Conditional.NAColor = v
		}
		if v, ok := card[PropApplyToLabels].(bool); ok {
			s.Conditional.ApplyToLabels = v
		}
	}

	if card, ok := objects[CardMarker]; ok {
		if v, ok := colorValue(card[PropColor]); ok {
			s.Marker.Color = v
		}
		if v, ok := numberValue(card[PropThickness]); ok {
			s.Marker.Thickness = v
		}
	}

	return s
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// colorValue accepts "#hex" or the host's fill shape {"solid": {"color": "#hex"}}.
func colorValue(v interface{}) (string, bool) {
	switch c := v.(type) {
	case string:
		return c, c != ""
	case map[string]interface{}:
		if solid, ok := c["solid"].(map[string]interface{}); ok {
			s, ok := solid["color"].(string)
			return s, ok && s != ""
		}
		if s, ok := c["value"].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// modeValue accepts the bare mode string or a dropdown item {"value": "field"}.
func modeValue(v interface{}) (ColorMode, bool) {
	var raw string
	switch m := v.(type) {
	case string:
		raw = m
	case map[string]interface{}:
		raw, _ = m["value"].(string)
	}
	switch ColorMode(raw) {
	case ModeRule, ModeField:
		return ColorMode(raw), true
	}
	return "", false
}
