// Package varbar renders diverging actual-vs-target bar charts with
// conditional coloring, target markers, tooltips and click selection.
package varbar

import (
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// Format represents an output format.
type Format string

const (
	// FormatSVG writes a standalone SVG document.
	FormatSVG Format = "svg"
	// FormatPNG writes a rasterized PNG image.
	FormatPNG Format = "png"
	// FormatJSON writes the computed frame as JSON.
	FormatJSON Format = "json"
	// FormatXLSX writes a workbook report with a native chart.
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSVG, FormatPNG, FormatJSON, FormatXLSX:
		return f, true
	}
	return "", false
}

// FormatForPath infers the output format from a file extension,
// defaulting to SVG.
func FormatForPath(path string) Format {
	if f, ok := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); ok {
		return f
	}
	return FormatSVG
}

// Options configures rendering behavior.
type Options struct {
	// Viewport is the drawing area.
	Viewport models.Viewport
	// Settings is the base settings snapshot; data view objects override it.
	// If nil, defaults are used.
	Settings *settings.Settings
	// Locale is a BCP 47 tag used for number grouping (default en-US).
	Locale string
	// Sheet selects the worksheet for XLSX input.
	Sheet string
	// Range is a defined name or A1 range for XLSX input.
	Range string
	// Logger receives debug output; slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		Viewport: models.Viewport{Width: 800, Height: 600},
		Locale:   "en-US",
	}
}

// BaseSettings returns the settings to start every update from.
func (o Options) BaseSettings() settings.Settings {
	if o.Settings != nil {
		return *o.Settings
	}
	return settings.Default()
}

// LanguageTag returns the parsed locale, falling back to en-US.
func (o Options) LanguageTag() language.Tag {
	if o.Locale != "" {
		if tag, err := language.Parse(o.Locale); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
