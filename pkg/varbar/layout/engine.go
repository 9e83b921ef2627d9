// Package layout turns rows and a viewport into a fully positioned frame:
// the shared scale, bar outlines, fill colors, target markers, labels and
// tooltip payloads.
package layout

import (
	"fmt"
	"math"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// Fixed layout constants, in pixels.
const (
	MarginTop    = 40
	MarginRight  = 20
	MarginBottom = 120
	MarginLeft   = 60

	// BarInset is the gap on each side of a bar inside its slot.
	BarInset = 10

	ValueLabelOffset      = 6
	NegativeLabelOffset   = 14
	CategoryLabelOffset   = 60
	CategoryLabelRotation = -45
	FontSize              = 10

	AxisColor         = "#999"
	DefaultLabelColor = "#222"
)

// MaxAbs returns the scale domain: the largest absolute actual or target,
// never below 1.
func MaxAbs(rows []models.Row) float64 {
	m := 1.0
	for _, r := range rows {
		m = math.Max(m, math.Abs(r.Actual))
		if r.Target != nil {
			m = math.Max(m, math.Abs(*r.Target))
		}
	}
	return m
}

// Diverging reports whether any actual or target is negative.
func Diverging(rows []models.Row) bool {
	for _, r := range rows {
		if r.Actual < 0 || (r.Target != nil && *r.Target < 0) {
			return true
		}
	}
	return false
}

// Compute lays out rows inside vp.
//
// Without negative values the zero line is the plot bottom and the full
// plot height is the scale span. With negatives the zero line moves to
// mid-plot and each direction gets half the height.
func Compute(rows []models.Row, vp models.Viewport, s settings.Settings, f *Formatter) (*models.Frame, error) {
	chartW := vp.Width - MarginLeft - MarginRight
	chartH := vp.Height - MarginTop - MarginBottom
	if chartW <= 0 || chartH <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrPlotTooSmall, vp.Width, vp.Height)
	}
	if f == nil {
		f = DefaultFormatter()
	}

	plot := models.Rect{X: MarginLeft, Y: MarginTop, W: chartW, H: chartH}
	plotBottom := plot.Y + plot.H

	span, zeroY := chartH, plotBottom
	if Diverging(rows) {
		span, zeroY = chartH/2, plot.Y+chartH/2
	}

	frame := &models.Frame{
		Viewport: vp,
		Plot:     plot,
		ZeroY:    zeroY,
		MaxAbs:   MaxAbs(rows),
		Axes: []models.Line{
			{X1: plot.X, Y1: plot.Y, X2: plot.X, Y2: plotBottom, Stroke: AxisColor, StrokeWidth: 1},
			{X1: plot.X, Y1: zeroY, X2: plot.X + chartW, Y2: zeroY, Stroke: AxisColor, StrokeWidth: 1},
		},
	}
	if len(rows) == 0 {
		return frame, nil
	}

	slot := chartW / float64(len(rows))
	frame.Bars = make([]models.Bar, len(rows))
	for i, row := range rows {
		frame.Bars[i] = layoutBar(i, row, slot, span, frame, s, f)
	}
	return frame, nil
}

func layoutBar(i int, row models.Row, slot, span float64, frame *models.Frame, s settings.Settings, f *Formatter) models.Bar {
	slotX := frame.Plot.X + float64(i)*slot
	x := slotX + BarInset
	width := math.Max(slot-2*BarInset, 0)
	height := math.Abs(row.Actual) / frame.MaxAbs * span
	negative := row.Actual < 0

	y := frame.ZeroY - height
	if negative {
		y = frame.ZeroY
	}

	radius := ClampRadius(s.Bar.Radius, height)
	fill := RowColor(row, s.Conditional)

	bar := models.Bar{
		Index:    i,
		ID:       ElementID(i),
		Row:      row,
		Rect:     models.Rect{X: x, Y: y, W: width, H: height},
		Radius:   radius,
		Negative: negative,
		Fill:     fill,
		Path:     RoundedBarPath(x, y, width, height, radius, negative),
		Tooltip:  BuildTooltip(row, f),
	}

	if row.HasTarget() {
		ty := frame.ZeroY - *row.Target/frame.MaxAbs*span
		bar.Marker = &models.Line{
			X1: x, Y1: ty, X2: x + width, Y2: ty,
			Stroke:          s.Marker.Color,
			StrokeWidth:     s.Marker.Thickness,
			NoPointerEvents: true,
		}
	}

	labelColor := DefaultLabelColor
	if s.Conditional.ApplyToLabels {
		labelColor = fill
	}
	labelY := y - ValueLabelOffset
	if negative {
		labelY = y + height + NegativeLabelOffset
	}
	center := slotX + slot/2
	bar.ValueLabel = models.Label{
		Text:     f.Millions(row.Actual),
		X:        center,
		Y:        labelY,
		Anchor:   "middle",
		FontSize: FontSize,
		Color:    labelColor,
	}
	bar.CategoryLabel = models.Label{
		Text:     row.Category,
		X:        center,
		Y:        frame.Plot.Y + frame.Plot.H + CategoryLabelOffset,
		Anchor:   "end",
		Rotate:   CategoryLabelRotation,
		FontSize: FontSize,
	}
	return bar
}

// ElementID is the id bound to the bar of row i.
func ElementID(i int) string {
	return fmt.Sprintf("bar-%d", i)
}
