package models

import (
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// SegmentOp is a path drawing command.
type SegmentOp string

// Path commands, named after their SVG letters.
const (
	OpMove  SegmentOp = "M"
	OpLine  SegmentOp = "L"
	OpArc   SegmentOp = "A"
	OpClose SegmentOp = "Z"
)

// Segment is one path command. X and Y are the end point.
// Arc segments also carry their centre and angles (radians, y axis down)
// so raster backends can replay them without re-deriving the geometry.
type Segment struct {
	Op    SegmentOp `json:"op"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	R     float64   `json:"r,omitempty"`
	CX    float64   `json:"cx,omitempty"`
	CY    float64   `json:"cy,omitempty"`
	Start float64   `json:"start,omitempty"`
	Sweep float64   `json:"sweep,omitempty"`
}

// Path is an ordered list of segments.
type Path []Segment

// D returns the path as SVG path data.
func (p Path) D() string {
	parts := make([]string, 0, len(p))
	for _, s := range p {
		switch s.Op {
		case OpMove, OpLine:
			parts = append(parts, string(s.Op)+" "+num(s.X)+" "+num(s.Y))
		case OpArc:
			parts = append(parts, "A "+num(s.R)+" "+num(s.R)+" 0 0 1 "+num(s.X)+" "+num(s.Y))
		case OpClose:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Line is a stroked segment (axes and target markers).
type Line struct {
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	// NoPointerEvents marks decoration that must not intercept clicks.
	NoPointerEvents bool `json:"no_pointer_events,omitempty"`
}

// Label is a positioned text element.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	// Anchor is the SVG text-anchor value (start, middle, end).
	Anchor string `json:"anchor"`
	// Rotate is the rotation in degrees around (X, Y).
	Rotate   float64 `json:"rotate,omitempty"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color,omitempty"`
}

// TooltipItem is one display name/value pair shown on hover.
type TooltipItem struct {
	DisplayName string `json:"displayName"`
	Value       string `json:"value"`
}

// SelectionID identifies a row for cross-filtering.
type SelectionID struct {
	// Key is a stable identity derived from the column and row.
	Key string `json:"key"`
	// Column is the category column reference.
	Column string `json:"column"`
	// Index is the row index.
	Index int `json:"index"`
}

// Bar is a single rendered row.
type Bar struct {
	// Index is the row index.
	Index int `json:"index"`
	// ID is the element id used for tooltip and click bindings.
	ID string `json:"id"`
	// Row is the source row.
	Row Row `json:"row"`
	// Rect is the bar bounding box.
	Rect Rect `json:"rect"`
	// Radius is the applied corner radius.
	Radius float64 `json:"radius"`
	// Negative is set when the bar grows down from the zero line.
	Negative bool `json:"negative"`
	// Fill is the conditional fill color.
	Fill string `json:"fill"`
	// Path is the rounded bar outline.
	Path Path `json:"path"`
	// Marker is the target marker (nil when the row has no usable target).
	Marker *Line `json:"marker,omitempty"`
	// ValueLabel is the "1.2M" style label.
	ValueLabel Label `json:"value_label"`
	// CategoryLabel is the rotated category label under the plot.
	CategoryLabel Label `json:"category_label"`
	// Tooltip holds the six tooltip fields.
	Tooltip []TooltipItem `json:"tooltip"`
	// SelectionID is assigned when interactions are wired.
	SelectionID SelectionID `json:"selection_id"`
}

// Frame is the complete output of one update.
type Frame struct {
	// Viewport is the viewport the frame was laid out for.
	Viewport Viewport `json:"viewport"`
	// Plot is the plot area inside the margins.
	Plot Rect `json:"plot"`
	// ZeroY is the y coordinate of the zero line.
	ZeroY float64 `json:"zero_y"`
	// MaxAbs is the scale domain maximum.
	MaxAbs float64 `json:"max_abs"`
	// Axes holds the vertical axis and the zero line.
	Axes []Line `json:"axes,omitempty"`
	// Bars holds one entry per row.
	Bars []Bar `json:"bars,omitempty"`
}

// Drawn reports whether anything was rendered. Aborted updates yield an
// empty frame.
func (f *Frame) Drawn() bool {
	return f != nil && len(f.Axes) > 0
}

// Bar returns the bar with the given element id.
func (f *Frame) Bar(id string) (*Bar, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Bars {
		if f.Bars[i].ID == id {
			return &f.Bars[i], true
		}
	}
	return nil, false
}
