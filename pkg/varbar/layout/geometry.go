package layout

import (
	"math"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// MaxRadius caps the corner radius regardless of settings.
const MaxRadius = 20

// ClampRadius limits the configured radius to MaxRadius and half the bar
// height. Negative inputs clamp to zero.
func ClampRadius(configured, height float64) float64 {
	r := math.Min(configured, math.Min(MaxRadius, height/2))
	return math.Max(r, 0)
}

// RoundedBarPath outlines a bar whose box starts at (x, y).
//
// Positive bars round the two top corners and sit flat on the zero line.
// Negative bars hang from the zero line with a flat top and round the two
// bottom corners. The radius is further limited to half the width.
func RoundedBarPath(x, y, width, height, radius float64, negative bool) models.Path {
	r := math.Max(0, math.Min(radius, math.Min(width/2, height/2)))

	if !negative {
		return models.Path{
			{Op: models.OpMove, X: x, Y: y + r},
			corner(x+r, y+r, r, math.Pi, x+r, y),
			{Op: models.OpLine, X: x + width - r, Y: y},
			corner(x+width-r, y+r, r, -math.Pi/2, x+width, y+r),
			{Op: models.OpLine, X: x + width, Y: y + height},
			{Op: models.OpLine, X: x, Y: y + height},
			{Op: models.OpClose},
		}
	}

	return models.Path{
		{Op: models.OpMove, X: x, Y: y},
		{Op: models.OpLine, X: x + width, Y: y},
		{Op: models.OpLine, X: x + width, Y: y + height - r},
		corner(x+width-r, y+height-r, r, 0, x+width-r, y+height),
		{Op: models.OpLine, X: x + r, Y: y + height},
		corner(x+r, y+height-r, r, math.Pi/2, x, y+height-r),
		{Op: models.OpClose},
	}
}

// corner is a clockwise quarter arc around (cx, cy) from angle start,
// ending at (ex, ey).
func corner(cx, cy, r, start, ex, ey float64) models.Segment {
	return models.Segment{
		Op:    models.OpArc,
		X:     ex,
		Y:     ey,
		R:     r,
		CX:    cx,
		CY:    cy,
		Start: start,
		Sweep: math.Pi / 2,
	}
}
