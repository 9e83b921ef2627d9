package output

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// ErrEmptyViewport indicates a frame too small to rasterize.
var ErrEmptyViewport = errors.New("cannot rasterize an empty viewport")

// WritePNG rasterizes frame with the go-chart renderer.
func WritePNG(w io.Writer, frame *models.Frame) error {
	if frame == nil || frame.Viewport.Width < 1 || frame.Viewport.Height < 1 {
		return ErrEmptyViewport
	}
	width, height := px(frame.Viewport.Width), px(frame.Viewport.Height)

	r, err := chart.PNG(width, height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)

	// Background
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	if frame.Drawn() {
		for _, l := range frame.Axes {
			pngLine(r, l)
		}
		for _, b := range frame.Bars {
			pngBar(r, b)
		}
	}

	return r.Save(w)
}

func pngBar(r chart.Renderer, b models.Bar) {
	r.ResetStyle()
	r.SetFillColor(color(b.Fill))
	for _, s := range b.Path {
		switch s.Op {
		case models.OpMove:
			r.MoveTo(px(s.X), px(s.Y))
		case models.OpLine:
			r.LineTo(px(s.X), px(s.Y))
		case models.OpArc:
			if s.R <= 0 {
				r.LineTo(px(s.X), px(s.Y))
				continue
			}
			r.ArcTo(px(s.CX), px(s.CY), s.R, s.R, s.Start, s.Sweep)
		case models.OpClose:
			r.Close()
		}
	}
	r.Fill()

	if b.Marker != nil {
		pngLine(r, *b.Marker)
	}
	pngText(r, b.ValueLabel)
	pngText(r, b.CategoryLabel)
}

func pngLine(r chart.Renderer, l models.Line) {
	r.ResetStyle()
	r.SetStrokeColor(color(l.Stroke))
	r.SetStrokeWidth(l.StrokeWidth)
	r.MoveTo(px(l.X1), px(l.Y1))
	r.LineTo(px(l.X2), px(l.Y2))
	r.Stroke()
}

// pngText draws a label honouring its anchor. Anchors shift the origin
// along the (possibly rotated) baseline.
func pngText(r chart.Renderer, l models.Label) {
	if l.Text == "" {
		return
	}
	r.ResetStyle()
	r.SetFontSize(l.FontSize)
	r.SetFontColor(color(l.Color))

	var shift float64
	switch l.Anchor {
	case "middle":
		shift = float64(r.MeasureText(l.Text).Width()) / 2
	case "end":
		shift = float64(r.MeasureText(l.Text).Width())
	}

	theta := l.Rotate * math.Pi / 180
	x := l.X - shift*math.Cos(theta)
	y := l.Y - shift*math.Sin(theta)

	if theta != 0 {
		r.SetTextRotation(theta)
		defer r.ClearTextRotation()
	}
	r.Text(l.Text, px(x), px(y))
}

// color converts a label or fill color; anything unparseable draws black.
func color(c string) drawing.Color {
	h, ok := hexDigits(c)
	if !ok {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(h)
}
