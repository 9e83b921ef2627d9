package output

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// WriteSVG renders frame as a standalone SVG document. Each bar is a group
// carrying its element id, selection key and a <title> tooltip.
func WriteSVG(w io.Writer, frame *models.Frame) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := 0, 0
	if frame != nil {
		width, height = px(frame.Viewport.Width), px(frame.Viewport.Height)
	}
	canvas.Start(width, height, `style="overflow:visible"`)

	if frame.Drawn() {
		for _, l := range frame.Axes {
			svgLine(canvas, l, "axis")
		}
		for _, b := range frame.Bars {
			svgBar(canvas, b)
		}
	}

	canvas.End()
	return ew.err
}

func svgBar(canvas *svg.SVG, b models.Bar) {
	canvas.Group(
		attr("id", b.ID),
		`class="bar"`,
		attr("data-selection-id", b.SelectionID.Key),
	)
	canvas.Title(tooltipText(b.Tooltip))
	canvas.Path(b.Path.D(), attr("fill", b.Fill))
	canvas.Gend()

	if b.Marker != nil {
		svgLine(canvas, *b.Marker, "target-marker")
	}

	l := b.ValueLabel
	canvas.Text(px(l.X), px(l.Y), l.Text,
		attr("text-anchor", l.Anchor),
		fmt.Sprintf(`font-size="%gpx"`, l.FontSize),
		attr("fill", l.Color),
	)

	c := b.CategoryLabel
	canvas.TranslateRotate(px(c.X), px(c.Y), c.Rotate)
	canvas.Text(0, 0, c.Text,
		attr("text-anchor", c.Anchor),
		fmt.Sprintf(`font-size="%gpx"`, c.FontSize),
	)
	canvas.Gend()
}

func svgLine(canvas *svg.SVG, l models.Line, class string) {
	attrs := []string{
		attr("class", class),
		attr("stroke", l.Stroke),
		fmt.Sprintf(`stroke-width="%g"`, l.StrokeWidth),
	}
	if l.NoPointerEvents {
		attrs = append(attrs, `pointer-events="none"`)
	}
	canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), attrs...)
}

// tooltipText joins the tooltip fields one per line.
func tooltipText(items []models.TooltipItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.DisplayName + ": " + it.Value
	}
	return strings.Join(lines, "\n")
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
