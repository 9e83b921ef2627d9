package varbar

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/ukaji3/varbar-go/pkg/varbar/host"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/output"
	"github.com/ukaji3/varbar-go/pkg/varbar/parser"
)

// Load reads a data view from a JSON, XLSX or CSV file.
func Load(path string, opts Options) (*models.DataView, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, NewRenderError(path, "load", ErrFileNotFound)
	}

	dv, err := parser.Load(path, parser.Options{Sheet: opts.Sheet, Range: opts.Range})
	if err != nil {
		return nil, NewRenderError(path, "load", err)
	}
	return dv, nil
}

// Render loads path and runs a single update on an in-process host.
// The returned host holds the tooltip and click bindings of the frame.
func Render(path string, opts Options) (*models.Frame, *host.Memory, error) {
	dv, err := Load(path, opts)
	if err != nil {
		return nil, nil, err
	}

	h := host.NewMemory()
	v := NewVisual(h, opts)
	frame := v.Update(UpdateOptions{
		Viewport:  opts.Viewport,
		DataViews: []*models.DataView{dv},
	})
	return frame, h, nil
}

// Write serializes frame in the requested format.
func Write(w io.Writer, frame *models.Frame, format Format, pretty bool) error {
	switch format {
	case FormatSVG:
		return output.WriteSVG(w, frame)
	case FormatPNG:
		return output.WritePNG(w, frame)
	case FormatXLSX:
		return output.WriteXLSX(w, frame)
	case FormatJSON:
		data, err := output.ToJSON(frame, pretty)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		return nil
	default:
		return ErrUnknownFormat
	}
}
